package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"floorplan/internal/model"
	"floorplan/internal/repository"
)

type MockFloorplanImageRepository struct {
	mock.Mock
}

func (m *MockFloorplanImageRepository) Create(ctx context.Context, img *model.FloorplanImage) (*model.FloorplanImage, error) {
	args := m.Called(ctx, img)
	if f, ok := args.Get(0).(func(context.Context, *model.FloorplanImage) *model.FloorplanImage); ok {
		return f(ctx, img), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FloorplanImage), args.Error(1)
}

func (m *MockFloorplanImageRepository) FindByID(ctx context.Context, id string) (*model.FloorplanImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FloorplanImage), args.Error(1)
}

func (m *MockFloorplanImageRepository) List(ctx context.Context, filter repository.ImageFilter, pq repository.PageQuery) (*repository.PageResult[model.FloorplanImage], error) {
	args := m.Called(ctx, filter, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.FloorplanImage]), args.Error(1)
}

func (m *MockFloorplanImageRepository) UpdateObject(ctx context.Context, id string, size int64, contentType string) error {
	args := m.Called(ctx, id, size, contentType)
	return args.Error(0)
}

func (m *MockFloorplanImageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFloorplanImageRepository) ExistsByStoragePath(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}
