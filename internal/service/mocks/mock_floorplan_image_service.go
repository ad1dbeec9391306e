package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"floorplan/internal/model"
	"floorplan/internal/service"
)

type MockFloorplanImageService struct {
	mock.Mock
}

func (m *MockFloorplanImageService) Upload(ctx context.Context, in service.UploadInput) (*model.FloorplanImage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FloorplanImage), args.Error(1)
}

func (m *MockFloorplanImageService) List(ctx context.Context, owner model.Owner, limit, offset int) (*service.ImageListResult, error) {
	args := m.Called(ctx, owner, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImageListResult), args.Error(1)
}

func (m *MockFloorplanImageService) Get(ctx context.Context, id string) (*model.FloorplanImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FloorplanImage), args.Error(1)
}

func (m *MockFloorplanImageService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFloorplanImageService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockFloorplanImageService) CreateExternal(ctx context.Context, in service.ExternalInput) (*model.FloorplanImage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FloorplanImage), args.Error(1)
}

func (m *MockFloorplanImageService) Open(ctx context.Context, id string) (io.ReadCloser, *model.FloorplanImage, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	img, _ := args.Get(1).(*model.FloorplanImage)
	return rc, img, args.Error(2)
}
