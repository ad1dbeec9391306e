package repository

import (
	"context"
	"errors"

	"floorplan/internal/model"
)

// ErrDuplicateStoragePath is returned by Create when another row already claimed the storage path.
var ErrDuplicateStoragePath = errors.New("storage path already claimed")

// FloorplanImageRepository defines data access for floorplan images.
// Persistence only; no business logic.
type FloorplanImageRepository interface {
	// Create inserts a new image record and returns the stored row.
	// A storage path used by another row yields ErrDuplicateStoragePath.
	Create(ctx context.Context, img *model.FloorplanImage) (*model.FloorplanImage, error)

	// FindByID returns an image by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.FloorplanImage, error)

	// List returns a page of images matching filter and the total count for the filter.
	List(ctx context.Context, filter ImageFilter, pq PageQuery) (*PageResult[model.FloorplanImage], error)

	// UpdateObject records the size and content type of the stored object.
	UpdateObject(ctx context.Context, id string, size int64, contentType string) error

	// Delete removes an image by ID. Missing rows are not an error.
	Delete(ctx context.Context, id string) error

	// ExistsByStoragePath reports whether a row already uses the storage path.
	ExistsByStoragePath(ctx context.Context, path string) (bool, error)
}

// ImageFilter narrows a listing to one owner. The zero value matches every image.
type ImageFilter struct {
	Owner model.Owner
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
