package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"floorplan/internal/model"
	"floorplan/internal/repository"
)

const imageColumns = `id, name, filename, storage_path, external_url, size, content_type, comments, site_id, location_id, created_at`

const (
	uniqueViolation       = "23505"
	storagePathConstraint = "floorplan_images_storage_path_key"
)

// FloorplanImagePostgres is the PostgreSQL implementation of repository.FloorplanImageRepository.
type FloorplanImagePostgres struct {
	db *sql.DB
}

// NewFloorplanImagePostgres creates a new FloorplanImagePostgres repository.
func NewFloorplanImagePostgres(db *sql.DB) *FloorplanImagePostgres {
	return &FloorplanImagePostgres{db: db}
}

var _ repository.FloorplanImageRepository = (*FloorplanImagePostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(row rowScanner) (*model.FloorplanImage, error) {
	var (
		img         model.FloorplanImage
		storagePath sql.NullString
		externalURL sql.NullString
		siteID      sql.NullInt64
		locationID  sql.NullInt64
	)
	if err := row.Scan(
		&img.ID,
		&img.Name,
		&img.Filename,
		&storagePath,
		&externalURL,
		&img.Size,
		&img.ContentType,
		&img.Comments,
		&siteID,
		&locationID,
		&img.CreatedAt,
	); err != nil {
		return nil, err
	}
	img.StoragePath = storagePath.String
	img.ExternalURL = externalURL.String
	if siteID.Valid {
		img.SiteID = &siteID.Int64
	}
	if locationID.Valid {
		img.LocationID = &locationID.Int64
	}
	return &img, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// Create inserts a new image row and returns the stored record.
func (r *FloorplanImagePostgres) Create(ctx context.Context, img *model.FloorplanImage) (*model.FloorplanImage, error) {
	const q = `
		INSERT INTO floorplan_images (` + imageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + imageColumns
	row := r.db.QueryRowContext(ctx, q,
		img.ID,
		img.Name,
		img.Filename,
		nullString(img.StoragePath),
		nullString(img.ExternalURL),
		img.Size,
		img.ContentType,
		img.Comments,
		nullInt64(img.SiteID),
		nullInt64(img.LocationID),
		img.CreatedAt,
	)
	stored, err := scanImage(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == storagePathConstraint {
			return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateStoragePath, img.StoragePath)
		}
		return nil, err
	}
	return stored, nil
}

// UpdateObject stores the object size and content type reported by storage.
func (r *FloorplanImagePostgres) UpdateObject(ctx context.Context, id string, size int64, contentType string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE floorplan_images SET size = $2, content_type = $3 WHERE id = $1`, id, size, contentType)
	return err
}

// FindByID fetches a single image by its ID.
func (r *FloorplanImagePostgres) FindByID(ctx context.Context, id string) (*model.FloorplanImage, error) {
	const q = `SELECT ` + imageColumns + ` FROM floorplan_images WHERE id = $1`
	return scanImage(r.db.QueryRowContext(ctx, q, id))
}

// filterClause renders the WHERE clause and its arguments for filter.
func filterClause(filter repository.ImageFilter) (string, []any) {
	switch filter.Owner.Kind {
	case model.OwnerSite:
		return " WHERE site_id = $1", []any{filter.Owner.ID}
	case model.OwnerLocation:
		return " WHERE location_id = $1", []any{filter.Owner.ID}
	default:
		return "", nil
	}
}

// List returns images using LIMIT/OFFSET pagination and a total count.
func (r *FloorplanImagePostgres) List(ctx context.Context, filter repository.ImageFilter, pq repository.PageQuery) (*repository.PageResult[model.FloorplanImage], error) {
	where, args := filterClause(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM floorplan_images`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	qList := fmt.Sprintf(`SELECT %s FROM floorplan_images%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		imageColumns, where, n+1, n+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FloorplanImage, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.FloorplanImage]{Items: items, Total: total}, nil
}

// Delete removes an image by ID.
func (r *FloorplanImagePostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM floorplan_images WHERE id = $1`, id)
	return err
}

// ExistsByStoragePath reports whether any image row uses path.
func (r *FloorplanImagePostgres) ExistsByStoragePath(ctx context.Context, path string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM floorplan_images WHERE storage_path = $1)`, path,
	).Scan(&exists)
	return exists, err
}
