package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"floorplan/internal/model"
	"floorplan/internal/repository"
	"floorplan/internal/storage"
	"floorplan/internal/uploadpath"
)

const (
	defaultLimit         = 10
	maxLimit             = 100
	defaultPresignExpiry = 15 * time.Minute
	maxClaimAttempts     = 5
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("floorplan image not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrInvalidOwner    = errors.New("invalid owner")

	ErrInvalidExternalURL = errors.New("external url must be an absolute http(s) url")
	ErrExternalImage      = errors.New("image is hosted at an external url")
)

// ImageListResult is the service-level DTO for paginated floorplan images.
type ImageListResult struct {
	Items []model.FloorplanImage `json:"data"`
	Total int                    `json:"total"`
}

// UploadInput describes one image upload.
type UploadInput struct {
	Reader      io.Reader
	Owner       model.Owner
	Name        string
	Filename    string
	ContentType string
	Size        int64
	Comments    string
}

// ExternalInput describes an image that lives at an external URL.
type ExternalInput struct {
	Owner    model.Owner
	Name     string
	URL      string
	Comments string
}

// FloorplanImageService defines the use cases for floorplan images.
type FloorplanImageService interface {
	// Upload claims a storage path for the image's owner, then streams the bytes to it.
	// The claimed row is removed if the upload fails.
	Upload(ctx context.Context, in UploadInput) (*model.FloorplanImage, error)

	// CreateExternal records an image that links to an external URL.
	CreateExternal(ctx context.Context, in ExternalInput) (*model.FloorplanImage, error)

	// List returns images for an owner (or all images) using limit/offset and a total count.
	List(ctx context.Context, owner model.Owner, limit, offset int) (*ImageListResult, error)

	// Get returns a single image by its ID.
	Get(ctx context.Context, id string) (*model.FloorplanImage, error)

	// Delete removes an image from storage and then from the repository.
	Delete(ctx context.Context, id string) error

	// DownloadURL returns a presigned URL for the image content, or the external URL.
	DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Open streams the image content. The caller closes the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.FloorplanImage, error)
}

type floorplanImageService struct {
	store   storage.Storage
	repo    repository.FloorplanImageRepository
	logger  *zap.Logger
	uploads *prometheus.CounterVec

	metricsErr error
}

// Option configures a FloorplanImageService.
type Option func(*floorplanImageService)

// WithLogger sets the logger used for upload and delete events.
func WithLogger(l *zap.Logger) Option {
	return func(s *floorplanImageService) { s.logger = l }
}

// WithMetrics registers the upload counter on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *floorplanImageService) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "floorplan_image_uploads_total",
			Help: "Floorplan image uploads by owner kind and result.",
		}, []string{"owner", "result"})
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				s.metricsErr = err
				return
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				s.metricsErr = err
				return
			}
			c = existing
		}
		s.uploads = c
	}
}

// NewFloorplanImageService constructs a new FloorplanImageService.
func NewFloorplanImageService(store storage.Storage, repo repository.FloorplanImageRepository, opts ...Option) FloorplanImageService {
	s := &floorplanImageService{store: store, repo: repo, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.metricsErr != nil {
		s.logger.Warn("upload_metrics_disabled", zap.Error(s.metricsErr))
	}
	return s
}

func (s *floorplanImageService) Upload(ctx context.Context, in UploadInput) (img *model.FloorplanImage, err error) {
	defer func() { s.countUpload(in.Owner, err) }()

	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if !in.Owner.Valid() {
		return nil, fmt.Errorf("%w: %s %d", ErrInvalidOwner, in.Owner.Kind, in.Owner.ID)
	}
	contentType, err := imageContentType(in.ContentType)
	if err != nil {
		return nil, err
	}
	filename, err := uploadpath.CleanFilename(in.Filename)
	if err != nil {
		return nil, err
	}

	rec := &model.FloorplanImage{
		Name:        strings.TrimSpace(in.Name),
		Filename:    filename,
		ContentType: contentType,
		Comments:    strings.TrimSpace(in.Comments),
		CreatedAt:   time.Now().UTC(),
	}
	if rec.Name == "" {
		rec.Name = filename
	}
	if in.Size > 0 {
		rec.Size = in.Size
	}
	rec.SetOwner(in.Owner)

	stored, err := s.claimPath(ctx, rec, uploadpath.Build(in.Owner, filename))
	if err != nil {
		return nil, err
	}
	key := rec.StoragePath

	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		if delErr := s.repo.Delete(context.WithoutCancel(ctx), stored.ID); delErr != nil {
			s.logger.Error("upload_rollback_failed",
				zap.String("id", stored.ID),
				zap.String("storage_path", key),
				zap.Error(delErr),
			)
			return nil, fmt.Errorf("upload to storage: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if objInfo.Size != stored.Size {
		if err := s.repo.UpdateObject(ctx, stored.ID, objInfo.Size, contentType); err != nil {
			s.logger.Warn("image_size_update_failed", zap.String("id", stored.ID), zap.Error(err))
		}
		stored.Size = objInfo.Size
	}

	s.logger.Info("image_uploaded",
		zap.String("id", stored.ID),
		zap.String("owner", in.Owner.String()),
		zap.Int64("owner_id", in.Owner.ID),
		zap.String("storage_path", stored.StoragePath),
		zap.Int64("size", stored.Size),
	)
	return stored, nil
}

// claimPath inserts rec under a free key derived from base. The row is written
// before any bytes reach storage, so the unique storage_path column decides which
// upload owns a key. A lost race resolves a fresh key and tries again.
func (s *floorplanImageService) claimPath(ctx context.Context, rec *model.FloorplanImage, base string) (*model.FloorplanImage, error) {
	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		key, err := uploadpath.Available(ctx, base, s.keyTaken)
		if err != nil {
			return nil, fmt.Errorf("resolve storage path: %w", err)
		}
		rec.ID = uuid.New().String()
		rec.StoragePath = key

		stored, err := s.repo.Create(ctx, rec)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, repository.ErrDuplicateStoragePath) {
			return nil, fmt.Errorf("db save failed: %w", err)
		}
		s.logger.Debug("storage_path_conflict", zap.String("storage_path", key), zap.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("resolve storage path: %w", uploadpath.ErrNoAvailableName)
}

// CreateExternal records an image hosted at an external http(s) URL. Nothing is stored.
func (s *floorplanImageService) CreateExternal(ctx context.Context, in ExternalInput) (*model.FloorplanImage, error) {
	if !in.Owner.Valid() {
		return nil, fmt.Errorf("%w: %s %d", ErrInvalidOwner, in.Owner.Kind, in.Owner.ID)
	}
	raw := strings.TrimSpace(in.URL)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExternalURL, in.URL)
	}

	rec := &model.FloorplanImage{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		ExternalURL: u.String(),
		Comments:    strings.TrimSpace(in.Comments),
		CreatedAt:   time.Now().UTC(),
	}
	if rec.Name == "" {
		rec.Name = path.Base(u.Path)
		if rec.Name == "/" || rec.Name == "." {
			rec.Name = u.Host
		}
	}
	rec.SetOwner(in.Owner)

	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	s.logger.Info("image_linked",
		zap.String("id", stored.ID),
		zap.String("owner", in.Owner.String()),
		zap.String("external_url", stored.ExternalURL),
	)
	return stored, nil
}

// keyTaken reports whether a key is used by a row or an existing object.
func (s *floorplanImageService) keyTaken(ctx context.Context, key string) (bool, error) {
	exists, err := s.repo.ExistsByStoragePath(ctx, key)
	if err != nil || exists {
		return exists, err
	}
	if _, err := s.store.Stat(ctx, key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *floorplanImageService) countUpload(owner model.Owner, err error) {
	if s.uploads == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	s.uploads.WithLabelValues(owner.String(), result).Inc()
}

// imageContentType normalizes ct and rejects anything that is not image/*.
func imageContentType(ct string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ct)
	}
	return mediaType, nil
}

// List returns paginated images without exposing repository types.
func (s *floorplanImageService) List(ctx context.Context, owner model.Owner, limit, offset int) (*ImageListResult, error) {
	if !owner.Valid() {
		return nil, ErrInvalidOwner
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.ImageFilter{Owner: owner}, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ImageListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns an image by ID.
func (s *floorplanImageService) Get(ctx context.Context, id string) (*model.FloorplanImage, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return img, nil
}

// Delete removes the object first so a failed storage delete keeps the row pointing at it.
func (s *floorplanImageService) Delete(ctx context.Context, id string) error {
	img, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !img.IsExternal() {
		if err := s.store.Delete(ctx, img.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("image_deleted", zap.String("id", id), zap.String("storage_path", img.StoragePath))
	return nil
}

// DownloadURL presigns a GET for the image. Non-positive expiry uses the default.
// External images return their URL unchanged.
func (s *floorplanImageService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	img, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if img.IsExternal() {
		return img.ExternalURL, nil
	}
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	u, err := s.store.PresignGet(ctx, img.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

// Open returns the stored object for the image. A missing object is reported as ErrNotFound
// and external images as ErrExternalImage.
func (s *floorplanImageService) Open(ctx context.Context, id string) (io.ReadCloser, *model.FloorplanImage, error) {
	img, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if img.IsExternal() {
		return nil, nil, ErrExternalImage
	}
	rc, info, err := s.store.Get(ctx, img.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	if info.ContentType != "" {
		img.ContentType = info.ContentType
	}
	if info.Size > 0 {
		img.Size = info.Size
	}
	return rc, img, nil
}
