package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"floorplan/internal/model"
	"floorplan/internal/service"
	"floorplan/internal/uploadpath"
)

// RegisterRoutes attaches the health and floorplan image routes to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.FloorplanImageService, presignExpiry time.Duration) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/images", ListImages(svc))
	app.Post("/images", UploadImage(svc))
	app.Get("/images/:id", GetImage(svc))
	app.Get("/images/:id/download", DownloadImage(svc, presignExpiry))
	app.Get("/images/:id/content", ImageContent(svc))
	app.Delete("/images/:id", DeleteImage(svc))
}

// MetricsHandler exposes g in the Prometheus text format.
func MetricsHandler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Description Checks database connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

var errOwnerConflict = errors.New("both site_id and location_id set")

// parseOwner reads optional site_id and location_id values.
func parseOwner(siteRaw, locationRaw string) (model.Owner, error) {
	if siteRaw != "" && locationRaw != "" {
		return model.Owner{}, errOwnerConflict
	}
	siteID, err := parseID(siteRaw)
	if err != nil {
		return model.Owner{}, err
	}
	locationID, err := parseID(locationRaw)
	if err != nil {
		return model.Owner{}, err
	}
	return uploadpath.ResolveOwner(siteID, locationID), nil
}

func parseID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, service.ErrInvalidOwner
	}
	return &v, nil
}

// ListImages godoc
// @Summary List floorplan images
// @Tags images
// @Produce json
// @Param site_id query int false "Filter by site"
// @Param location_id query int false "Filter by location"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.ImageListResult
// @Failure 400 {object} errorPayload
// @Router /images [get]
func ListImages(svc service.FloorplanImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		owner, err := parseOwner(c.Query("site_id"), c.Query("location_id"))
		if err != nil {
			return writeServiceError(c, err)
		}

		res, err := svc.List(c.UserContext(), owner, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadImage godoc
// @Summary Upload a floorplan image
// @Description Stores the image under netbox-floorplan/<owner id>_<filename>, or records an external_url.
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Image file"
// @Param external_url formData string false "External image URL, instead of file"
// @Param name formData string false "Display name"
// @Param comments formData string false "Comments"
// @Param site_id formData int false "Owning site"
// @Param location_id formData int false "Owning location"
// @Success 201 {object} model.FloorplanImage
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Router /images [post]
func UploadImage(svc service.FloorplanImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner, err := parseOwner(c.FormValue("site_id"), c.FormValue("location_id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		externalURL := c.FormValue("external_url")
		fh, fileErr := c.FormFile("file")

		switch {
		case fileErr == nil && externalURL != "":
			return writeError(c, fiber.StatusBadRequest, "SOURCE_CONFLICT", "only one of file and external_url may be set")
		case fileErr != nil && externalURL == "":
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file or external_url is required")
		case externalURL != "":
			img, err := svc.CreateExternal(c.UserContext(), service.ExternalInput{
				Owner:    owner,
				Name:     c.FormValue("name"),
				URL:      externalURL,
				Comments: c.FormValue("comments"),
			})
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(img)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		img, err := svc.Upload(c.UserContext(), service.UploadInput{
			Reader:      f,
			Owner:       owner,
			Name:        c.FormValue("name"),
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Comments:    c.FormValue("comments"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(img)
	}
}

// GetImage godoc
// @Summary Get a floorplan image record
// @Tags images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} model.FloorplanImage
// @Failure 404 {object} errorPayload
// @Router /images/{id} [get]
func GetImage(svc service.FloorplanImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		img, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(img)
	}
}

// DownloadImage godoc
// @Summary Download a floorplan image
// @Description Redirects to a time-limited presigned URL, or to the external URL.
// @Tags images
// @Param id path string true "Image ID"
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /images/{id}/download [get]
func DownloadImage(svc service.FloorplanImageService, expiry time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.DownloadURL(c.UserContext(), id, expiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// ImageContent godoc
// @Summary Stream a floorplan image
// @Tags images
// @Produce image/png,image/jpeg,image/svg+xml
// @Param id path string true "Image ID"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /images/{id}/content [get]
func ImageContent(svc service.FloorplanImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, img, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, img.ContentType)
		c.Set(fiber.HeaderContentDisposition, contentDisposition(img.Filename))
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, int(img.Size))
	}
}

// DeleteImage godoc
// @Summary Delete a floorplan image
// @Tags images
// @Param id path string true "Image ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /images/{id} [delete]
func DeleteImage(svc service.FloorplanImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// contentDisposition renders an inline disposition with an ASCII fallback
// filename and the RFC 5987 encoded UTF-8 name.
func contentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return `inline; filename="` + fallback + `"; filename*=UTF-8''` + url.PathEscape(filename)
}
