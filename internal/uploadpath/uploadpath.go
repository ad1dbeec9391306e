// Package uploadpath computes object storage keys for floorplan image uploads.
//
// Keys have the form "netbox-floorplan/<id>_<filename>" when the image belongs to a
// site or a location, and "netbox-floorplan/<filename>" otherwise.
package uploadpath

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"floorplan/internal/model"
)

// Prefix is the directory every floorplan image is stored under.
const Prefix = "netbox-floorplan"

const maxAvailableAttempts = 10

var (
	ErrInvalidFilename = errors.New("invalid filename")
	ErrNoAvailableName = errors.New("no available storage name")
)

// Build returns the storage path for filename attached to owner.
// Site and location owners prefix the filename with their ID; an empty owner yields the fallback path.
func Build(owner model.Owner, filename string) string {
	switch owner.Kind {
	case model.OwnerSite, model.OwnerLocation:
		return Prefix + "/" + strconv.FormatInt(owner.ID, 10) + "_" + filename
	default:
		return Prefix + "/" + filename
	}
}

// ResolveOwner picks the owner from optional site and location IDs.
// The site wins when both are set; a nil site falls through to the location.
func ResolveOwner(siteID, locationID *int64) model.Owner {
	if siteID != nil {
		return model.SiteOwner(*siteID)
	}
	if locationID != nil {
		return model.LocationOwner(*locationID)
	}
	return model.NoOwner()
}

// CleanFilename strips directory components from name, replaces spaces with
// underscores and drops every character that is not a letter, digit, '_', '-' or '.'.
func CleanFilename(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSpace(path.Base(strings.TrimSpace(name)))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			return r
		}
		return -1
	}, name)

	switch name {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return name, nil
}

// ExistsFunc reports whether a storage key is already taken.
type ExistsFunc func(ctx context.Context, key string) (bool, error)

// randomSuffix is replaced in tests.
var randomSuffix = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

// Available returns key unchanged if it is free, otherwise key with "_<7 chars>"
// inserted before its extension.
func Available(ctx context.Context, key string, exists ExistsFunc) (string, error) {
	dir, file := path.Split(key)
	ext := path.Ext(file)
	root := strings.TrimSuffix(file, ext)

	candidate := key
	for i := 0; i < maxAvailableAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = dir + root + "_" + randomSuffix() + ext
	}
	return "", fmt.Errorf("%w: %s", ErrNoAvailableName, key)
}
