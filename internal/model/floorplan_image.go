package model

import "time"

// FloorplanImage is a stored floorplan background image.
// This is a pure domain model with no database-specific dependencies or tags.
// At most one of SiteID and LocationID is set.
// Exactly one of StoragePath and ExternalURL is set: the image is either an
// uploaded object or a link to an image hosted elsewhere.
type FloorplanImage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path,omitempty"`
	ExternalURL string    `json:"external_url,omitempty"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Comments    string    `json:"comments"`
	SiteID      *int64    `json:"site_id"`
	LocationID  *int64    `json:"location_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsExternal reports whether the image links to an external URL instead of a stored object.
func (img *FloorplanImage) IsExternal() bool {
	return img.ExternalURL != ""
}

// Owner returns the owner the image is attached to.
func (img *FloorplanImage) Owner() Owner {
	switch {
	case img.SiteID != nil:
		return SiteOwner(*img.SiteID)
	case img.LocationID != nil:
		return LocationOwner(*img.LocationID)
	default:
		return NoOwner()
	}
}

// SetOwner stores o into SiteID/LocationID, clearing the other field.
func (img *FloorplanImage) SetOwner(o Owner) {
	img.SiteID, img.LocationID = nil, nil
	id := o.ID
	switch o.Kind {
	case OwnerSite:
		img.SiteID = &id
	case OwnerLocation:
		img.LocationID = &id
	}
}
