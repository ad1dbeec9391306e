package model

// OwnerKind names the object a floorplan image is attached to.
type OwnerKind string

const (
	OwnerNone     OwnerKind = ""
	OwnerSite     OwnerKind = "site"
	OwnerLocation OwnerKind = "location"
)

// Owner identifies the site or location an image belongs to.
// The zero value means the image has no owner.
type Owner struct {
	Kind OwnerKind `json:"kind,omitempty"`
	ID   int64     `json:"id,omitempty"`
}

// SiteOwner returns an owner for the site with the given ID.
func SiteOwner(id int64) Owner { return Owner{Kind: OwnerSite, ID: id} }

// LocationOwner returns an owner for the location with the given ID.
func LocationOwner(id int64) Owner { return Owner{Kind: OwnerLocation, ID: id} }

// NoOwner returns the empty owner.
func NoOwner() Owner { return Owner{} }

// IsNone reports whether the owner carries no identifier.
func (o Owner) IsNone() bool { return o.Kind == OwnerNone }

// Valid reports whether the owner is either empty or a known kind with a positive ID.
func (o Owner) Valid() bool {
	switch o.Kind {
	case OwnerNone:
		return o.ID == 0
	case OwnerSite, OwnerLocation:
		return o.ID > 0
	default:
		return false
	}
}

// String renders the kind for logs and metric labels.
func (o Owner) String() string {
	if o.IsNone() {
		return "none"
	}
	return string(o.Kind)
}
