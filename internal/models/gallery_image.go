package models

import (
	"time"
)

// Owner type discriminators for GalleryImage rows (GORM polymorphic
// association values are the owner's table name).
const (
	OwnerTypeAbout   = "abouts"
	OwnerTypeProject = "projects"
)

// GalleryImage is one entry of a parent's image gallery. Exactly one parent
// (About or Project) owns it; rows are only written through the parent's
// gallery reconciliation.
type GalleryImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OwnerID   uint   `gorm:"not null;index:idx_gallery_owner" json:"-"`
	OwnerType string `gorm:"size:32;not null;index:idx_gallery_owner" json:"-"`

	// ImageKey is the primary stored asset; ImageLowKey the derived blurred
	// placeholder, empty until generated.
	ImageKey    string `gorm:"size:512;not null" json:"-"`
	ImageLowKey string `gorm:"size:512" json:"-"`

	Caption string `gorm:"size:255" json:"caption"`
	Order   int    `gorm:"column:order;default:0;index" json:"order"`
	IsCover bool   `gorm:"default:false" json:"is_cover"`

	// Hash is the SHA-256 hex digest of the primary asset bytes, computed
	// when the asset is stored or replaced and never for metadata changes.
	Hash string `gorm:"size:64" json:"hash"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
