package models

import (
	"time"
)

// About holds the multilingual "about" section. The ImageKey scalar is the
// legacy single image kept for backward compatibility; the gallery lives in
// Images and is independent of it.
type About struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ImageKey    string    `gorm:"size:512" json:"-"`
	TitleI18n   LocaleMap `gorm:"type:jsonb" json:"title_i18n"`
	ContentI18n LocaleMap `gorm:"type:jsonb" json:"content_i18n"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Images []GalleryImage `gorm:"polymorphic:Owner" json:"images,omitempty"`
}
