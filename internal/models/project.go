package models

import (
	"time"
)

type Project struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`

	// ContentSourceLang is the language Title and Content are written in;
	// the i18n maps carry per-language overrides on top of them.
	ContentSourceLang string       `gorm:"size:8;default:'es'" json:"content_source_lang"`
	TitleI18n         LocaleMap    `gorm:"type:jsonb" json:"title_i18n"`
	ContentI18n       LocaleDocMap `gorm:"type:jsonb" json:"content_i18n"`

	Order  int  `gorm:"column:order;default:0;index" json:"order"`
	Hidden bool `gorm:"default:false" json:"hidden"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Images []GalleryImage `gorm:"polymorphic:Owner" json:"images,omitempty"`
}
