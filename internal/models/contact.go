package models

import (
	"time"
)

// Contact holds the multilingual contact section. No images.
type Contact struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TitleI18n       LocaleMap `gorm:"type:jsonb" json:"title_i18n"`
	DescriptionI18n LocaleMap `gorm:"type:jsonb" json:"description_i18n"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
