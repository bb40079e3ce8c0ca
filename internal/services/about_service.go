package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/portfolio/backend/internal/imaging"
	"github.com/portfolio/backend/internal/models"
	"github.com/portfolio/backend/pkg/i18n"
	"gorm.io/gorm"
)

// ErrInvalidLegacyImage rejects a legacy scalar image payload that is not a
// decodable data-URI.
var ErrInvalidLegacyImage = errors.New("legacy image must be a base64 data-URI")

// AboutInput carries a partial write to the about section: i18n deltas, an
// optional legacy scalar image, and the gallery instructions.
type AboutInput struct {
	TitleI18n      map[string]string `json:"title_i18n"`
	ContentI18n    map[string]string `json:"content_i18n"`
	Image          *string           `json:"image"`
	Images         []ImageOp         `json:"images"`
	ImagesToRemove []uint            `json:"images_to_remove"`
}

type AboutService struct {
	db      *gorm.DB
	store   ObjectStore
	gallery *GalleryService
}

func NewAboutService(db *gorm.DB, store ObjectStore, gallery *GalleryService) *AboutService {
	return &AboutService{
		db:      db,
		store:   store,
		gallery: gallery,
	}
}

// List returns all about rows with their galleries in display order.
func (s *AboutService) List() ([]models.About, error) {
	var abouts []models.About
	if err := withGallery(s.db).Order("id ASC").Find(&abouts).Error; err != nil {
		return nil, err
	}
	return abouts, nil
}

// Get returns one about row with its gallery in display order.
func (s *AboutService) Get(id uint) (*models.About, error) {
	var about models.About
	if err := withGallery(s.db).First(&about, id).Error; err != nil {
		return nil, err
	}
	return &about, nil
}

// Create builds a new about row, storing the optional legacy image and
// creating the submitted gallery entries.
func (s *AboutService) Create(ctx context.Context, in AboutInput) (*models.About, error) {
	about := &models.About{
		TitleI18n:   i18n.Merge(nil, in.TitleI18n),
		ContentI18n: i18n.Merge(nil, in.ContentI18n),
	}

	if in.Image != nil {
		key, err := s.storeLegacyImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		about.ImageKey = key
	}

	if err := s.db.Create(about).Error; err != nil {
		return nil, fmt.Errorf("failed to create about record: %w", err)
	}

	if err := s.gallery.Reconcile(ctx, models.OwnerTypeAbout, about.ID, nil, in.Images); err != nil {
		return nil, err
	}

	return s.Get(about.ID)
}

// Update merges i18n deltas, replaces the legacy image if supplied, and
// reconciles the gallery instructions.
func (s *AboutService) Update(ctx context.Context, id uint, in AboutInput) (*models.About, error) {
	var about models.About
	if err := s.db.First(&about, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.TitleI18n != nil {
		about.TitleI18n = i18n.Merge(about.TitleI18n, in.TitleI18n)
		updates["title_i18n"] = about.TitleI18n
	}
	if in.ContentI18n != nil {
		about.ContentI18n = i18n.Merge(about.ContentI18n, in.ContentI18n)
		updates["content_i18n"] = about.ContentI18n
	}

	if in.Image != nil {
		key, err := s.storeLegacyImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		oldKey := about.ImageKey
		about.ImageKey = key
		updates["image_key"] = key
		if oldKey != "" && oldKey != key {
			bestEffort("delete replaced legacy about image", func() error {
				return s.store.Delete(ctx, oldKey)
			})
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&about).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update about record: %w", err)
		}
	}

	if err := s.gallery.Reconcile(ctx, models.OwnerTypeAbout, about.ID, in.ImagesToRemove, in.Images); err != nil {
		return nil, err
	}

	return s.Get(about.ID)
}

// Delete removes the about row, its gallery (rows and stored assets) and the
// legacy image asset.
func (s *AboutService) Delete(ctx context.Context, id uint) error {
	var about models.About
	if err := s.db.First(&about, id).Error; err != nil {
		return err
	}

	if err := s.gallery.DeleteAll(ctx, models.OwnerTypeAbout, about.ID); err != nil {
		return err
	}

	if err := s.db.Delete(&about).Error; err != nil {
		return fmt.Errorf("failed to delete about record: %w", err)
	}

	if about.ImageKey != "" {
		bestEffort("delete legacy about image", func() error {
			return s.store.Delete(ctx, about.ImageKey)
		})
	}

	return nil
}

func (s *AboutService) storeLegacyImage(ctx context.Context, payload string) (string, error) {
	data, ext, err := imaging.ParseDataURI(payload)
	if err != nil {
		return "", ErrInvalidLegacyImage
	}
	key := buildObjectKey("about", ext)
	if err := s.store.Put(ctx, key, data, imaging.DetectContentType(data)); err != nil {
		return "", fmt.Errorf("failed to upload legacy image: %w", err)
	}
	return key, nil
}
