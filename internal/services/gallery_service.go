package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/portfolio/backend/internal/imaging"
	"github.com/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

// ImageOp is one submitted gallery instruction. With an ID it is an update of
// an existing child; without one it is an insert and must carry a decodable
// data-URI payload. Removals travel separately as an id list.
type ImageOp struct {
	ID      *uint   `json:"id,omitempty"`
	Image   *string `json:"image,omitempty"`
	Caption *string `json:"caption,omitempty"`
	Order   *int    `json:"order,omitempty"`
	IsCover *bool   `json:"is_cover,omitempty"`
}

func (op ImageOp) fields() ImageFields {
	return ImageFields{Caption: op.Caption, Order: op.Order, IsCover: op.IsCover}
}

// GalleryService reconciles a parent's submitted gallery instructions against
// persisted state: removals, then cover pre-clearing, then per-op updates and
// inserts in submitted order, then single-cover enforcement. Sequential and
// best-effort; it provides no isolation against concurrent reconciliations on
// the same parent.
type GalleryService struct {
	db     *gorm.DB
	images *ImageService
}

func NewGalleryService(db *gorm.DB, images *ImageService) *GalleryService {
	return &GalleryService{
		db:     db,
		images: images,
	}
}

// Reconcile applies removals and image operations for one parent.
func (s *GalleryService) Reconcile(ctx context.Context, ownerType string, ownerID uint, removeIDs []uint, ops []ImageOp) error {
	// 1) explicit deletions
	if len(removeIDs) > 0 {
		var doomed []models.GalleryImage
		if err := s.ownedImages(ownerType, ownerID).Where("id IN ?", removeIDs).Find(&doomed).Error; err != nil {
			return fmt.Errorf("failed to load images to remove: %w", err)
		}
		for i := range doomed {
			if err := s.images.Delete(ctx, &doomed[i]); err != nil {
				return err
			}
		}
	}

	// 2) if any incoming op claims cover, clear existing covers first so two
	// covers never co-exist mid-reconciliation
	anyCover := false
	for _, op := range ops {
		if op.IsCover != nil && *op.IsCover {
			anyCover = true
			break
		}
	}
	if anyCover {
		if err := s.ownedImages(ownerType, ownerID).
			Where("is_cover = ?", true).
			Update("is_cover", false).Error; err != nil {
			return fmt.Errorf("failed to clear covers: %w", err)
		}
	}

	// 3) updates and creations, in submitted order
	for _, op := range ops {
		if op.ID != nil {
			var img models.GalleryImage
			err := s.ownedImages(ownerType, ownerID).Where("id = ?", *op.ID).First(&img).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Stale reference, skip it
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to load image %d: %w", *op.ID, err)
			}

			// An undecodable replacement payload degrades to a
			// metadata-only update.
			var data []byte
			var ext string
			if op.Image != nil {
				data, ext, _ = imaging.ParseDataURI(*op.Image)
			}
			if err := s.images.Update(ctx, &img, data, ext, op.fields()); err != nil {
				return err
			}
			continue
		}

		if op.Image == nil {
			continue
		}
		data, ext, err := imaging.ParseDataURI(*op.Image)
		if err != nil {
			// Undecodable insert payloads are skipped silently
			continue
		}
		if _, err := s.images.Create(ctx, ownerType, ownerID, data, ext, op.fields()); err != nil {
			return err
		}
	}

	// 4) final single-cover pass
	return s.EnforceSingleCover(ownerType, ownerID)
}

// EnforceSingleCover keeps at most one cover per parent: the cover-claiming
// image with the lowest (order, id) wins, the rest are cleared.
func (s *GalleryService) EnforceSingleCover(ownerType string, ownerID uint) error {
	var covers []models.GalleryImage
	if err := s.ownedImages(ownerType, ownerID).
		Where("is_cover = ?", true).
		Order("\"order\" ASC, id ASC").
		Find(&covers).Error; err != nil {
		return fmt.Errorf("failed to load cover images: %w", err)
	}
	if len(covers) <= 1 {
		return nil
	}

	losers := make([]uint, 0, len(covers)-1)
	for _, img := range covers[1:] {
		losers = append(losers, img.ID)
	}
	if err := s.db.Model(&models.GalleryImage{}).
		Where("id IN ?", losers).
		Update("is_cover", false).Error; err != nil {
		return fmt.Errorf("failed to enforce single cover: %w", err)
	}
	return nil
}

// DeleteAll removes every gallery image of a parent, cleaning up stored
// assets image by image. Used when the parent itself is deleted.
func (s *GalleryService) DeleteAll(ctx context.Context, ownerType string, ownerID uint) error {
	var images []models.GalleryImage
	if err := s.ownedImages(ownerType, ownerID).Find(&images).Error; err != nil {
		return fmt.Errorf("failed to load gallery: %w", err)
	}
	for i := range images {
		if err := s.images.Delete(ctx, &images[i]); err != nil {
			return err
		}
	}
	return nil
}

// withGallery preloads a parent's gallery in display order (order, id).
func withGallery(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("\"order\" ASC, id ASC")
	})
}

func (s *GalleryService) ownedImages(ownerType string, ownerID uint) *gorm.DB {
	return s.db.Model(&models.GalleryImage{}).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)
}
