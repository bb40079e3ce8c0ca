package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/imaging"
	"github.com/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrMissingImagePayload rejects gallery image creation without a
	// decodable primary asset.
	ErrMissingImagePayload = errors.New("new images must include a base64 image payload")
)

// ImageFields are the partial metadata changes of a gallery image. Nil
// pointers leave the persisted value untouched.
type ImageFields struct {
	Caption *string
	Order   *int
	IsCover *bool
}

// ImageService owns the lifecycle of a single gallery image: persisting the
// row, computing the content hash and (re)generating the low-resolution
// placeholder, and cleaning up stored assets.
type ImageService struct {
	db     *gorm.DB
	store  ObjectStore
	lowres *imaging.Generator
}

func NewImageService(db *gorm.DB, store ObjectStore, lowres *imaging.Generator) *ImageService {
	return &ImageService{
		db:     db,
		store:  store,
		lowres: lowres,
	}
}

// HashBytes computes the content digest of an uploaded asset.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// keyPrefix maps an owner type to its storage namespace.
func keyPrefix(ownerType string) string {
	if ownerType == models.OwnerTypeAbout {
		return "about"
	}
	return "projects"
}

func buildObjectKey(prefix, ext string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
}

// Create persists a new gallery image from raw asset bytes. The content hash
// is computed here, exactly once; the placeholder variant is generated after
// the primary save succeeds and stored with a follow-up single-field update.
func (s *ImageService) Create(ctx context.Context, ownerType string, ownerID uint, data []byte, ext string, fields ImageFields) (*models.GalleryImage, error) {
	if len(data) == 0 {
		return nil, ErrMissingImagePayload
	}

	key := buildObjectKey(keyPrefix(ownerType), ext)
	if err := s.store.Put(ctx, key, data, imaging.DetectContentType(data)); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	img := &models.GalleryImage{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		ImageKey:  key,
		Hash:      HashBytes(data),
	}
	if fields.Caption != nil {
		img.Caption = *fields.Caption
	}
	if fields.Order != nil {
		img.Order = *fields.Order
	}
	if fields.IsCover != nil {
		img.IsCover = *fields.IsCover
	}

	if err := s.db.Create(img).Error; err != nil {
		// Roll back the upload so the bucket does not accumulate orphans
		bestEffort("delete uploaded image after db failure", func() error {
			return s.store.Delete(ctx, key)
		})
		return nil, fmt.Errorf("failed to create image record: %w", err)
	}

	s.regenerateLowRes(ctx, img, data)

	return img, nil
}

// Update applies partial metadata changes and, when newAsset is non-empty,
// replaces the primary asset (recomputing the hash and the placeholder).
// Caption/order/cover changes alone never touch the hash or placeholder.
func (s *ImageService) Update(ctx context.Context, img *models.GalleryImage, newAsset []byte, ext string, fields ImageFields) error {
	updates := map[string]interface{}{}
	if fields.Caption != nil {
		img.Caption = *fields.Caption
		updates["caption"] = img.Caption
	}
	if fields.Order != nil {
		img.Order = *fields.Order
		updates["order"] = img.Order
	}
	if fields.IsCover != nil {
		img.IsCover = *fields.IsCover
		updates["is_cover"] = img.IsCover
	}

	oldKey := img.ImageKey
	replaced := len(newAsset) > 0
	if replaced {
		key := buildObjectKey(keyPrefix(img.OwnerType), ext)
		if err := s.store.Put(ctx, key, newAsset, imaging.DetectContentType(newAsset)); err != nil {
			return fmt.Errorf("failed to upload replacement image: %w", err)
		}
		img.ImageKey = key
		img.Hash = HashBytes(newAsset)
		updates["image_key"] = key
		updates["hash"] = img.Hash
	}

	if len(updates) > 0 {
		if err := s.db.Model(img).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update image record: %w", err)
		}
	}

	if replaced {
		s.onBeforeReplace(ctx, oldKey, img.ImageKey)
		s.regenerateLowRes(ctx, img, newAsset)
	} else if img.ImageLowKey == "" && img.ImageKey != "" {
		// Placeholder missing while a primary exists: self-heal using the
		// stored asset bytes.
		s.regenerateLowRes(ctx, img, nil)
	}

	return nil
}

// Delete removes the row first, then best-effort deletes both stored assets.
// Asset deletion failures never roll back the committed row deletion.
func (s *ImageService) Delete(ctx context.Context, img *models.GalleryImage) error {
	if err := s.db.Delete(img).Error; err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}
	s.onAfterDelete(ctx, img.ImageKey)
	if img.ImageLowKey != "" {
		s.onAfterDelete(ctx, img.ImageLowKey)
	}
	return nil
}

// onBeforeReplace drops the superseded primary asset and its stale
// placeholder.
func (s *ImageService) onBeforeReplace(ctx context.Context, oldKey, newKey string) {
	if oldKey == "" || oldKey == newKey {
		return
	}
	bestEffort("delete replaced image asset", func() error {
		return s.store.Delete(ctx, oldKey)
	})
}

// onAfterDelete drops a stored asset after its row is gone.
func (s *ImageService) onAfterDelete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	bestEffort("delete image asset", func() error {
		return s.store.Delete(ctx, key)
	})
}

// regenerateLowRes builds and stores the blurred placeholder, then persists
// its key with an update restricted to that one column. Every step is
// best-effort: a failed generation leaves the image in "variant absent"
// state and the save stands.
func (s *ImageService) regenerateLowRes(ctx context.Context, img *models.GalleryImage, data []byte) {
	bestEffort("generate low-res variant", func() error {
		var err error
		if len(data) == 0 {
			data, err = s.store.Get(ctx, img.ImageKey)
			if err != nil {
				return fmt.Errorf("read back primary asset: %w", err)
			}
		}

		low, err := s.lowres.GenerateLowRes(data)
		if err != nil {
			return err
		}

		oldLow := img.ImageLowKey
		lowKey := imaging.LowResKey(img.ImageKey)
		if err := s.store.Put(ctx, lowKey, low, "image/webp"); err != nil {
			return err
		}
		if err := s.db.Model(img).Update("image_low_key", lowKey).Error; err != nil {
			return err
		}
		img.ImageLowKey = lowKey

		if oldLow != "" && oldLow != lowKey {
			bestEffort("delete stale low-res asset", func() error {
				return s.store.Delete(ctx, oldLow)
			})
		}
		return nil
	})
}
