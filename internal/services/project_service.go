package services

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/portfolio/backend/internal/models"
	"github.com/portfolio/backend/pkg/i18n"
	"github.com/portfolio/backend/pkg/validation"
	"gorm.io/gorm"
)

var (
	// ErrReorderMismatch rejects a reorder request whose id set does not
	// exactly match the existing projects.
	ErrReorderMismatch = errors.New("the list of ids does not match with existing projects")
	// ErrMissingUploadFile rejects a legacy upload without a file.
	ErrMissingUploadFile = errors.New("no image file was sent")
	// ErrInvalidSourceLang rejects a content_source_lang that is not a
	// language code.
	ErrInvalidSourceLang = errors.New("content_source_lang must be a valid language code")
)

// ProjectInput carries a partial write to a project: scalar fields, i18n
// deltas and gallery instructions. Nil pointers and nil maps leave the
// persisted value untouched.
type ProjectInput struct {
	Title             *string                         `json:"title"`
	Content           *string                         `json:"content"`
	ContentSourceLang *string                         `json:"content_source_lang"`
	TitleI18n         map[string]string               `json:"title_i18n"`
	ContentI18n       map[string]models.MarkdownDoc   `json:"content_i18n"`
	Hidden            *bool                           `json:"hidden"`
	Images            []ImageOp                       `json:"images"`
	ImagesToRemove    []uint                          `json:"images_to_remove"`
}

type ProjectService struct {
	db                *gorm.DB
	store             ObjectStore
	gallery           *GalleryService
	defaultSourceLang string
}

func NewProjectService(db *gorm.DB, store ObjectStore, gallery *GalleryService, defaultSourceLang string) *ProjectService {
	return &ProjectService{
		db:                db,
		store:             store,
		gallery:           gallery,
		defaultSourceLang: defaultSourceLang,
	}
}

// List returns projects sorted by (order, id); hidden ones only when asked.
func (s *ProjectService) List(includeHidden bool) ([]models.Project, error) {
	query := withGallery(s.db).Order("\"order\" ASC, id ASC")
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}
	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Get(id uint) (*models.Project, error) {
	var project models.Project
	if err := withGallery(s.db).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Create builds a new project at the end of the ordering (max order + 1) and
// creates the submitted gallery entries.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	if in.ContentSourceLang != nil && !validation.ValidateLanguageTag(*in.ContentSourceLang) {
		return nil, ErrInvalidSourceLang
	}

	nextOrder, err := s.nextOrder()
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ContentSourceLang: s.defaultSourceLang,
		TitleI18n:         i18n.Merge(nil, in.TitleI18n),
		ContentI18n:       models.LocaleDocMap{},
		Order:             nextOrder,
	}
	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Content != nil {
		project.Content = *in.Content
	}
	if in.ContentSourceLang != nil {
		project.ContentSourceLang = *in.ContentSourceLang
	}
	if in.Hidden != nil {
		project.Hidden = *in.Hidden
	}
	for lang, doc := range in.ContentI18n {
		project.ContentI18n[lang] = doc
	}

	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project record: %w", err)
	}

	if err := s.gallery.Reconcile(ctx, models.OwnerTypeProject, project.ID, nil, in.Images); err != nil {
		return nil, err
	}

	return s.Get(project.ID)
}

// Update applies scalar changes, merges i18n deltas and reconciles the
// gallery instructions. Order is not writable here; use Reorder.
func (s *ProjectService) Update(ctx context.Context, id uint, in ProjectInput) (*models.Project, error) {
	if in.ContentSourceLang != nil && !validation.ValidateLanguageTag(*in.ContentSourceLang) {
		return nil, ErrInvalidSourceLang
	}

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		project.Title = *in.Title
		updates["title"] = project.Title
	}
	if in.Content != nil {
		project.Content = *in.Content
		updates["content"] = project.Content
	}
	if in.ContentSourceLang != nil {
		project.ContentSourceLang = *in.ContentSourceLang
		updates["content_source_lang"] = project.ContentSourceLang
	}
	if in.Hidden != nil {
		project.Hidden = *in.Hidden
		updates["hidden"] = project.Hidden
	}
	if in.TitleI18n != nil {
		project.TitleI18n = i18n.Merge(project.TitleI18n, in.TitleI18n)
		updates["title_i18n"] = project.TitleI18n
	}
	if in.ContentI18n != nil {
		merged := models.LocaleDocMap{}
		for lang, doc := range project.ContentI18n {
			merged[lang] = doc
		}
		for lang, doc := range in.ContentI18n {
			merged[lang] = doc
		}
		project.ContentI18n = merged
		updates["content_i18n"] = project.ContentI18n
	}

	if len(updates) > 0 {
		if err := s.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update project record: %w", err)
		}
	}

	if err := s.gallery.Reconcile(ctx, models.OwnerTypeProject, project.ID, in.ImagesToRemove, in.Images); err != nil {
		return nil, err
	}

	return s.Get(project.ID)
}

// Delete removes a project and its whole gallery, stored assets included.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return err
	}

	if err := s.gallery.DeleteAll(ctx, models.OwnerTypeProject, project.ID); err != nil {
		return err
	}

	if err := s.db.Delete(&project).Error; err != nil {
		return fmt.Errorf("failed to delete project record: %w", err)
	}

	return nil
}

// Reorder assigns each id its list-position index as the new order value, in
// one transaction. The id set must exactly match the existing projects.
func (s *ProjectService) Reorder(ids []uint) error {
	var existing []uint
	if err := s.db.Model(&models.Project{}).Order("id ASC").Pluck("id", &existing).Error; err != nil {
		return err
	}

	if len(ids) != len(existing) {
		return ErrReorderMismatch
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return ErrReorderMismatch
		}
		seen[id] = true
	}
	for _, id := range existing {
		if !seen[id] {
			return ErrReorderMismatch
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for idx, id := range ids {
			if err := tx.Model(&models.Project{}).Where("id = ?", id).Update("order", idx).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// HandleImageUpload is the legacy multipart upload path: optionally deletes
// the listed existing keys, then stores the new file under the project's
// namespace and returns its key.
func (s *ProjectService) HandleImageUpload(ctx context.Context, projectID uint, filename string, data []byte, contentType string, existingKeys []string) (string, error) {
	if len(data) == 0 {
		return "", ErrMissingUploadFile
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return "", err
	}

	for _, key := range existingKeys {
		key := key
		bestEffort("delete existing upload", func() error {
			return s.store.Delete(ctx, key)
		})
	}

	key := fmt.Sprintf("projects/%d/%s", project.ID, path.Base(filename))
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return key, nil
}

func (s *ProjectService) nextOrder() (int, error) {
	var maxOrder *int
	if err := s.db.Model(&models.Project{}).Select("MAX(\"order\")").Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 0, nil
	}
	return *maxOrder + 1, nil
}
