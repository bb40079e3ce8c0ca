package services

import (
	"fmt"

	"github.com/portfolio/backend/internal/models"
	"github.com/portfolio/backend/pkg/i18n"
	"gorm.io/gorm"
)

// ContactInput carries a partial write to the contact section.
type ContactInput struct {
	TitleI18n       map[string]string `json:"title_i18n"`
	DescriptionI18n map[string]string `json:"description_i18n"`
}

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

func (s *ContactService) List() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *ContactService) Get(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Create(in ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		TitleI18n:       i18n.Merge(nil, in.TitleI18n),
		DescriptionI18n: i18n.Merge(nil, in.DescriptionI18n),
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact record: %w", err)
	}
	return contact, nil
}

// Update merges incoming i18n deltas into the persisted maps; languages not
// present in the request are left untouched.
func (s *ContactService) Update(id uint, in ContactInput) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.First(&contact, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.TitleI18n != nil {
		contact.TitleI18n = i18n.Merge(contact.TitleI18n, in.TitleI18n)
		updates["title_i18n"] = contact.TitleI18n
	}
	if in.DescriptionI18n != nil {
		contact.DescriptionI18n = i18n.Merge(contact.DescriptionI18n, in.DescriptionI18n)
		updates["description_i18n"] = contact.DescriptionI18n
	}

	if len(updates) > 0 {
		if err := s.db.Model(&contact).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update contact record: %w", err)
		}
	}

	return &contact, nil
}

func (s *ContactService) Delete(id uint) error {
	result := s.db.Delete(&models.Contact{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
