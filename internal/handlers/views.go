package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/models"
	"github.com/portfolio/backend/internal/services"
	"github.com/portfolio/backend/pkg/i18n"
)

// galleryImageView serializes one gallery image with public asset URLs. The
// low-res URL is null until the placeholder has been generated.
func galleryImageView(store services.ObjectStore, img models.GalleryImage) gin.H {
	var lowURL interface{}
	if img.ImageLowKey != "" {
		lowURL = store.URL(img.ImageLowKey)
	}
	return gin.H{
		"id":            img.ID,
		"image_url":     store.URL(img.ImageKey),
		"image_low_url": lowURL,
		"caption":       img.Caption,
		"order":         img.Order,
		"is_cover":      img.IsCover,
		"hash":          img.Hash,
	}
}

func galleryView(store services.ObjectStore, images []models.GalleryImage) []gin.H {
	views := make([]gin.H, 0, len(images))
	for _, img := range images {
		views = append(views, galleryImageView(store, img))
	}
	return views
}

// resolvedView renders a language resolution result under the given content
// key ("text" for titles, "md" for markdown bodies).
func resolvedView(r i18n.Resolved, key string) gin.H {
	if !r.OK {
		return gin.H{key: nil, "lang": nil}
	}
	return gin.H{key: r.Text, "lang": r.Lang}
}

// projectView serializes a project, resolving title and content for the
// requested display language.
func projectView(store services.ObjectStore, p *models.Project, lang string) gin.H {
	titleResolved := i18n.Resolve(lang, p.ContentSourceLang, p.Title, p.TitleI18n)
	contentResolved := i18n.Resolve(lang, p.ContentSourceLang, p.Content, p.ContentI18n.MDMap())

	return gin.H{
		"id":                  p.ID,
		"title":               p.Title,
		"content":             p.Content,
		"content_source_lang": p.ContentSourceLang,
		"title_i18n":          p.TitleI18n,
		"content_i18n":        p.ContentI18n,
		"title_resolved":      resolvedView(titleResolved, "text"),
		"content_resolved":    resolvedView(contentResolved, "md"),
		"order":               p.Order,
		"hidden":              p.Hidden,
		"images":              galleryView(store, p.Images),
	}
}

// aboutView serializes the about section with its legacy image URL and
// gallery.
func aboutView(store services.ObjectStore, a *models.About) gin.H {
	var imageURL interface{}
	if a.ImageKey != "" {
		imageURL = store.URL(a.ImageKey)
	}
	return gin.H{
		"id":           a.ID,
		"image_url":    imageURL,
		"title_i18n":   a.TitleI18n,
		"content_i18n": a.ContentI18n,
		"images":       galleryView(store, a.Images),
		"updated_at":   a.UpdatedAt,
	}
}

func contactView(c *models.Contact) gin.H {
	return gin.H{
		"id":               c.ID,
		"title_i18n":       c.TitleI18n,
		"description_i18n": c.DescriptionI18n,
		"updated_at":       c.UpdatedAt,
	}
}
