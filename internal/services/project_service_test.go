package services

import (
	"context"
	"testing"

	"github.com/portfolio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectService(t *testing.T) (*ProjectService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewProjectService(env.db, env.store, env.gallery, "es"), env
}

func TestProjectCreateAppendsToOrdering(t *testing.T) {
	svc, _ := newProjectService(t)

	for i, title := range []string{"uno", "dos", "tres"} {
		project, err := svc.Create(context.Background(), ProjectInput{Title: strPtr(title)})
		require.NoError(t, err)
		assert.Equal(t, i, project.Order)
		assert.Equal(t, "es", project.ContentSourceLang)
	}
}

func TestProjectCreateWithGallery(t *testing.T) {
	svc, _ := newProjectService(t)

	project, err := svc.Create(context.Background(), ProjectInput{
		Title: strPtr("portfolio"),
		Images: []ImageOp{
			{Image: strPtr(pngDataURI(t, 1)), IsCover: boolPtr(true)},
			{Image: strPtr(pngDataURI(t, 2)), Order: intPtr(1)},
		},
	})
	require.NoError(t, err)
	require.Len(t, project.Images, 2)
	assert.True(t, project.Images[0].IsCover)
	assert.NotEmpty(t, project.Images[0].ImageLowKey)
}

func TestProjectUpdateMergesTranslations(t *testing.T) {
	svc, _ := newProjectService(t)

	project, err := svc.Create(context.Background(), ProjectInput{
		Title:     strPtr("obra"),
		TitleI18n: map[string]string{"en": "Work", "de": "Werk"},
		ContentI18n: map[string]models.MarkdownDoc{
			"en": {MD: "# English"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), project.ID, ProjectInput{
		TitleI18n: map[string]string{"en": "Piece"},
		ContentI18n: map[string]models.MarkdownDoc{
			"fr": {MD: "# Français"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Piece", updated.TitleI18n["en"])
	assert.Equal(t, "Werk", updated.TitleI18n["de"])
	assert.Equal(t, "# English", updated.ContentI18n["en"].MD)
	assert.Equal(t, "# Français", updated.ContentI18n["fr"].MD)
	assert.Equal(t, "obra", updated.Title)
}

func TestProjectRejectsInvalidSourceLang(t *testing.T) {
	svc, env := newProjectService(t)

	_, err := svc.Create(context.Background(), ProjectInput{
		ContentSourceLang: strPtr("Español!"),
	})
	assert.ErrorIs(t, err, ErrInvalidSourceLang)

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)

	project, err := svc.Create(context.Background(), ProjectInput{
		ContentSourceLang: strPtr("pt-BR"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", project.ContentSourceLang)

	_, err = svc.Update(context.Background(), project.ID, ProjectInput{
		ContentSourceLang: strPtr("12"),
	})
	assert.ErrorIs(t, err, ErrInvalidSourceLang)

	kept, err := svc.Get(project.ID)
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", kept.ContentSourceLang)
}

func TestProjectUpdateDoesNotTouchOrder(t *testing.T) {
	svc, _ := newProjectService(t)

	first, err := svc.Create(context.Background(), ProjectInput{Title: strPtr("uno")})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), ProjectInput{Title: strPtr("dos")})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), second.ID, ProjectInput{Title: strPtr("dos bis")})
	require.NoError(t, err)
	assert.Equal(t, second.Order, updated.Order)

	kept, err := svc.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Order, kept.Order)
}

func TestProjectListHidesHiddenByDefault(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Create(context.Background(), ProjectInput{Title: strPtr("visible")})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), ProjectInput{Title: strPtr("draft"), Hidden: boolPtr(true)})
	require.NoError(t, err)

	public, err := svc.List(false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "visible", public[0].Title)

	all, err := svc.List(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectReorderAssignsListIndexes(t *testing.T) {
	svc, env := newProjectService(t)

	var ids []uint
	for _, title := range []string{"uno", "dos", "tres"} {
		project, err := svc.Create(context.Background(), ProjectInput{Title: strPtr(title)})
		require.NoError(t, err)
		ids = append(ids, project.ID)
	}

	require.NoError(t, svc.Reorder([]uint{ids[2], ids[0], ids[1]}))

	var projects []models.Project
	require.NoError(t, env.db.Order("\"order\" ASC").Find(&projects).Error)
	require.Len(t, projects, 3)
	assert.Equal(t, "tres", projects[0].Title)
	assert.Equal(t, "uno", projects[1].Title)
	assert.Equal(t, "dos", projects[2].Title)
}

func TestProjectReorderRejectsMismatchedSets(t *testing.T) {
	svc, env := newProjectService(t)

	var ids []uint
	for _, title := range []string{"uno", "dos", "tres"} {
		project, err := svc.Create(context.Background(), ProjectInput{Title: strPtr(title)})
		require.NoError(t, err)
		ids = append(ids, project.ID)
	}

	cases := map[string][]uint{
		"missing id":   {ids[0], ids[1]},
		"unknown id":   {ids[0], ids[1], 9999},
		"duplicate id": {ids[0], ids[0], ids[1]},
		"extra id":     {ids[0], ids[1], ids[2], 9999},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Reorder(input), ErrReorderMismatch)
		})
	}

	// Rejections must leave the ordering untouched
	var projects []models.Project
	require.NoError(t, env.db.Order("\"order\" ASC").Find(&projects).Error)
	for i, project := range projects {
		assert.Equal(t, i, project.Order)
	}
}

func TestProjectDeleteCascadesGallery(t *testing.T) {
	svc, env := newProjectService(t)

	project, err := svc.Create(context.Background(), ProjectInput{
		Title: strPtr("doomed"),
		Images: []ImageOp{
			{Image: strPtr(pngDataURI(t, 1))},
			{Image: strPtr(pngDataURI(t, 2))},
		},
	})
	require.NoError(t, err)
	require.Len(t, project.Images, 2)

	require.NoError(t, svc.Delete(context.Background(), project.ID))

	_, err = svc.Get(project.ID)
	assert.Error(t, err)
	assert.Empty(t, galleryOf(t, env, models.OwnerTypeProject, project.ID))
	for _, img := range project.Images {
		assert.True(t, env.store.wasDeleted(img.ImageKey))
		assert.True(t, env.store.wasDeleted(img.ImageLowKey))
	}
}

func TestHandleImageUpload(t *testing.T) {
	svc, env := newProjectService(t)

	project, err := svc.Create(context.Background(), ProjectInput{Title: strPtr("uploads")})
	require.NoError(t, err)

	_, err = svc.HandleImageUpload(context.Background(), project.ID, "photo.jpg", nil, "image/jpeg", nil)
	assert.ErrorIs(t, err, ErrMissingUploadFile)

	env.store.objects["projects/old.jpg"] = []byte("old")
	key, err := svc.HandleImageUpload(context.Background(), project.ID, "dir/photo.jpg", []byte("new bytes"), "image/jpeg", []string{"projects/old.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "projects/1/photo.jpg", key)
	assert.Contains(t, env.store.objects, key)
	assert.True(t, env.store.wasDeleted("projects/old.jpg"))
}
