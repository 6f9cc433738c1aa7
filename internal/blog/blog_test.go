package blog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
)

type fakeRepo struct {
	posts map[uuid.UUID]*models.BlogPost
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: map[uuid.UUID]*models.BlogPost{}}
}

func (f *fakeRepo) Create(_ context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	for _, existing := range f.posts {
		if existing.Slug == post.Slug {
			return nil, &pq.Error{Code: "23505"}
		}
	}
	post.ID = uuid.New()
	post.CreatedAt = time.Now().UTC()
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.BlogPost, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakeRepo) FindBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	for _, post := range f.posts {
		if post.Slug == slug {
			copied := *post
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) List(_ context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, post := range f.posts {
		if publishedOnly && !post.IsPublished {
			continue
		}
		out = append(out, *post)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	post, ok := f.posts[id]
	if !ok {
		return nil
	}
	if v, ok := updates["title"].(string); ok {
		post.Title = v
	}
	if v, ok := updates["is_published"].(bool); ok {
		post.IsPublished = v
	}
	if v, ok := updates["published_at"].(time.Time); ok {
		post.PublishedAt = &v
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.posts[id]; !ok {
		return 0, nil
	}
	delete(f.posts, id)
	return 1, nil
}

func (f *fakeRepo) CountPublished(_ context.Context) (int64, error) {
	var count int64
	for _, post := range f.posts {
		if post.IsPublished {
			count++
		}
	}
	return count, nil
}

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestCreatePublishedStampsPublishedAt(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.Create(context.Background(), CreateInput{
		Title:      "Drip Irrigation Basics",
		Slug:       "Drip Irrigation Basics",
		Excerpt:    "A primer",
		Content:    "Full article",
		AuthorName: "Irrigo Team",
		Publish:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "drip-irrigation-basics", post.Slug)
	assert.True(t, post.IsPublished)
	require.NotNil(t, post.PublishedAt)
}

func TestCreateDraftHasNoPublishedAt(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.Create(context.Background(), CreateInput{
		Title: "Draft", Slug: "draft", AuthorName: "Irrigo Team",
	})
	require.NoError(t, err)

	assert.False(t, post.IsPublished)
	assert.Nil(t, post.PublishedAt)
}

func TestCreateDuplicateSlugConflicts(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Title: "One", Slug: "same"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Title: "Two", Slug: "same"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestPublishViaUpdateStampsOnce(t *testing.T) {
	svc, repo := newTestService(t)

	post, err := svc.Create(context.Background(), CreateInput{Title: "Draft", Slug: "draft"})
	require.NoError(t, err)

	publish := true
	updated, err := svc.Update(context.Background(), post.ID, UpdateInput{Publish: &publish})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	first := *updated.PublishedAt

	// Re-publishing must not move the original publication time.
	_, err = svc.Update(context.Background(), post.ID, UpdateInput{Publish: &publish})
	require.NoError(t, err)
	assert.Equal(t, first, *repo.posts[post.ID].PublishedAt)
}

func TestGetBySlugUnknownReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetBySlug(context.Background(), "missing")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteUnknownReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
