package projects

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
)

type fakeRepo struct {
	projects map[uuid.UUID]*models.Project
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{projects: map[uuid.UUID]*models.Project{}}
}

func (f *fakeRepo) Create(_ context.Context, project *models.Project) (*models.Project, error) {
	project.ID = uuid.New()
	project.CreatedAt = time.Now().UTC()
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *project
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, projectType string) ([]models.Project, error) {
	var out []models.Project
	for _, project := range f.projects {
		if projectType != "" && project.ProjectType != projectType {
			continue
		}
		out = append(out, *project)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	project, ok := f.projects[id]
	if !ok {
		return nil
	}
	if title, ok := updates["title"].(string); ok {
		project.Title = title
	}
	if projectType, ok := updates["project_type"].(string); ok {
		project.ProjectType = projectType
	}
	if completedAt, ok := updates["completed_at"].(*time.Time); ok {
		project.CompletedAt = completedAt
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.projects[id]; !ok {
		return 0, nil
	}
	delete(f.projects, id)
	return 1, nil
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(newFakeRepo())
	require.NoError(t, err)
	return svc
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Title: "  "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateTrimsFields(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Title:       " Two-acre drip installation ",
		Location:    " Nakuru ",
		ProjectType: "drip",
		AreaSize:    "2 acres",
	})
	require.NoError(t, err)
	assert.Equal(t, "Two-acre drip installation", created.Title)
	assert.Equal(t, "Nakuru", created.Location)
}

func TestListFiltersByType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Title: "Drip job", ProjectType: "drip"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Title: "Pivot job", ProjectType: "pivot"})
	require.NoError(t, err)

	drip, err := svc.List(context.Background(), "drip")
	require.NoError(t, err)
	require.Len(t, drip, 1)
	assert.Equal(t, "Drip job", drip[0].Title)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateStampsCompletedAt(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{Title: "Greenhouse fit-out", ProjectType: "greenhouse"})
	require.NoError(t, err)
	require.Nil(t, created.CompletedAt)

	done := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{CompletedAt: &done})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.CompletedAt.Equal(done))
}

func TestUpdateUnknownProject(t *testing.T) {
	svc := newTestService(t)

	title := "New title"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Title: &title})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteUnknownProject(t *testing.T) {
	svc := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
