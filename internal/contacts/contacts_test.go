package contacts

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
	contacts map[uuid.UUID]*models.Contact
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contacts: map[uuid.UUID]*models.Contact{}}
}

func (f *fakeRepo) Create(_ context.Context, contact *models.Contact) (*models.Contact, error) {
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now().UTC()
	f.contacts[contact.ID] = contact
	return contact, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, ok := f.contacts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *contact
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, unresolvedOnly bool) ([]models.Contact, error) {
	var out []models.Contact
	for _, contact := range f.contacts {
		if unresolvedOnly && contact.IsResolved {
			continue
		}
		out = append(out, *contact)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	contact, ok := f.contacts[id]
	if !ok {
		return nil
	}
	if resolved, ok := updates["is_resolved"].(bool); ok {
		contact.IsResolved = resolved
	}
	if updatedAt, ok := updates["updated_at"].(time.Time); ok {
		contact.UpdatedAt = updatedAt
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.contacts[id]; !ok {
		return 0, nil
	}
	delete(f.contacts, id)
	return 1, nil
}

func (f *fakeRepo) CountUnresolved(_ context.Context) (int64, error) {
	var count int64
	for _, contact := range f.contacts {
		if !contact.IsResolved {
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

func TestCreateNormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name:    "  Jane Farmer ",
		Email:   " Jane@Example.COM ",
		Message: "Need a drip system for two acres.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Farmer", created.Name)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.False(t, created.IsResolved)
}

func TestCreateRejectsBlankMessage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Jane", Email: "jane@example.com", Message: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestResolveFlipsFlagBothWays(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{Name: "Jane", Email: "jane@example.com", Message: "hello"})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)

	reopened, err := svc.Resolve(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.IsResolved)
}

func TestResolveUnknownContact(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), uuid.New(), true)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListUnresolvedOnly(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Create(context.Background(), CreateInput{Name: "A", Email: "a@example.com", Message: "one"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Name: "B", Email: "b@example.com", Message: "two"})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), first.ID, true)
	require.NoError(t, err)

	open, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "B", open[0].Name)
}

func TestDeleteUnknownContact(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
