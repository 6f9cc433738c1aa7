package users

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kamaukinuthia/irrigo-backend/pkg/config"
	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
	"github.com/kamaukinuthia/irrigo-backend/pkg/security"
)

type fakeRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, &pq.Error{Code: "23505"}
		}
	}
	user.ID = uuid.New()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == strings.ToLower(email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	user, ok := f.users[id]
	if !ok {
		return nil
	}
	if v, ok := updates["is_active"].(bool); ok {
		user.IsActive = v
	}
	if v, ok := updates["role"].(enums.StaffRole); ok {
		user.Role = v
	}
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestCreateHashesTempPassword(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo, testPasswordConfig(), nil)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateInput{
		Email:     "New.Staff@irrigo.example",
		FirstName: "New",
		LastName:  "Staff",
	})
	require.NoError(t, err)

	assert.Equal(t, "new.staff@irrigo.example", created.User.Email)
	assert.Equal(t, enums.StaffRoleStaff, created.User.Role)
	assert.True(t, created.User.IsActive)
	require.NotEmpty(t, created.TempPassword)
	assert.NotEqual(t, created.TempPassword, created.User.PasswordHash)

	ok, err := security.VerifyPassword(created.TempPassword, created.User.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo, testPasswordConfig(), nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Email: "dup@irrigo.example"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Email: "dup@irrigo.example"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc, err := NewService(newFakeRepo(), testPasswordConfig(), nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{
		Email: "x@irrigo.example",
		Role:  enums.StaffRole("owner"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeactivateFlipsFlag(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo, testPasswordConfig(), nil)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateInput{Email: "a@irrigo.example"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.User.ID))
	assert.False(t, repo.users[created.User.ID].IsActive)
}

func TestDeactivateUnknownReturnsNotFound(t *testing.T) {
	svc, err := NewService(newFakeRepo(), testPasswordConfig(), nil)
	require.NoError(t, err)

	err = svc.Deactivate(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
