package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobly/api/internal/database/sqlbuild"
	platformconfig "github.com/jobly/api/internal/platform/config"
	"github.com/jobly/api/internal/types"
	userErrors "github.com/jobly/api/users/errors"
	"github.com/jobly/api/users/models"
	"github.com/jobly/api/users/repository"
)

const strongPassword = "correct-horse-battery-staple"

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

// stubTokens records the identities it signs for.
type stubTokens struct {
	issued []types.UserContext
	err    error
}

func (s *stubTokens) Create(user types.UserContext) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, user)
	return "token-" + user.Username, nil
}

func newService(repo *MockRepository, tokens *stubTokens) UserService {
	return NewUserService(repo, tokens, platformconfig.SecurityConfig{BcryptCost: bcrypt.MinCost, MinPasswordScore: 2})
}

func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := &models.RegisterRequest{Username: "u1", Password: strongPassword, FirstName: "U", LastName: "One", Email: "u1@example.com"}

	t.Run("stores a hash and returns a token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := &stubTokens{}
		mockRepo.On("Create", ctx, mock.MatchedBy(func(r *models.UserRecord) bool {
			return r.Username == "u1" && !r.IsAdmin &&
				bcrypt.CompareHashAndPassword([]byte(r.Password), []byte(strongPassword)) == nil
		})).Return(&models.User{Username: "u1"}, nil).Once()

		token, err := newService(mockRepo, tokens).Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "token-u1", token)
		assert.Equal(t, []types.UserContext{{Username: "u1"}}, tokens.issued)
		mockRepo.AssertExpectations(t)
	})

	t.Run("weak password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		weak := *req
		weak.Password = "u1u1u1"

		_, err := newService(mockRepo, &stubTokens{}).Register(ctx, &weak)

		require.ErrorIs(t, err, userErrors.ErrWeakPassword)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicateUser).Once()

		_, err := newService(mockRepo, &stubTokens{}).Register(ctx, req)
		require.ErrorIs(t, err, userErrors.ErrUserAlreadyExists)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	record := &models.UserRecord{User: models.User{Username: "admin", IsAdmin: true}, Password: hashForTest(t, strongPassword)}

	t.Run("valid credentials", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := &stubTokens{}
		mockRepo.On("FindByUsername", ctx, "admin").Return(record, nil).Once()

		token, err := newService(mockRepo, tokens).Authenticate(ctx, &models.LoginRequest{Username: "admin", Password: strongPassword})

		require.NoError(t, err)
		assert.Equal(t, "token-admin", token)
		assert.True(t, tokens.issued[0].IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("FindByUsername", ctx, "admin").Return(record, nil).Once()

		_, err := newService(mockRepo, &stubTokens{}).Authenticate(ctx, &models.LoginRequest{Username: "admin", Password: "nope"})
		require.ErrorIs(t, err, userErrors.ErrInvalidCredentials)
	})

	t.Run("unknown user looks like a bad password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound).Once()

		_, err := newService(mockRepo, &stubTokens{}).Authenticate(ctx, &models.LoginRequest{Username: "ghost", Password: "x"})
		require.ErrorIs(t, err, userErrors.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, userErrors.ErrUserNotFound)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	tokens := &stubTokens{}
	req := &models.CreateUserRequest{Username: "boss", Password: strongPassword, FirstName: "B", LastName: "Oss", Email: "b@example.com", IsAdmin: true}
	mockRepo.On("Create", ctx, mock.MatchedBy(func(r *models.UserRecord) bool { return r.IsAdmin })).
		Return(&models.User{Username: "boss", IsAdmin: true}, nil).Once()

	user, token, err := newService(mockRepo, tokens).Create(ctx, req)

	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, "token-boss", token)
	mockRepo.AssertExpectations(t)
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("includes applications", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("FindByUsername", ctx, "u1").Return(&models.UserRecord{User: models.User{Username: "u1"}, Password: "hash"}, nil).Once()
		mockRepo.On("FindAppliedJobs", ctx, "u1").Return([]int{2, 5}, nil).Once()

		detail, err := newService(mockRepo, &stubTokens{}).Get(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, []int{2, 5}, detail.Jobs)
		assert.Equal(t, "u1", detail.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("FindByUsername", ctx, "nope").Return(nil, repository.ErrUserNotFound).Once()

		_, err := newService(mockRepo, &stubTokens{}).Get(ctx, "nope")
		require.ErrorIs(t, err, userErrors.ErrUserNotFound)
		mockRepo.AssertNotCalled(t, "FindAppliedJobs", mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	self := types.UserContext{Username: "u1"}
	admin := types.UserContext{Username: "root", IsAdmin: true}

	t.Run("fixed field order", func(t *testing.T) {
		mockRepo := new(MockRepository)
		want := sqlbuild.Assignments{}.Set("firstName", "New").Set("email", "n@example.com")
		mockRepo.On("Update", ctx, "u1", want).Return(&models.User{Username: "u1", FirstName: "New"}, nil).Once()

		user, err := newService(mockRepo, &stubTokens{}).Update(ctx, self, "u1", &models.UpdateUserRequest{
			Email:     strPtr("n@example.com"),
			FirstName: strPtr("New"),
		})

		require.NoError(t, err)
		assert.Equal(t, "New", user.FirstName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("password is re-hashed", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Update", ctx, "u1", mock.MatchedBy(func(a sqlbuild.Assignments) bool {
			if len(a) != 1 || a[0].Field != "password" {
				return false
			}
			hash, ok := a[0].Value.(string)
			return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte(strongPassword)) == nil
		})).Return(&models.User{Username: "u1"}, nil).Once()

		_, err := newService(mockRepo, &stubTokens{}).Update(ctx, self, "u1", &models.UpdateUserRequest{Password: strPtr(strongPassword)})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		_, err := newService(mockRepo, &stubTokens{}).Update(ctx, self, "u1", &models.UpdateUserRequest{Password: strPtr("aaaaa")})
		require.ErrorIs(t, err, userErrors.ErrWeakPassword)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("password matching the username is rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		_, err := newService(mockRepo, &stubTokens{}).Update(ctx, self, "harriet.beecher", &models.UpdateUserRequest{Password: strPtr("harriet.beecher")})
		require.ErrorIs(t, err, userErrors.ErrWeakPassword)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("isAdmin needs an admin", func(t *testing.T) {
		mockRepo := new(MockRepository)
		_, err := newService(mockRepo, &stubTokens{}).Update(ctx, self, "u1", &models.UpdateUserRequest{IsAdmin: boolPtr(true)})
		require.ErrorIs(t, err, userErrors.ErrAdminOnlyField)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin may grant admin", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Update", ctx, "u1", sqlbuild.Assignments{}.Set("isAdmin", true)).
			Return(&models.User{Username: "u1", IsAdmin: true}, nil).Once()

		user, err := newService(mockRepo, &stubTokens{}).Update(ctx, admin, "u1", &models.UpdateUserRequest{IsAdmin: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
	})

	t.Run("empty update", func(t *testing.T) {
		mockRepo := new(MockRepository)
		_, err := newService(mockRepo, &stubTokens{}).Update(ctx, self, "u1", &models.UpdateUserRequest{})
		require.ErrorIs(t, err, sqlbuild.ErrNoData)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	mockRepo.On("Delete", ctx, "nope").Return(repository.ErrUserNotFound).Once()

	err := newService(mockRepo, &stubTokens{}).Remove(ctx, "nope")
	require.ErrorIs(t, err, userErrors.ErrUserNotFound)
}

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()

	t.Run("applied", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Apply", ctx, "u1", 3).Return(nil).Once()
		require.NoError(t, newService(mockRepo, &stubTokens{}).ApplyToJob(ctx, "u1", 3))
	})

	t.Run("missing job", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Apply", ctx, "u1", 99).Return(repository.ErrJobNotFound).Once()

		err := newService(mockRepo, &stubTokens{}).ApplyToJob(ctx, "u1", 99)
		require.ErrorIs(t, err, userErrors.ErrJobNotFound)
	})

	t.Run("unexpected error passes through", func(t *testing.T) {
		mockRepo := new(MockRepository)
		boom := errors.New("boom")
		mockRepo.On("Apply", ctx, "u1", 3).Return(boom).Once()

		err := newService(mockRepo, &stubTokens{}).ApplyToJob(ctx, "u1", 3)
		require.ErrorIs(t, err, boom)
	})
}
