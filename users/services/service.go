package services

import (
	"context"
	"errors"
	"fmt"

	gopass "github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobly/api/internal/database/sqlbuild"
	"github.com/jobly/api/internal/pkg/log"
	platformconfig "github.com/jobly/api/internal/platform/config"
	"github.com/jobly/api/internal/types"
	userErrors "github.com/jobly/api/users/errors"
	"github.com/jobly/api/users/models"
	"github.com/jobly/api/users/repository"
)

// UserService defines account and application operations.
type UserService interface {
	// Register creates a non-admin user and returns a token for them.
	Register(ctx context.Context, req *models.RegisterRequest) (string, error)

	// Authenticate checks credentials and returns a token.
	Authenticate(ctx context.Context, req *models.LoginRequest) (string, error)

	// Create adds a user on behalf of an admin and returns it with a token.
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, string, error)

	FindAll(ctx context.Context) ([]models.User, error)

	// Get returns a user with the ids of the jobs they applied to.
	Get(ctx context.Context, username string) (*models.UserDetail, error)

	// Update applies a partial update. actor is the authenticated caller.
	Update(ctx context.Context, actor types.UserContext, username string, req *models.UpdateUserRequest) (*models.User, error)

	Remove(ctx context.Context, username string) error

	ApplyToJob(ctx context.Context, username string, jobID int) error
}

// TokenCreator signs tokens for authenticated users.
type TokenCreator interface {
	Create(user types.UserContext) (string, error)
}

type userService struct {
	repo     repository.Repository
	tokens   TokenCreator
	security platformconfig.SecurityConfig
}

// NewUserService constructs a user service.
func NewUserService(repo repository.Repository, tokens TokenCreator, security platformconfig.SecurityConfig) UserService {
	if security.BcryptCost == 0 {
		security.BcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, tokens: tokens, security: security}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	user, err := s.insert(ctx, &models.CreateUserRequest{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return "", err
	}
	log.InfoWithContext(ctx, "user registered: %s", user.Username)
	return s.token(user)
}

func (s *userService) Authenticate(ctx context.Context, req *models.LoginRequest) (string, error) {
	record, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", userErrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.Password), []byte(req.Password)); err != nil {
		log.WarnWithContext(ctx, "failed login for %s", req.Username)
		return "", userErrors.ErrInvalidCredentials
	}
	return s.token(&record.User)
}

func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, string, error) {
	user, err := s.insert(ctx, req)
	if err != nil {
		return nil, "", err
	}
	log.InfoWithContext(ctx, "user created: %s (admin=%t)", user.Username, user.IsAdmin)

	token, err := s.token(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) FindAll(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.UserDetail, error) {
	record, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapRepositoryError(err, username)
	}

	jobs, err := s.repo.FindAppliedJobs(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	return &models.UserDetail{User: record.User, Jobs: jobs}, nil
}

func (s *userService) Update(ctx context.Context, actor types.UserContext, username string, req *models.UpdateUserRequest) (*models.User, error) {
	if req != nil && req.IsAdmin != nil && !actor.IsAdmin {
		return nil, userErrors.ErrAdminOnlyField
	}

	updates, err := s.updateAssignments(username, req)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, sqlbuild.ErrNoData
	}

	user, err := s.repo.Update(ctx, username, updates)
	if err != nil {
		return nil, mapRepositoryError(err, username)
	}
	return user, nil
}

func (s *userService) Remove(ctx context.Context, username string) error {
	if err := s.repo.Delete(ctx, username); err != nil {
		return mapRepositoryError(err, username)
	}
	log.InfoWithContext(ctx, "user removed: %s", username)
	return nil
}

func (s *userService) ApplyToJob(ctx context.Context, username string, jobID int) error {
	if err := s.repo.Apply(ctx, username, jobID); err != nil {
		return mapRepositoryError(err, fmt.Sprintf("%s -> %d", username, jobID))
	}
	return nil
}

// insert checks password strength, hashes the password and stores the user.
func (s *userService) insert(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := s.checkStrength(req.Password, req.Username, req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &models.UserRecord{
		User: models.User{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			IsAdmin:   req.IsAdmin,
		},
		Password: hash,
	})
	if err != nil {
		return nil, mapRepositoryError(err, req.Username)
	}
	return user, nil
}

func (s *userService) checkStrength(password string, userInputs ...string) error {
	strength := gopass.PasswordStrength(password, userInputs)
	if strength.Score < s.security.MinPasswordScore {
		return fmt.Errorf("%w: score %d, need %d", userErrors.ErrWeakPassword, strength.Score, s.security.MinPasswordScore)
	}
	return nil
}

func (s *userService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *userService) token(user *models.User) (string, error) {
	token, err := s.tokens.Create(types.UserContext{Username: user.Username, IsAdmin: user.IsAdmin})
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return token, nil
}

// updateAssignments lists the fields present in req in a fixed order. A new
// password is hashed before it reaches the repository.
func (s *userService) updateAssignments(username string, req *models.UpdateUserRequest) (sqlbuild.Assignments, error) {
	var updates sqlbuild.Assignments
	if req == nil {
		return updates, nil
	}
	if req.FirstName != nil {
		updates = updates.Set("firstName", *req.FirstName)
	}
	if req.LastName != nil {
		updates = updates.Set("lastName", *req.LastName)
	}
	if req.Email != nil {
		updates = updates.Set("email", *req.Email)
	}
	if req.Password != nil {
		inputs := []string{username}
		for _, v := range []*string{req.FirstName, req.LastName, req.Email} {
			if v != nil {
				inputs = append(inputs, *v)
			}
		}
		if err := s.checkStrength(*req.Password, inputs...); err != nil {
			return nil, err
		}
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		updates = updates.Set("password", hash)
	}
	if req.IsAdmin != nil {
		updates = updates.Set("isAdmin", *req.IsAdmin)
	}
	return updates, nil
}

func mapRepositoryError(err error, ref string) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return fmt.Errorf("%w: %s", userErrors.ErrUserNotFound, ref)
	case errors.Is(err, repository.ErrDuplicateUser):
		return fmt.Errorf("%w: %s", userErrors.ErrUserAlreadyExists, ref)
	case errors.Is(err, repository.ErrJobNotFound):
		return fmt.Errorf("%w: %s", userErrors.ErrJobNotFound, ref)
	default:
		return err
	}
}
