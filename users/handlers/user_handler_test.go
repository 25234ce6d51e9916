package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobly/api/internal/types"
	userErrors "github.com/jobly/api/users/errors"
	"github.com/jobly/api/users/handlers"
	"github.com/jobly/api/users/models"
)

// MockUserService implements services.UserService for testing
type MockUserService struct {
	registerFunc     func(ctx context.Context, req *models.RegisterRequest) (string, error)
	authenticateFunc func(ctx context.Context, req *models.LoginRequest) (string, error)
	createFunc       func(ctx context.Context, req *models.CreateUserRequest) (*models.User, string, error)
	getFunc          func(ctx context.Context, username string) (*models.UserDetail, error)
	updateFunc       func(ctx context.Context, actor types.UserContext, username string, req *models.UpdateUserRequest) (*models.User, error)
	applyFunc        func(ctx context.Context, username string, jobID int) error
}

func (m *MockUserService) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return "", nil
}

func (m *MockUserService) Authenticate(ctx context.Context, req *models.LoginRequest) (string, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, req)
	}
	return "", nil
}

func (m *MockUserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, "", nil
}

func (m *MockUserService) FindAll(ctx context.Context) ([]models.User, error) {
	return []models.User{}, nil
}

func (m *MockUserService) Get(ctx context.Context, username string) (*models.UserDetail, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserService) Update(ctx context.Context, actor types.UserContext, username string, req *models.UpdateUserRequest) (*models.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, actor, username, req)
	}
	return nil, nil
}

func (m *MockUserService) Remove(ctx context.Context, username string) error {
	return nil
}

func (m *MockUserService) ApplyToJob(ctx context.Context, username string, jobID int) error {
	if m.applyFunc != nil {
		return m.applyFunc(ctx, username, jobID)
	}
	return nil
}

func setupApp(svc *MockUserService, user *types.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals(types.UserCtxName, *user)
		}
		return c.Next()
	})

	uh := handlers.NewUserHandler(svc)
	ah := handlers.NewAuthHandler(svc)
	app.Post("/auth/token", ah.Token)
	app.Post("/auth/register", ah.Register)
	app.Post("/users", uh.Create)
	app.Get("/users/:username", uh.Get)
	app.Patch("/users/:username", uh.Update)
	app.Delete("/users/:username", uh.Delete)
	app.Post("/users/:username/jobs/:id", uh.Apply)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestToken(t *testing.T) {
	t.Run("issued", func(t *testing.T) {
		app := setupApp(&MockUserService{
			authenticateFunc: func(ctx context.Context, req *models.LoginRequest) (string, error) {
				return "tok", nil
			},
		}, nil)

		resp, body := doRequest(t, app, http.MethodPost, "/auth/token", `{"username":"u1","password":"secret"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "tok", body["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		app := setupApp(&MockUserService{
			authenticateFunc: func(ctx context.Context, req *models.LoginRequest) (string, error) {
				return "", userErrors.ErrInvalidCredentials
			},
		}, nil)

		resp, body := doRequest(t, app, http.MethodPost, "/auth/token", `{"username":"u1","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, userErrors.CodeInvalidCredentials, body["code"])
	})

	t.Run("missing password", func(t *testing.T) {
		app := setupApp(&MockUserService{}, nil)
		resp, _ := doRequest(t, app, http.MethodPost, "/auth/token", `{"username":"u1"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRegister(t *testing.T) {
	valid := `{"username":"u1","password":"correct-horse","firstName":"U","lastName":"One","email":"u1@example.com"}`

	t.Run("created", func(t *testing.T) {
		app := setupApp(&MockUserService{
			registerFunc: func(ctx context.Context, req *models.RegisterRequest) (string, error) {
				return "tok-" + req.Username, nil
			},
		}, nil)

		resp, body := doRequest(t, app, http.MethodPost, "/auth/register", valid)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "tok-u1", body["token"])
	})

	t.Run("isAdmin is not accepted", func(t *testing.T) {
		app := setupApp(&MockUserService{}, nil)
		resp, _ := doRequest(t, app, http.MethodPost, "/auth/register",
			`{"username":"u1","password":"correct-horse","firstName":"U","lastName":"One","email":"u1@example.com","isAdmin":true}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid email", func(t *testing.T) {
		app := setupApp(&MockUserService{}, nil)
		resp, body := doRequest(t, app, http.MethodPost, "/auth/register",
			`{"username":"u1","password":"correct-horse","firstName":"U","lastName":"One","email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, body["details"])
	})

	t.Run("weak password", func(t *testing.T) {
		app := setupApp(&MockUserService{
			registerFunc: func(ctx context.Context, req *models.RegisterRequest) (string, error) {
				return "", userErrors.ErrWeakPassword
			},
		}, nil)

		resp, body := doRequest(t, app, http.MethodPost, "/auth/register", valid)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, userErrors.CodeWeakPassword, body["code"])
	})
}

func TestCreateUser(t *testing.T) {
	app := setupApp(&MockUserService{
		createFunc: func(ctx context.Context, req *models.CreateUserRequest) (*models.User, string, error) {
			return &models.User{Username: req.Username, IsAdmin: req.IsAdmin}, "tok", nil
		},
	}, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/users",
		`{"username":"boss","password":"correct-horse","firstName":"B","lastName":"Oss","email":"b@example.com","isAdmin":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "tok", body["token"])
	assert.Equal(t, true, body["user"].(map[string]interface{})["isAdmin"])
}

func TestGetUser(t *testing.T) {
	t.Run("found without password", func(t *testing.T) {
		app := setupApp(&MockUserService{
			getFunc: func(ctx context.Context, username string) (*models.UserDetail, error) {
				return &models.UserDetail{User: models.User{Username: username}, Jobs: []int{4}}, nil
			},
		}, nil)

		resp, body := doRequest(t, app, http.MethodGet, "/users/u1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "u1", user["username"])
		assert.Equal(t, []interface{}{float64(4)}, user["jobs"])
		assert.NotContains(t, user, "password")
	})

	t.Run("not found", func(t *testing.T) {
		app := setupApp(&MockUserService{
			getFunc: func(ctx context.Context, username string) (*models.UserDetail, error) {
				return nil, userErrors.ErrUserNotFound
			},
		}, nil)

		resp, body := doRequest(t, app, http.MethodGet, "/users/ghost", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, userErrors.CodeUserNotFound, body["code"])
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("passes the caller through", func(t *testing.T) {
		var actor types.UserContext
		app := setupApp(&MockUserService{
			updateFunc: func(ctx context.Context, a types.UserContext, username string, req *models.UpdateUserRequest) (*models.User, error) {
				actor = a
				return &models.User{Username: username, FirstName: *req.FirstName}, nil
			},
		}, &types.UserContext{Username: "u1"})

		resp, _ := doRequest(t, app, http.MethodPatch, "/users/u1", `{"firstName":"New"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "u1", actor.Username)
	})

	t.Run("username cannot change", func(t *testing.T) {
		app := setupApp(&MockUserService{}, &types.UserContext{Username: "u1"})
		resp, _ := doRequest(t, app, http.MethodPatch, "/users/u1", `{"username":"other"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("admin-only field", func(t *testing.T) {
		app := setupApp(&MockUserService{
			updateFunc: func(ctx context.Context, a types.UserContext, username string, req *models.UpdateUserRequest) (*models.User, error) {
				return nil, userErrors.ErrAdminOnlyField
			},
		}, &types.UserContext{Username: "u1"})

		resp, _ := doRequest(t, app, http.MethodPatch, "/users/u1", `{"isAdmin":true}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("weak password", func(t *testing.T) {
		app := setupApp(&MockUserService{
			updateFunc: func(ctx context.Context, a types.UserContext, username string, req *models.UpdateUserRequest) (*models.User, error) {
				return nil, userErrors.ErrWeakPassword
			},
		}, &types.UserContext{Username: "u1"})

		resp, body := doRequest(t, app, http.MethodPatch, "/users/u1", `{"password":"aaaaa"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, userErrors.CodeWeakPassword, body["code"])
	})
}

func TestDeleteUser(t *testing.T) {
	app := setupApp(&MockUserService{}, nil)
	resp, body := doRequest(t, app, http.MethodDelete, "/users/u1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", body["deleted"])
}

func TestApply(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		app := setupApp(&MockUserService{}, nil)
		resp, body := doRequest(t, app, http.MethodPost, "/users/u1/jobs/7", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 7, body["applied"])
	})

	t.Run("bad id", func(t *testing.T) {
		app := setupApp(&MockUserService{}, nil)
		resp, _ := doRequest(t, app, http.MethodPost, "/users/u1/jobs/0", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing job", func(t *testing.T) {
		app := setupApp(&MockUserService{
			applyFunc: func(ctx context.Context, username string, jobID int) error {
				return userErrors.ErrJobNotFound
			},
		}, nil)

		resp, body := doRequest(t, app, http.MethodPost, "/users/u1/jobs/99", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, userErrors.CodeJobNotFound, body["code"])
	})
}
