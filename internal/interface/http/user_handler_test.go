package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeodnis/core-service/internal/application"
	"github.com/mikeodnis/core-service/internal/domain/entity"
	"github.com/mikeodnis/core-service/internal/domain/repository"
	"github.com/mikeodnis/core-service/internal/interface/middleware"
	"github.com/mikeodnis/core-service/pkg/helpers"
	"github.com/mikeodnis/core-service/pkg/response"
)

type memUserRepo struct {
	mu    sync.Mutex
	clock time.Time
	items map[string]entity.User
	// failWith makes every call return this error
	failWith error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{clock: time.Now().UTC(), items: map[string]entity.User{}}
}

func (r *memUserRepo) List(ctx context.Context) ([]entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) Create(ctx context.Context, email, name string) (*entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	r.clock = r.clock.Add(time.Millisecond)
	u := entity.User{ID: uuid.NewString(), Email: email, Name: name, CreatedAt: r.clock, UpdatedAt: r.clock}
	r.items[u.ID] = u
	return &u, nil
}

func (r *memUserRepo) Update(ctx context.Context, id string, changes entity.UserChanges) (*entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if changes.Name != nil {
		r.clock = r.clock.Add(time.Millisecond)
		u.Name = *changes.Name
		u.UpdatedAt = r.clock
		r.items[id] = u
	}
	return &u, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

const testSecret = "handler-test-secret"

type userAPI struct {
	t      *testing.T
	engine *gin.Engine
	repo   *memUserRepo
	token  string
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newUserAPI(t *testing.T) *userAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemUserRepo()
	logger := quietLogger()
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	h := NewUserHandler(application.NewService(repo, nil, logger), logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	users := r.Group("/v1/core/users", middleware.JWTAuth(jwt))
	users.GET("", h.List)
	users.POST("", h.Create)
	users.GET("/:id", h.Get)
	users.PATCH("/:id", h.Update)
	users.DELETE("/:id", h.Delete)

	token, _, err := jwt.GenerateToken("tester")
	require.NoError(t, err)
	return &userAPI{t: t, engine: r, repo: repo, token: token}
}

func (a *userAPI) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/v1/core"+path, rd)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rr := httptest.NewRecorder()
	a.engine.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func (a *userAPI) create(email, name string) entity.User {
	a.t.Helper()
	rr := a.do(http.MethodPost, "/users", `{"email":"`+email+`","name":"`+name+`"}`)
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[entity.User](a.t, rr)
}

func TestUserHandler_CreateAndGet(t *testing.T) {
	api := newUserAPI(t)
	created := api.create("ada@example.com", "Ada")
	assert.Equal(t, "ada@example.com", created.Email)
	assert.Equal(t, "Ada", created.Name)
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	rr := api.do(http.MethodGet, "/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[entity.User](t, rr)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Email, got.Email)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestUserHandler_GetMissing(t *testing.T) {
	api := newUserAPI(t)
	rr := api.do(http.MethodGet, "/users/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	body := decode[response.ErrorBody](t, rr)
	assert.Equal(t, response.MsgUserNotFound, body.Error)
	assert.Empty(t, body.Details)
}

func TestUserHandler_InvalidID(t *testing.T) {
	api := newUserAPI(t)
	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		rr := api.do(method, "/users/not-a-uuid", `{"name":"x"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code, method)
		body := decode[response.ErrorBody](t, rr)
		assert.Equal(t, response.MsgValidation, body.Error)
		assert.Equal(t, "must be a valid UUID", body.Details["id"])
	}
}

func TestUserHandler_List(t *testing.T) {
	api := newUserAPI(t)

	rr := api.do(http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"users":[]}`, rr.Body.String())

	api.create("a@example.com", "A")
	api.create("b@example.com", "B")
	api.create("c@example.com", "C")

	rr = api.do(http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[struct {
		Users []entity.User `json:"users"`
	}](t, rr)
	require.Len(t, list.Users, 3)
	assert.Equal(t, "C", list.Users[0].Name)
	assert.Equal(t, "B", list.Users[1].Name)
	assert.Equal(t, "A", list.Users[2].Name)
}

func TestUserHandler_CreateValidation(t *testing.T) {
	api := newUserAPI(t)
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"email without at", `{"email":"nope","name":"Ada"}`, "email"},
		{"empty name", `{"email":"ada@example.com","name":""}`, "name"},
		{"long name", `{"email":"ada@example.com","name":"` + strings.Repeat("x", 256) + `"}`, "name"},
		{"empty body", ``, "email"},
		{"email too long", `{"email":"` + strings.Repeat("a", 60) + "@" + strings.Repeat(strings.Repeat("b", 60)+".", 5) + `com","name":"Ada"}`, "email"},
		{"NUL in name", `{"email":"ada@example.com","name":"\u0000"}`, "name"},
		{"malformed", `{"email"`, "payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := api.do(http.MethodPost, "/users", tc.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			body := decode[response.ErrorBody](t, rr)
			assert.Equal(t, response.MsgValidation, body.Error)
			assert.Contains(t, body.Details, tc.field)
		})
	}
	assert.Empty(t, api.repo.items)
}

func TestUserHandler_CreateDuplicateEmail(t *testing.T) {
	api := newUserAPI(t)
	api.create("ada@example.com", "Ada")
	rr := api.do(http.MethodPost, "/users", `{"email":"ada@example.com","name":"Again"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, response.MsgEmailTaken, decode[response.ErrorBody](t, rr).Error)
}

func TestUserHandler_Update(t *testing.T) {
	api := newUserAPI(t)
	created := api.create("ada@example.com", "Ada")

	t.Run("empty payload keeps name", func(t *testing.T) {
		rr := api.do(http.MethodPatch, "/users/"+created.ID, `{}`)
		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[entity.User](t, rr)
		assert.Equal(t, "Ada", got.Name)
		assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("email is not mutable", func(t *testing.T) {
		rr := api.do(http.MethodPatch, "/users/"+created.ID, `{"email":"new@example.com"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ada@example.com", decode[entity.User](t, rr).Email)
	})

	t.Run("rename", func(t *testing.T) {
		rr := api.do(http.MethodPatch, "/users/"+created.ID, `{"name":"Countess"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[entity.User](t, rr)
		assert.Equal(t, "Countess", got.Name)
		assert.True(t, got.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("invalid name", func(t *testing.T) {
		for _, body := range []string{`{"name":""}`, `{"name":"Ada\u0000"}`} {
			rr := api.do(http.MethodPatch, "/users/"+created.ID, body)
			require.Equal(t, http.StatusBadRequest, rr.Code, body)
			assert.Contains(t, decode[response.ErrorBody](t, rr).Details, "name")
		}
	})

	t.Run("missing user", func(t *testing.T) {
		rr := api.do(http.MethodPatch, "/users/"+uuid.NewString(), `{"name":"x"}`)
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, response.MsgUserNotFound, decode[response.ErrorBody](t, rr).Error)
	})
}

func TestUserHandler_DeleteTwice(t *testing.T) {
	api := newUserAPI(t)
	created := api.create("ada@example.com", "Ada")

	for i := 0; i < 2; i++ {
		rr := api.do(http.MethodDelete, "/users/"+created.ID, "")
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	}
	rr := api.do(http.MethodGet, "/users/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserHandler_Unauthorized(t *testing.T) {
	api := newUserAPI(t)
	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic dXNlcjpwYXNz",
		"bad token":    "Bearer not-a-jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/core/users", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			api.engine.ServeHTTP(rr, req)
			require.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, response.MsgUnauthorized, decode[response.ErrorBody](t, rr).Error)
		})
	}

	other, _, err := helpers.NewJWTManager("someone-else", time.Hour).GenerateToken("tester")
	require.NoError(t, err)
	api.token = other
	rr := api.do(http.MethodPost, "/users", `{"email":"ada@example.com","name":"Ada"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, api.repo.items)
}

func TestUserHandler_StoreFailureIsOpaque(t *testing.T) {
	api := newUserAPI(t)
	api.repo.failWith = errors.New("pq: relation core.users does not exist")

	rr := api.do(http.MethodGet, "/users", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode[response.ErrorBody](t, rr)
	assert.Equal(t, response.MsgInternalServer, body.Error)
	assert.NotEmpty(t, body.RequestID)
	assert.NotContains(t, rr.Body.String(), "relation")

	rr = api.do(http.MethodDelete, "/users/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
