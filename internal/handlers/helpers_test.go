package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/yukikurage/project-board-api/internal/oauth"
	"github.com/yukikurage/project-board-api/internal/repository"
	"github.com/yukikurage/project-board-api/internal/services"
	"github.com/yukikurage/project-board-api/internal/session"
	"github.com/yukikurage/project-board-api/internal/testutil"
	"gorm.io/gorm"
)

const testFrontendURL = "http://app.test"

type fakeProvider struct {
	profile *oauth.Profile
	err     error
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.test/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) FetchProfile(_ context.Context, code string) (*oauth.Profile, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

type fakeDrafter struct {
	drafts []services.TaskDraft
}

func (d *fakeDrafter) DraftTasks(_ context.Context, _, _ string) ([]services.TaskDraft, error) {
	return d.drafts, nil
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

type envOption func(*RouterConfig, *services.TaskDrafter)

func withProvider(p oauth.Provider) envOption {
	return func(cfg *RouterConfig, _ *services.TaskDrafter) { cfg.Provider = p }
}

func withDrafter(d services.TaskDrafter) envOption {
	return func(_ *RouterConfig, drafter *services.TaskDrafter) { *drafter = d }
}

func withLoginLimiter(l *limiter.Limiter) envOption {
	return func(cfg *RouterConfig, _ *services.TaskDrafter) { cfg.LoginLimiter = l }
}

func withTrustedProxies(proxies ...string) envOption {
	return func(cfg *RouterConfig, _ *services.TaskDrafter) { cfg.TrustedProxies = proxies }
}

func setupTestEnv(t *testing.T, opts ...envOption) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	cfg := RouterConfig{
		SessionStore: cookie.NewStore([]byte("secret")),
		Serializer:   session.NewSerializer(userRepo),
		FrontendURL:  testFrontendURL,
	}
	var drafter services.TaskDrafter
	for _, opt := range opts {
		opt(&cfg, &drafter)
	}

	router, err := NewRouter(cfg, Services{
		Auth:     services.NewAuthService(userRepo),
		Identity: services.NewIdentityService(userRepo),
		Projects: services.NewProjectService(projectRepo, taskRepo, userRepo),
		Tasks:    services.NewTaskService(taskRepo, projectRepo, userRepo, drafter),
		Users:    services.NewUserService(userRepo),
	})
	require.NoError(t, err)

	return testEnv{db: db, router: router}
}

// client replays session cookies between requests.
type client struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func (e testEnv) client(t *testing.T) *client {
	return &client{t: t, router: e.router, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

// signUp registers a user through the API and keeps its session.
func (c *client) signUp(username, email, password string) uint64 {
	c.t.Helper()

	w := c.do(http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID uint64 `json:"id"`
		} `json:"user"`
	}
	decode(c.t, w, &resp)
	return resp.User.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
