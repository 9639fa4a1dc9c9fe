package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-board-api/internal/constants"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/repository"
	"github.com/yukikurage/project-board-api/internal/testutil"
)

func newSessionRouter(t *testing.T, s *Serializer, user *models.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/login", func(c *gin.Context) {
		if err := s.Serialize(c, user); err != nil {
			apierrors.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", func(c *gin.Context) {
		u, err := s.Deserialize(c)
		if err != nil {
			apierrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	r.POST("/logout", func(c *gin.Context) {
		if err := s.Clear(c); err != nil {
			apierrors.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSerializer_RoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice", "a@x.com", "secret1")
	r := newSessionRouter(t, NewSerializer(repository.NewUserRepository(db)), user)

	login := do(r, http.MethodPost, "/login", nil)
	require.Equal(t, http.StatusNoContent, login.Code)
	cookies := login.Result().Cookies()
	require.NotEmpty(t, cookies)

	me := do(r, http.MethodGet, "/me", cookies)
	require.Equal(t, http.StatusOK, me.Code)
	require.JSONEq(t, `{"id":1}`, me.Body.String())
}

func TestSerializer_NoSession(t *testing.T) {
	db := testutil.NewDB(t)
	r := newSessionRouter(t, NewSerializer(repository.NewUserRepository(db)), nil)

	w := do(r, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), apierrors.ErrCodeUnauthorized)
}

func TestSerializer_MissingUserClearsSession(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice", "a@x.com", "secret1")
	r := newSessionRouter(t, NewSerializer(repository.NewUserRepository(db)), user)

	cookies := do(r, http.MethodPost, "/login", nil).Result().Cookies()
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	w := do(r, http.MethodGet, "/me", cookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), apierrors.ErrCodeSessionUserMissing)

	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	require.True(t, cleared[0].MaxAge < 0)
}

func TestSerializer_Logout(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice", "a@x.com", "secret1")
	r := newSessionRouter(t, NewSerializer(repository.NewUserRepository(db)), user)

	cookies := do(r, http.MethodPost, "/login", nil).Result().Cookies()
	logout := do(r, http.MethodPost, "/logout", cookies)
	require.Equal(t, http.StatusNoContent, logout.Code)

	w := do(r, http.MethodGet, "/me", logout.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToUserID(t *testing.T) {
	cases := []struct {
		in   interface{}
		want uint64
		ok   bool
	}{
		{uint64(7), 7, true},
		{uint(7), 7, true},
		{7, 7, true},
		{int64(7), 7, true},
		{float64(7), 7, true},
		{-1, 0, false},
		{"7", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := toUserID(tc.in)
		require.Equal(t, tc.ok, ok)
		require.Equal(t, tc.want, got)
	}
}
