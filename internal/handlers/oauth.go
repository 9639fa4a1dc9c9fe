package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/middleware"
	"github.com/yukikurage/project-board-api/internal/oauth"
	"github.com/yukikurage/project-board-api/internal/services"
	"github.com/yukikurage/project-board-api/internal/session"
	"github.com/yukikurage/project-board-api/internal/utils"
	"go.uber.org/zap"
)

// OAuthHandler runs the Google sign-in redirect flow.
type OAuthHandler struct {
	provider     oauth.Provider
	identity     *services.IdentityService
	serializer   *session.Serializer
	redirectBase string
}

// NewOAuthHandler creates a new OAuthHandler. A nil provider disables the
// flow; redirectBase prefixes the post-login redirects.
func NewOAuthHandler(provider oauth.Provider, identity *services.IdentityService, serializer *session.Serializer, redirectBase string) *OAuthHandler {
	return &OAuthHandler{
		provider:     provider,
		identity:     identity,
		serializer:   serializer,
		redirectBase: redirectBase,
	}
}

// Begin redirects the browser to the provider's consent page.
func (h *OAuthHandler) Begin(c *gin.Context) {
	if h.provider == nil {
		h.fail(c, "google_not_configured")
		return
	}

	state, err := utils.GenerateState()
	if err != nil {
		middleware.Logger(c).Error("failed to generate OAuth state", zap.Error(err))
		h.fail(c, "internal")
		return
	}
	if err := session.SaveState(c, state); err != nil {
		middleware.Logger(c).Error("failed to save OAuth state", zap.Error(err))
		h.fail(c, "internal")
		return
	}

	c.Redirect(http.StatusSeeOther, h.provider.AuthCodeURL(state))
}

// Callback resolves the provider's answer to a local user and signs it in.
func (h *OAuthHandler) Callback(c *gin.Context) {
	logger := middleware.Logger(c)

	if h.provider == nil {
		h.fail(c, "google_not_configured")
		return
	}

	if providerErr := c.Query("error"); providerErr != "" {
		logger.Info("OAuth consent denied", zap.String("error", providerErr))
		h.fail(c, "google_denied")
		return
	}

	expected, err := session.ConsumeState(c)
	if err != nil {
		logger.Error("failed to read OAuth state", zap.Error(err))
		h.fail(c, "internal")
		return
	}
	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
		logger.Warn("invalid OAuth state")
		h.fail(c, "invalid_state")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.fail(c, "missing_code")
		return
	}

	profile, err := h.provider.FetchProfile(c.Request.Context(), code)
	if err != nil {
		logger.Error("failed to fetch OAuth profile", zap.Error(err))
		h.fail(c, "exchange_failed")
		return
	}

	user, err := h.identity.Resolve(c.Request.Context(), *profile)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileIncomplete):
			h.fail(c, "no_email")
		case errors.Is(err, services.ErrExternalIDTaken):
			h.fail(c, "account_conflict")
		default:
			logger.Error("failed to resolve external identity", zap.String("external_id", profile.ID), zap.Error(err))
			h.fail(c, "login_failed")
		}
		return
	}

	if err := h.serializer.Serialize(c, user); err != nil {
		logger.Error("failed to save session", zap.Error(err))
		h.fail(c, "internal")
		return
	}

	logger.Info("external login succeeded", zap.Uint64("user_id", user.ID))
	c.Redirect(http.StatusSeeOther, h.redirectBase+"/")
}

func (h *OAuthHandler) fail(c *gin.Context, reason string) {
	c.Redirect(http.StatusSeeOther, h.redirectBase+"/login?error="+reason)
}
