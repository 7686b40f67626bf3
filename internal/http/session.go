package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todolist/internal/auth"
	"todolist/internal/service"
)

const (
	sessionCookie = "session"
	flashCookie   = "flash"
	flashTTL      = 5 * time.Minute

	ctxUserID    = "user_id"
	ctxSessionID = "session_id"
)

// loadSession resolves the session cookie, if any, and stores the owner in the context.
func (h *Handler) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		sessionID, err := h.signer.ParseSession(raw)
		if err != nil {
			h.clearCookie(c, sessionCookie)
			c.Next()
			return
		}

		session, err := h.sessions.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, service.ErrNoSession) {
				h.logger.WithError(err).Warn("resolve session")
			}
			h.clearCookie(c, sessionCookie)
			c.Next()
			return
		}

		c.Set(ctxUserID, session.UserID)
		c.Set(ctxSessionID, session.ID)
		c.Next()
	}
}

// RequireSession redirects to the login page unless the request carries a valid session.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			h.flash(c, "danger", h.msg.LoginRequired)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func (h *Handler) startSession(c *gin.Context, userID int64) error {
	session, err := h.sessions.Start(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	token, err := h.signer.SignSession(session.ID, session.ExpiresAt)
	if err != nil {
		return err
	}
	h.setCookie(c, sessionCookie, token, int(h.sessionTTL.Seconds()))
	return nil
}

func (h *Handler) endSession(c *gin.Context) error {
	sessionID := c.GetString(ctxSessionID)
	if sessionID == "" {
		// an expired or unknown cookie still gets cleared below
		if raw, err := c.Cookie(sessionCookie); err == nil {
			sessionID, _ = h.signer.ParseSession(raw)
		}
	}
	h.clearCookie(c, sessionCookie)
	return h.sessions.End(c.Request.Context(), sessionID)
}

func (h *Handler) flash(c *gin.Context, category, message string) {
	token, err := h.signer.SignFlash([]auth.Notice{{Category: category, Message: message}}, flashTTL)
	if err != nil {
		h.logger.WithError(err).Warn("sign flash")
		return
	}
	h.setCookie(c, flashCookie, token, int(flashTTL.Seconds()))
}

// popFlashes returns pending notices and clears them.
func (h *Handler) popFlashes(c *gin.Context) []auth.Notice {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	h.clearCookie(c, flashCookie)
	notices, err := h.signer.ParseFlash(raw)
	if err != nil {
		return nil
	}
	return notices
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookie, true)
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}
