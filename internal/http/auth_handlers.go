package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/internal/service"
)

type registerForm struct {
	Name     string `form:"name" binding:"required,max=120"`
	Username string `form:"username" binding:"required,max=80"`
	Email    string `form:"email" binding:"required,email,max=120"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *Handler) register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "danger", h.msg.InvalidRegistration)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	_, err := h.users.Register(c.Request.Context(), service.Registration{
		Name:     form.Name,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		var notice string
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			notice = h.msg.UsernameTaken
		case errors.Is(err, service.ErrEmailTaken):
			notice = h.msg.EmailTaken
		case errors.Is(err, service.ErrInvalidRegistration):
			notice = h.msg.InvalidRegistration
		default:
			h.internalError(c, err)
			return
		}
		h.flash(c, "danger", notice)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	h.logger.WithField("username", form.Username).Info("user registered")
	h.flash(c, "success", h.msg.Registered)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "danger", h.msg.IncorrectPassword)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	form.Username = strings.TrimSpace(form.Username)

	user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.flash(c, "danger", unknownUserMessage(h.msg.UnknownUser, form.Username))
		c.Redirect(http.StatusFound, "/register")
		return
	case errors.Is(err, service.ErrIncorrectPassword):
		h.flash(c, "danger", h.msg.IncorrectPassword)
		c.Redirect(http.StatusFound, "/login")
		return
	case err != nil:
		h.internalError(c, err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.endSession(c); err != nil {
		h.logger.WithError(err).Warn("end session")
	}
	h.flash(c, "info", h.msg.LoggedOut)
	c.Redirect(http.StatusFound, "/")
}

// unknownUserMessage fills the first %s of tmpl with username. Templates
// without a %s verb are shown as is.
func unknownUserMessage(tmpl, username string) string {
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	return strings.Replace(tmpl, "%s", username, 1)
}
