package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	_, loggedIn := currentUserID(c)
	data["SiteTitle"] = h.siteTitle
	data["LoggedIn"] = loggedIn
	data["Flashes"] = h.popFlashes(c)
	c.HTML(status, name, data)
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error.html", gin.H{
		"Status":  status,
		"Message": message,
	})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	h.renderError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
