package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todolist/internal/service"
	"todolist/internal/storage"
)

type addTodoForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

func (h *Handler) index(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.render(c, http.StatusOK, "index.html", nil)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if errors.Is(err, service.ErrUserNotFound) {
		// account is gone; drop the orphaned session
		if err := h.endSession(c); err != nil {
			h.logger.WithError(err).Warn("end orphaned session")
		}
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	todos, err := h.todos.List(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	h.render(c, http.StatusOK, "mainpage.html", gin.H{"User": user, "Todos": todos})
}

func (h *Handler) addTodo(c *gin.Context) {
	userID, _ := currentUserID(c)

	var form addTodoForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	_, err := h.todos.Add(c.Request.Context(), userID, form.Title, form.Content)
	switch {
	case errors.Is(err, service.ErrTitleTooLong):
		h.flash(c, "danger", h.msg.TitleTooLong)
	case errors.Is(err, service.ErrContentTooLong):
		h.flash(c, "danger", h.msg.ContentTooLong)
	case err != nil:
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) completeTodo(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := todoID(c)
	if !ok {
		h.renderError(c, http.StatusNotFound, h.msg.NotFound)
		return
	}

	if _, err := h.todos.ToggleComplete(c.Request.Context(), userID, id); err != nil {
		h.todoError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) deleteTodo(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := todoID(c)
	if !ok {
		h.renderError(c, http.StatusNotFound, h.msg.NotFound)
		return
	}

	if err := h.todos.Delete(c.Request.Context(), userID, id); err != nil {
		h.todoError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) detailTodo(c *gin.Context) {
	userID, _ := currentUserID(c)
	id, ok := todoID(c)
	if !ok {
		h.renderError(c, http.StatusNotFound, h.msg.NotFound)
		return
	}

	todo, err := h.todos.Detail(c.Request.Context(), userID, id)
	if err != nil {
		h.todoError(c, err)
		return
	}
	h.render(c, http.StatusOK, "tododetail.html", gin.H{"Todo": todo})
}

func (h *Handler) about(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", nil)
}

func (h *Handler) staticFile(c *gin.Context) {
	asset, err := h.assets.Open(c.Request.Context(), c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.logger.WithError(err).Warn("open static asset")
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}
	defer asset.Body.Close()

	var headers map[string]string
	if !asset.ModTime.IsZero() {
		headers = map[string]string{"Last-Modified": asset.ModTime.UTC().Format(http.TimeFormat)}
	}
	c.DataFromReader(http.StatusOK, asset.Size, asset.ContentType, asset.Body, headers)
}

func (h *Handler) todoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		h.renderError(c, http.StatusNotFound, h.msg.NotFound)
	case errors.Is(err, service.ErrTodoForbidden):
		h.renderError(c, http.StatusForbidden, h.msg.Forbidden)
	default:
		h.internalError(c, err)
	}
}

func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
