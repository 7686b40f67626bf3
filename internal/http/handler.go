package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todolist/internal/auth"
	"todolist/internal/config"
	"todolist/internal/service"
	"todolist/internal/storage"
)

// Options carries everything the web layer needs; main builds it once at startup.
type Options struct {
	Users        service.UserService
	Todos        service.TodoService
	Sessions     service.SessionService
	Signer       *auth.Signer
	Assets       storage.AssetStore
	Templates    *template.Template
	Messages     config.Messages
	SiteTitle    string
	SessionTTL   time.Duration
	SecureCookie bool
	Logger       logrus.FieldLogger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	todos        service.TodoService
	sessions     service.SessionService
	signer       *auth.Signer
	assets       storage.AssetStore
	templates    *template.Template
	msg          config.Messages
	siteTitle    string
	sessionTTL   time.Duration
	secureCookie bool
	logger       logrus.FieldLogger
}

func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		users:        opts.Users,
		todos:        opts.Todos,
		sessions:     opts.Sessions,
		signer:       opts.Signer,
		assets:       opts.Assets,
		templates:    opts.Templates,
		msg:          opts.Messages,
		siteTitle:    opts.SiteTitle,
		sessionTTL:   opts.SessionTTL,
		secureCookie: opts.SecureCookie,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(h.templates)
	router.Use(requestLogger(h.logger), h.loadSession())

	router.GET("/", h.index)
	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)
	router.GET("/about", h.about)
	router.GET("/static/:filename", h.staticFile)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authed := router.Group("", h.RequireSession())
	{
		authed.POST("/add", h.addTodo)
		authed.GET("/complete/:id", h.completeTodo)
		authed.GET("/delete/:id", h.deleteTodo)
		authed.GET("/detail/:id", h.detailTodo)
	}

	router.NoRoute(func(c *gin.Context) {
		h.renderError(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
