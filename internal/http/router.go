package http

import (
	"io/fs"
	"log/slog"
	nethttp "net/http"

	"github.com/avelarde/mailhub/internal/config"
	"github.com/avelarde/mailhub/internal/http/handlers"
	"github.com/avelarde/mailhub/internal/http/middlewares"
	"github.com/avelarde/mailhub/internal/observability"
	"github.com/avelarde/mailhub/web"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps carries the wired store implementations so tests can swap the postgres
// repos for the in-memory ones.
type Deps struct {
	Log         *slog.Logger
	Cfg         config.Config
	Prom        *observability.Prom
	Users       handlers.UsersStore
	Emails      handlers.EmailsStore
	Coordinator handlers.Persister
	Ping        func() error
	Metrics     nethttp.Handler
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(d.Log))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	if d.Cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("mailhub"))
	}

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	// health
	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	// wire up handlers
	usersHandler := handlers.NewUsersHandler(d.Users, d.Cfg.StoreTimeout)
	emailsHandler := handlers.NewEmailsHandler(d.Users, d.Emails, d.Coordinator, d.Cfg.StoreTimeout)

	generateGuard := func(c *gin.Context) { c.Next() }

	if d.Cfg.RateLimit > 0 {
		limiter := middlewares.NewRateLimiter(d.Cfg.RateLimit, d.Cfg.RateWindow)
		generateGuard = limiter.Middleware()
	}

	r.GET("/users", usersHandler.ListUsers)
	r.POST("/users", middlewares.RequireJSON(), usersHandler.CreateUser)
	r.POST("/users/random", generateGuard, usersHandler.CreateRandomUsers)
	r.DELETE("/users/all", usersHandler.DeleteAllUsers)
	r.DELETE("/users/:id", usersHandler.DeleteUser)

	r.POST("/emails/generate", generateGuard, emailsHandler.GenerateEmails)
	r.GET("/emails", emailsHandler.ListEmails)
	r.DELETE("/emails/all", emailsHandler.DeleteAllEmails)

	// embedded dashboard
	r.GET("/", serveIndex)

	if staticFS, err := fs.Sub(web.FS, "static"); err == nil {
		r.StaticFS("/static", nethttp.FS(staticFS))
	}

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "route not found")
	})

	return r
}

func serveIndex(ctx *gin.Context) {
	data, err := web.FS.ReadFile("index.html")

	if err != nil {
		handlers.RespondInternal(ctx, "dashboard unavailable")

		return
	}

	ctx.Data(nethttp.StatusOK, "text/html; charset=utf-8", data)
}
