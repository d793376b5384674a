// Package httpapi wires the HTTP transport (Gin) to the MiniTwit services,
// middleware and handlers. Two surfaces share one engine: the cookie-session
// page flow at the root and the simulator JSON API under cfg.APIBasePath.
// Cross-cutting concerns (tracing, correlation IDs, redacted access logs,
// panic recovery, metrics, compression, CORS, security headers) apply to
// both.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/docs"
	"github.com/tbourn/go-minitwit/internal/auth"
	"github.com/tbourn/go-minitwit/internal/config"
	"github.com/tbourn/go-minitwit/internal/http/handlers"
	"github.com/tbourn/go-minitwit/internal/http/middleware"
	"github.com/tbourn/go-minitwit/internal/services"
	"github.com/tbourn/go-minitwit/internal/web"
)

// maxAPILimit caps the simulator's "no" parameter.
const maxAPILimit = 1000

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs, credentials and cookies masked
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Compression
//  8. CORS and security headers
//
// The API group then records "latest" before checking the simulator
// credential; the page group loads the session viewer.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	r.HTMLRender = web.MustRenderer()

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics("/metrics"))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compress rendered timelines and JSON lists
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 8) CORS posture and security headers
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:            cfg.Security.EnableHSTS,
		HSTSMaxAge:            cfg.Security.HSTSMaxAge,
		EnablePolicy:          true,
		ContentSecurityPolicy: middleware.DefaultPageCSP,
	}))

	// Fallbacks: JSON envelope under the API, plain text for pages
	r.NoRoute(func(c *gin.Context) {
		if isAPIPath(cfg.APIBasePath, c.Request.URL.Path) {
			handlers.Fail(c, http.StatusNotFound, handlers.MsgRouteNotFound)
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})
	r.NoMethod(func(c *gin.Context) {
		if isAPIPath(cfg.APIBasePath, c.Request.URL.Path) {
			handlers.Fail(c, http.StatusMethodNotAllowed, handlers.MsgMethodNotAllowed)
			return
		}
		c.String(http.StatusMethodNotAllowed, "405 method not allowed")
	})

	// Dependency injection: services ← db
	accounts := &services.AccountService{DB: db, Hasher: auth.NewHasher(cfg.BcryptCost)}
	latest := &services.LatestService{DB: db}
	h := handlers.New(handlers.Services{
		Accounts:  accounts,
		Timelines: &services.TimelineService{DB: db},
		Social:    &services.SocialService{DB: db},
		Messages:  &services.MessageService{DB: db, Now: time.Now},
		Latest:    latest,
		System:    &services.SystemService{DB: db},
	}, handlers.Options{
		PerPage:         cfg.PerPage,
		APIDefaultLimit: cfg.APIDefaultLimit,
		APIMaxLimit:     maxAPILimit,
	})

	// Operational
	r.GET("/health", h.Health)
	r.GET("/check_db", h.CheckDB)
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Simulator API
	apiBase := cfg.APIBasePath
	api := r.Group(apiBase)
	api.Use(
		middleware.RecordLatest(latest),
		middleware.RequireSimulator(cfg.SimulatorAuth, apiBase+"/latest"),
	)
	{
		api.GET("/latest", h.GetLatest)
		api.POST("/register", h.APIRegister)
		api.GET("/msgs", h.ListMessages)
		api.GET("/msgs/:username", h.ListUserMessages)
		api.POST("/msgs/:username", h.PostUserMessage)
		api.GET("/fllws/:username", h.ListFollows)
		api.POST("/fllws/:username", h.ChangeFollow)
		if cfg.EnableCleanDB {
			api.POST("/cleandb", h.CleanDB)
		}
	}

	// Page flow
	secure := cfg.Security.EnableHSTS
	pages := r.Group("")
	pages.Use(
		middleware.Sessions(cfg.Session.Name, cfg.Session.Secret, secure),
		middleware.LoadViewer(accounts, services.ErrUserNotFound),
	)
	throttle := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP()).Handler()
	signedIn := middleware.RequireViewer()
	{
		pages.GET("/", h.Timeline)
		pages.GET("/public", h.PublicTimeline)
		pages.GET("/login", h.LoginForm)
		pages.POST("/login", throttle, h.Login)
		pages.GET("/register", h.RegisterForm)
		pages.POST("/register", throttle, h.Register)
		pages.GET("/logout", h.Logout)
		pages.POST("/add_message", signedIn, h.AddMessage)
		pages.GET("/:username", h.UserTimeline)
		pages.GET("/:username/follow", signedIn, h.FollowUser)
		pages.GET("/:username/unfollow", signedIn, h.UnfollowUser)
	}
}

// corsMiddleware allows every origin without credentials when the allowlist
// is empty, and only the listed origins otherwise.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}

// limitBody caps the request body size at maxBytes using
// http.MaxBytesReader. Reads past the cap fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// isAPIPath reports whether path belongs to the simulator API under base.
func isAPIPath(base, path string) bool {
	return path == base || strings.HasPrefix(path, base+"/")
}
