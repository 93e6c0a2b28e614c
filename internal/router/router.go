package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"imageserver/internal/config"
	"imageserver/internal/handlers"
	"imageserver/internal/middleware"
	"imageserver/internal/storage"
)

// Options carries the collaborators of the HTTP layer. Limiter and Authorizer
// default to an in-memory fixed window and to the configured authorizer.
type Options struct {
	Config     config.Config
	Logger     log.Logger
	Limiter    middleware.Limiter
	Authorizer middleware.Authorizer
}

func New(opts Options) (*gin.Engine, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = middleware.NewFixedWindow(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	authorizer := opts.Authorizer
	if authorizer == nil {
		authorizer = middleware.AllowAll
		if cfg.JWTSecret != "" {
			authorizer = middleware.NewJWTAuthorizer(cfg.JWTSecret, logger, cfg.DeleteRole)
		} else {
			level.Warn(logger).Log("msg", "JWT_SECRET not set, image deletion is open to every client")
		}
	}

	resolver := storage.NewResolver(cfg.UploadDirs()...)
	uploader := storage.NewUploader(storage.UploaderOptions{
		AllowedMimeTypes:   cfg.AllowedMimeTypes,
		MaxFileSize:        cfg.MaxFileSize,
		StrictContentCheck: cfg.StrictContentCheck,
	}, logger)

	primary := storage.Target{Dir: cfg.UploadDir, URLPath: "/uploads/"}
	chouffeur := storage.Target{Dir: cfg.ChouffeurUploadDir, Prefix: "chauffeur_", URLPath: "/uploads/chouffeur/"}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.RateLimit(limiter, cfg.RateLimitWindow, logger),
		middleware.SecurityHeaders(),
		middleware.CORS(middleware.CORSOptions{
			Origins: cfg.CORSOrigins,
			Methods: cfg.CORSMethods,
			Headers: cfg.CORSHeaders,
		}),
		middleware.ErrorEnvelope(logger),
	)

	r.GET("/healthz", handlers.Health())

	r.POST("/upload", handlers.UploadImage(uploader, primary, "No image file uploaded.", logger))
	r.POST("/chouffeur", handlers.UploadImage(uploader, chouffeur, "No image uploaded for chouffeur.", logger))

	serveImage := handlers.ServeImage(resolver)
	r.GET("/uploads/:filename", serveImage)
	r.HEAD("/uploads/:filename", serveImage)

	serveStatic := handlers.ServeStatic(resolver)
	r.GET("/image/*filepath", serveStatic)
	r.HEAD("/image/*filepath", serveStatic)
	r.DELETE("/image/:filename", handlers.DeleteImage(resolver, authorizer, logger))

	r.NoRoute(handlers.NotFound)

	return r, nil
}
