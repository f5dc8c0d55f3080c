package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"realestate-server/auth"
	"realestate-server/cache"
	"realestate-server/cms"
	"realestate-server/confs"
	"realestate-server/db"
	"realestate-server/entities"
	"realestate-server/handlers"
	httpHandler "realestate-server/handlers/http"
	"realestate-server/handlers/middleware"
	"realestate-server/logger"
	"realestate-server/repositories"
	"realestate-server/services"
	"realestate-server/storage"
	"realestate-server/usecases"
	"realestate-server/validation"
	"realestate-server/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout = 10 * time.Second
	loginBurst      = 10
	loginWindow     = time.Minute
)

type Server struct {
	app       *gin.Engine
	cfg       *confs.Config
	db        db.Database
	cms       *cms.Client
	galleries *cache.TTLCache[[]cms.Image]
	limiter   *middleware.RateLimiter
}

// NewServer wires repositories, use cases and handlers into a gin engine.
func NewServer(cfg *confs.Config, database db.Database, store storage.Store, galleries *cache.TTLCache[[]cms.Image]) (*Server, error) {
	tokens, err := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}
	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	validation.Register()

	if galleries == nil {
		galleries = cache.NewTTLCache[[]cms.Image](cfg.CMS.CacheTTL)
	}

	s := &Server{
		app:       gin.New(),
		cfg:       cfg,
		db:        database,
		cms:       cms.NewClient(cfg.CMS, galleries),
		galleries: galleries,
		limiter:   middleware.NewRateLimiter(loginBurst, loginWindow),
	}
	s.app.SetHTMLTemplate(templates)
	s.app.Use(gin.Recovery(), logger.Middleware(), middleware.Metrics(), cors.New(corsConfig(cfg.CORSOrigins)))

	s.routes(tokens, store)
	return s, nil
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.app
}

// Evictors lists the in-process caches the janitor should sweep.
func (s *Server) Evictors() map[string]services.Evictor {
	return map[string]services.Evictor{
		"cms_galleries": s.galleries,
		"login_limiter": s.limiter,
	}
}

func (s *Server) routes(tokens *auth.TokenManager, store storage.Store) {
	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	leadRepo := repositories.NewLeadPgRepository(s.db)
	projectRepo := repositories.NewProjectPgRepository(s.db)
	propertyRepo := repositories.NewPropertyPgRepository(s.db)
	mediaRepo := repositories.NewPropertyMediaPgRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo)
	leadUseCase := usecases.NewLeadUseCase(leadRepo, propertyRepo, projectRepo, userRepo)
	projectUseCase := usecases.NewProjectUseCase(projectRepo, propertyRepo)
	propertyUseCase := usecases.NewPropertyUseCase(propertyRepo, projectRepo, userRepo, store)
	mediaUseCase := usecases.NewMediaUseCase(s.db, propertyUseCase, mediaRepo, store, s.cfg.Upload.MaxFiles)
	pageUseCase := usecases.NewPageUseCase(propertyUseCase, projectUseCase, s.cms)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(userUseCase, tokens, s.cfg.Session)
	userHandler := httpHandler.NewUserHandler(userUseCase)
	leadHandler := httpHandler.NewLeadHandler(leadUseCase)
	projectHandler := httpHandler.NewProjectHandler(projectUseCase)
	propertyHandler := httpHandler.NewPropertyHandler(propertyUseCase)
	mediaHandler := httpHandler.NewMediaHandler(mediaUseCase, s.cfg.Upload.MaxMemory, s.cfg.Upload.MaxBody)
	cmsHandler := httpHandler.NewCMSHandler(s.cms)
	pageHandler := httpHandler.NewPageHandler(pageUseCase)
	cacheHandler := handlers.NewCacheHandler(map[string]handlers.StatsCache{
		"cms_galleries": s.galleries,
	})

	requireAuth := middleware.RequireAuth(tokens, s.cfg.Session.CookieName)
	optionalAuth := middleware.OptionalAuth(tokens, s.cfg.Session.CookieName)
	adminOnly := middleware.RequireRole(entities.RoleAdmin)

	s.app.GET("/health", s.health)
	s.app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Local development store has no public endpoint of its own
	if mem, ok := store.(*storage.MemoryStore); ok {
		s.app.GET("/media/*key", func(c *gin.Context) {
			data, contentType, found := mem.Get(strings.TrimPrefix(c.Param("key"), "/"))
			if !found {
				c.JSON(http.StatusNotFound, gin.H{"error": "media not found", "code": "not_found"})
				return
			}
			c.Data(http.StatusOK, contentType, data)
		})
	}

	// Server-rendered pages
	s.app.GET("/properties/:slug", pageHandler.PropertyPage)
	s.app.GET("/projects/:slug", pageHandler.ProjectPage)

	api := s.app.Group("/api/v1")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", s.limiter.Middleware(), authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
		}

		users := api.Group("/users", requireAuth, adminOnly)
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.GetAllUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		leads := api.Group("/leads")
		{
			leads.POST("", leadHandler.CreateLead) // public contact form
			leads.GET("", requireAuth, leadHandler.GetAllLeads)
			leads.GET("/:id", requireAuth, leadHandler.GetLead)
			leads.PUT("/:id", requireAuth, leadHandler.UpdateLead)
			leads.DELETE("/:id", requireAuth, leadHandler.DeleteLead)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.GetAllProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", requireAuth, projectHandler.CreateProject)
			projects.PUT("/:id", requireAuth, projectHandler.UpdateProject)
			projects.DELETE("/:id", requireAuth, projectHandler.DeleteProject)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", optionalAuth, propertyHandler.GetAllProperties)
			properties.GET("/:id", optionalAuth, propertyHandler.GetProperty)
			properties.POST("", requireAuth, propertyHandler.CreateProperty)
			properties.POST("/with-media", requireAuth, mediaHandler.CreatePropertyWithMedia)
			properties.PUT("/:id", requireAuth, propertyHandler.UpdateProperty)
			properties.DELETE("/:id", requireAuth, propertyHandler.DeleteProperty)

			properties.GET("/:id/media", optionalAuth, mediaHandler.GetPropertyMedia)
			properties.POST("/:id/media", requireAuth, mediaHandler.UploadMedia)
			properties.DELETE("/:id/media/:media_id", requireAuth, mediaHandler.DeleteMedia)
		}

		// Headless CMS passthrough
		api.GET("/cms/*path", cmsHandler.Proxy)

		// Cache management endpoints
		cacheRoutes := api.Group("/cache", requireAuth, adminOnly)
		{
			cacheRoutes.GET("/stats", cacheHandler.GetCacheStats)
			cacheRoutes.POST("/purge", cacheHandler.PurgeCache)
		}
	}
}

func (s *Server) health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status": "OK",
		"cms":    "not_configured",
	}
	if s.cms.Configured() {
		body["cms"] = s.cms.BreakerState()
	}
	if sqlDB, err := s.db.GetDB().DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "DEGRADED"
		body["database"] = "unreachable"
	}
	c.JSON(status, body)
}

// Start serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              "0.0.0.0:" + s.cfg.Port,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true // development default
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return config
}
