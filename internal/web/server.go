// Package web serves the portfolio site: the home page, the filterable
// venture portfolio and the contact form.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/ventures/internal/catalog"
	"github.com/Zachkp/ventures/internal/mail"
	"github.com/Zachkp/ventures/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// MessageStore persists contact submissions.
type MessageStore interface {
	SaveMessage(ctx context.Context, m store.Message) (store.Message, error)
	MarkSent(ctx context.Context, id int64) error
}

type Options struct {
	Catalog  *catalog.Source
	Sessions *Sessions
	Store    MessageStore // optional
	Mailer   mail.Sender  // optional
	Logger   *zap.Logger

	CookieName string
	CookieTTL  time.Duration
	StaticDir  string
	ImagesDir  string
}

type Server struct {
	catalog  *catalog.Source
	sessions *Sessions
	store    MessageStore
	mailer   mail.Sender
	logger   *zap.Logger
	salt     string

	cookieName string
	cookieTTL  time.Duration

	engine *gin.Engine
}

func New(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		return nil, errors.New("web: catalog source is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessions(30 * time.Minute)
	}
	if opts.CookieName == "" {
		opts.CookieName = "venture_session"
	}
	if opts.CookieTTL <= 0 {
		opts.CookieTTL = 30 * time.Minute
	}

	salt, err := newSalt()
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	s := &Server{
		catalog:    opts.Catalog,
		sessions:   opts.Sessions,
		store:      opts.Store,
		mailer:     opts.Mailer,
		logger:     opts.Logger,
		salt:       salt,
		cookieName: opts.CookieName,
		cookieTTL:  opts.CookieTTL,
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger, s.salt))
	r.SetHTMLTemplate(tmpl)

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.ImagesDir != "" {
		r.Static("/images", opts.ImagesDir)
	}

	s.routes(r)
	s.engine = r
	return s, nil
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.home)
	r.GET("/healthz", s.health)

	v := r.Group("/ventures")
	v.GET("", s.portfolioPage)
	v.GET("/results", s.results)
	v.POST("/search", s.search)
	v.POST("/categories/:key", s.toggleCategory)
	v.POST("/stages/:key", s.toggleStage)
	v.POST("/sort", s.setSort)
	v.POST("/clear", s.clearFilters)
	v.GET("/:id", s.ventureDetail)

	api := r.Group("/api")
	api.GET("/ventures", s.apiVentures)
	api.GET("/ventures/:id", s.apiVenture)
	api.GET("/facets", s.apiFacets)

	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.contact)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"title": "Not Found"})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

func (s *Server) health(c *gin.Context) {
	cat := s.catalog.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"ventures":  cat.Len(),
		"sessions":  s.sessions.Len(),
		"loaded_at": s.catalog.LoadedAt().UTC().Format(time.RFC3339),
	})
}
