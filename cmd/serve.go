package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tradelift/seogen/internal/catalog"
	"github.com/tradelift/seogen/internal/model"
	"github.com/tradelift/seogen/internal/seo"
	"github.com/tradelift/seogen/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the page delivery API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		srv := newServer(env.Store, env.Generator, serverOptions{
			Decider:     env.decider,
			PageCost:    env.PageCost,
			CacheTTL:    time.Duration(cfg.Generate.CacheTTLMinutes) * time.Minute,
			CacheMaxAge: cfg.Server.CacheMaxAgeSecs,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.routes(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// serverOptions tunes the delivery server.
type serverOptions struct {
	Decider     func(businessID string) seo.Decider
	PageCost    float64
	CacheTTL    time.Duration
	CacheMaxAge int
}

// server handles page delivery. Collections are generated on demand and
// cached in the store for CacheTTL; refresh=1 forces regeneration.
type server struct {
	store     store.Store
	generator *seo.Generator
	provider  catalog.Provider
	opts      serverOptions
}

func newServer(st store.Store, gen *seo.Generator, opts serverOptions) *server {
	return &server{
		store:     st,
		generator: gen,
		provider:  catalog.NewStoreProvider(st),
		opts:      opts,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/seo", func(r chi.Router) {
		r.Get("/businesses", s.handleBusinesses)
		r.Get("/pages/{businessID}", s.handlePages)
		r.Get("/pages/{businessID}/plan", s.handlePlan)
	})
	r.Get("/sitemap/{businessID}.xml", s.handleSitemap)

	return r
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		w.Header().Set("X-Request-ID", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type pagesResponse struct {
	Success     bool                          `json:"success"`
	BusinessID  string                        `json:"business_id"`
	Pages       map[string]model.PageArtifact `json:"pages"`
	TotalPages  int                           `json:"total_pages"`
	GeneratedAt time.Time                     `json:"generated_at"`
	Diagnostics []model.Diagnostic            `json:"diagnostics,omitempty"`
	Stats       *model.GenerationStats        `json:"stats,omitempty"`
}

type errorResponse struct {
	Success bool                          `json:"success"`
	Error   string                        `json:"error"`
	Pages   map[string]model.PageArtifact `json:"pages"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeFetchError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Error:   "Failed to fetch SEO pages",
		Pages:   map[string]model.PageArtifact{},
	})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Success: false,
		Error:   "Business not found",
		Pages:   map[string]model.PageArtifact{},
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := s.store.ListBusinesses(r.Context())
	if err != nil {
		zap.L().Error("list businesses", zap.Error(err))
		writeFetchError(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"businesses": businesses,
	})
}

func (s *server) handlePages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID := chi.URLParam(r, "businessID")
	refresh := r.URL.Query().Get("refresh") == "1" || r.URL.Query().Get("refresh") == "true"

	business, err := s.provider.Business(ctx, businessID)
	if err != nil {
		zap.L().Error("fetch business", zap.String("business_id", businessID), zap.Error(err))
		writeFetchError(w)
		return
	}
	if business == nil {
		writeNotFound(w)
		return
	}

	coll, err := s.collection(ctx, *business, refresh)
	if err != nil {
		zap.L().Error("build collection", zap.String("business_id", businessID), zap.Error(err))
		writeFetchError(w)
		return
	}

	stats := coll.Stats
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", s.opts.CacheMaxAge))
	writeJSON(w, http.StatusOK, pagesResponse{
		Success:     true,
		BusinessID:  coll.BusinessID,
		Pages:       coll.Pages,
		TotalPages:  coll.TotalPages,
		GeneratedAt: coll.GeneratedAt,
		Diagnostics: coll.Diagnostics,
		Stats:       &stats,
	})
}

func (s *server) handlePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID := chi.URLParam(r, "businessID")

	business, err := s.provider.Business(ctx, businessID)
	if err != nil {
		zap.L().Error("fetch business", zap.String("business_id", businessID), zap.Error(err))
		writeFetchError(w)
		return
	}
	if business == nil {
		writeNotFound(w)
		return
	}

	cat, err := s.provider.Catalog(ctx, businessID)
	if err != nil {
		zap.L().Error("fetch catalog", zap.String("business_id", businessID), zap.Error(err))
		writeFetchError(w)
		return
	}

	plan := seo.BuildPlan(*cat, s.decider(businessID), s.opts.PageCost)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"business_id":        businessID,
		"total_pages":        plan.TotalPages(),
		"template_pages":     plan.TemplatePages,
		"enhanced_pages":     plan.EnhancedPages,
		"estimated_cost_usd": plan.EstimatedCostUSD,
		"entries":            plan.Entries,
	})
}

// sitemapURLSet is the sitemaps.org urlset document.
type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

func (s *server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID := chi.URLParam(r, "businessID")

	business, err := s.provider.Business(ctx, businessID)
	if err != nil {
		zap.L().Error("fetch business", zap.String("business_id", businessID), zap.Error(err))
		http.Error(w, "failed to build sitemap", http.StatusInternalServerError)
		return
	}
	if business == nil {
		http.NotFound(w, r)
		return
	}

	coll, err := s.collection(ctx, *business, false)
	if err != nil {
		zap.L().Error("build collection", zap.String("business_id", businessID), zap.Error(err))
		http.Error(w, "failed to build sitemap", http.StatusInternalServerError)
		return
	}

	base := siteBase(*business, r)
	lastMod := coll.GeneratedAt.Format("2006-01-02")
	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(coll.Pages)),
	}
	for _, u := range coll.URLs() {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + u, LastMod: lastMod})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", s.opts.CacheMaxAge))
	_, _ = io.WriteString(w, xml.Header)
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		zap.L().Error("encode sitemap", zap.Error(err))
	}
}

// collection returns the business's page collection, from the store cache
// unless refresh forces a rebuild. Cache write failures degrade to a log
// line: the fresh collection still serves.
func (s *server) collection(ctx context.Context, business model.Business, refresh bool) (*model.ArtifactCollection, error) {
	if !refresh {
		cached, err := s.store.GetCachedCollection(ctx, business.ID)
		if err != nil {
			zap.L().Warn("page cache read failed", zap.String("business_id", business.ID), zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	cat, err := s.provider.Catalog(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	coll, err := s.generator.Generate(ctx, business, *cat, s.decider(business.ID))
	if err != nil {
		return nil, err
	}

	if err := s.store.SetCachedCollection(ctx, coll, s.opts.CacheTTL); err != nil {
		zap.L().Warn("page cache write failed", zap.String("business_id", business.ID), zap.Error(err))
	}
	return coll, nil
}

func (s *server) decider(businessID string) seo.Decider {
	if s.opts.Decider == nil {
		return nil
	}
	return s.opts.Decider(businessID)
}

// siteBase resolves the absolute URL prefix for a business's pages: the
// business domain when known, otherwise the serving host.
func siteBase(b model.Business, r *http.Request) string {
	if b.Domain != "" {
		if strings.HasPrefix(b.Domain, "http://") || strings.HasPrefix(b.Domain, "https://") {
			return strings.TrimRight(b.Domain, "/")
		}
		return "https://" + strings.TrimRight(b.Domain, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
