// Package server exposes the recommendation engine over HTTP. Handlers only
// translate between the wire format and the engine; no scoring logic lives
// here.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/recommend"
	"github.com/lanewaylabs/bizmatch/internal/store"
)

// Store is the storage surface the server depends on.
type Store interface {
	GetUserProfile(ctx context.Context, userID string) (*recommend.UserProfile, error)
	ListPublishedOpportunities(ctx context.Context) ([]recommend.Opportunity, error)
	SaveRecommendations(ctx context.Context, userID string, result *recommend.Result) error
}

// Server wires the store and ranker behind a chi router.
type Server struct {
	store  Store
	ranker *recommend.Ranker
	logger *zap.Logger
	http   *http.Server
}

// New builds a Server listening on the given port.
func New(port int, st Store, ranker *recommend.Ranker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:  st,
		ranker: ranker,
		logger: logger,
	}

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/recommend", s.handleRecommend)

	return r
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recommendRequest is the wire form of a ranking request. MinScore and
// UseOracle are pointers so that explicit zero and false survive decoding.
type recommendRequest struct {
	UserID   string   `json:"user_id"`
	Limit    int      `json:"limit"`
	MinScore *float64 `json:"min_score"`
	UseAI    *bool    `json:"use_ai"`
}

type recommendResponse struct {
	Success         bool                       `json:"success"`
	UserID          string                     `json:"user_id"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	TotalAnalyzed   int                        `json:"total_analyzed"`
	TotalMatches    int                        `json:"total_matches"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id required")
		return
	}

	opts := recommend.Options{
		Limit:     req.Limit,
		MinScore:  recommend.DefaultMinScore,
		UseOracle: true,
	}
	if req.MinScore != nil {
		opts.MinScore = *req.MinScore
	}
	if req.UseAI != nil {
		opts.UseOracle = *req.UseAI
	}

	ctx := r.Context()

	profile, err := s.store.GetUserProfile(ctx, req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.logger.Error("loading user profile", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "loading user profile failed")
		return
	}

	catalog, err := s.store.ListPublishedOpportunities(ctx)
	if err != nil {
		s.logger.Error("loading catalog", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "loading catalog failed")
		return
	}
	if len(catalog) == 0 {
		writeError(w, http.StatusNotFound, "No businesses found")
		return
	}

	result := s.ranker.Rank(ctx, profile, catalog, opts)

	// Cache write is best effort; the response does not depend on it.
	if err := s.store.SaveRecommendations(ctx, req.UserID, result); err != nil {
		s.logger.Warn("caching recommendations", zap.String("user_id", req.UserID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		Success:         true,
		UserID:          req.UserID,
		Recommendations: result.Recommendations,
		TotalAnalyzed:   result.TotalAnalyzed,
		TotalMatches:    result.TotalMatches,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
