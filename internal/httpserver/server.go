// apps/go-scorer/internal/httpserver/server.go
//
// HTTP server wiring for browsing scoring results.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Results endpoints (read-only): GET /scores, GET /scores/{word}.
//
// Notes:
//   - Results are read from the configured sink on every request, so an
//     in-progress resumable run can be watched while it grows.
//   - Ranks are 1-based positions in ascending score order.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/results"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

const (
	defaultLimit = 20
	maxLimit     = 1000
)

// Server bundles the router and the results source.
type Server struct {
	r   *chi.Mux
	src results.Ranker
}

// New constructs a Server, installs middleware, and registers routes.
func New(src results.Ranker) *Server {
	s := &Server{r: chi.NewRouter(), src: src}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-scorer","endpoints":["/health","GET /scores","GET /scores/{word}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/scores", s.handleList)
	s.r.Get("/scores/{word}", s.handleWord)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SCORES -------------------------------------

// scoreRow is one ranked result on the wire.
type scoreRow struct {
	Rank  int     `json:"rank"`
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// listRes is returned by GET /scores.
type listRes struct {
	Total  int        `json:"total"`
	Offset int        `json:"offset"`
	Scores []scoreRow `json:"scores"`
}

// handleList returns one page of the ranking.
// Query: limit (default 20, max 1000), offset (default 0).
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(r, "limit", defaultLimit)
	if !ok || limit <= 0 {
		http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, ok := intParam(r, "offset", 0)
	if !ok || offset < 0 {
		http.Error(w, `{"error":"bad_offset"}`, http.StatusBadRequest)
		return
	}

	recs, err := s.src.Ranked(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load results")
		http.Error(w, `{"error":"results_unavailable"}`, http.StatusInternalServerError)
		return
	}

	out := listRes{Total: len(recs), Offset: offset, Scores: []scoreRow{}}
	for i := offset; i < len(recs) && i < offset+limit; i++ {
		out.Scores = append(out.Scores, scoreRow{Rank: i + 1, Word: recs[i].Word.String(), Score: recs[i].Score})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleWord returns the rank and score of a single word.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	word, err := words.Parse(chi.URLParam(r, "word"))
	if err != nil {
		http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
		return
	}

	recs, err := s.src.Ranked(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load results")
		http.Error(w, `{"error":"results_unavailable"}`, http.StatusInternalServerError)
		return
	}
	for i, rec := range recs {
		if rec.Word == word {
			_ = json.NewEncoder(w).Encode(scoreRow{Rank: i + 1, Word: rec.Word.String(), Score: rec.Score})
			return
		}
	}
	http.Error(w, `{"error":"not_scored"}`, http.StatusNotFound)
}

// intParam reads an optional integer query parameter.
func intParam(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
