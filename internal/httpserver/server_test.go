package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/results"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

type brokenSource struct{}

func (brokenSource) Ranked(context.Context) ([]results.Record, error) {
	return nil, errors.New("db locked")
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	mem := results.NewMemory()
	for _, r := range []struct {
		w string
		s float64
	}{{"crane", 3.5}, {"slate", 2.25}, {"about", 9}, {"zebra", 12}} {
		require.NoError(t, mem.Append(context.Background(), results.Record{Word: words.MustParse(r.w), Score: r.s}))
	}
	return New(mem)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestListScores(t *testing.T) {
	rec := get(t, newTestServer(t), "/scores?limit=2&offset=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var res listRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, []scoreRow{
		{Rank: 2, Word: "crane", Score: 3.5},
		{Rank: 3, Word: "about", Score: 9},
	}, res.Scores)
}

func TestListScoresPastEnd(t *testing.T) {
	rec := get(t, newTestServer(t), "/scores?offset=10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":4,"offset":10,"scores":[]}`, rec.Body.String())
}

func TestListScoresBadParams(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/scores?limit=x", "/scores?limit=0", "/scores?offset=-1"} {
		assert.Equal(t, http.StatusBadRequest, get(t, s, path).Code, path)
	}
}

func TestWordScore(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/scores/slate")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rank":1,"word":"slate","score":2.25}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, s, "/scores/quiet").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/scores/toolong").Code)
}

func TestSourceError(t *testing.T) {
	s := New(brokenSource{})
	assert.Equal(t, http.StatusInternalServerError, get(t, s, "/scores").Code)
	assert.Equal(t, http.StatusInternalServerError, get(t, s, "/scores/crane").Code)
}

func TestNotFound(t *testing.T) {
	rec := get(t, newTestServer(t), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
