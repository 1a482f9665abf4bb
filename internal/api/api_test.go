package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stacklattice/pkg/cache"
	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/graph"
	"github.com/matzehuels/stacklattice/pkg/pipeline"
)

const samplePaths = `[
  {"src_tgt_ids": [0, 1], "path_nodes": [
    {"coord": [0, 0, 0], "kind": "zzx"},
    {"coord": [1, 0, 0], "kind": "ozx"},
    {"coord": [3, 0, 0], "kind": "zzx"}]},
  {"src_tgt_ids": [1, 2], "path_nodes": [
    {"coord": [3, 0, 0], "kind": "zzx"},
    {"coord": [3, 1, 0], "kind": "zox"},
    {"coord": [3, 3, 0], "kind": "zzx"}]}
]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })

	srv := httptest.NewServer(New(runner, pipeline.Options{}, logger).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var h healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "ok", h.Status)
	assert.NotEmpty(t, h.Version)
}

func TestAssembleJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/assemble", samplePaths)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.NotEmpty(t, resp.Header.Get("X-Run-ID"))

	var g graph.Graph
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&g))
	assert.Equal(t, resp.Header.Get("X-Run-ID"), g.RunID)
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)

	again := post(t, srv.URL+"/v1/assemble", samplePaths)
	assert.Equal(t, "HIT", again.Header.Get("X-Cache"))
}

func TestAssembleDOT(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/assemble?format=dot&detailed=true", samplePaths)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "graph L {")
	assert.Contains(t, string(body), "0 -- 1")
}

func TestAssembleErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		url    string
		body   string
		status int
		code   errors.Code
	}{
		{
			name:   "unknown format",
			url:    "/v1/assemble?format=gif",
			body:   samplePaths,
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidFormat,
		},
		{
			name:   "malformed kind",
			url:    "/v1/assemble",
			body:   `[{"src_tgt_ids": [0, 1], "path_nodes": [{"coord": [0, 0, 0], "kind": "xyz"}]}]`,
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidKind,
		},
		{
			name:   "pipe in block slot",
			url:    "/v1/assemble",
			body:   `[{"src_tgt_ids": [0, 1], "path_nodes": [{"coord": [0, 0, 0], "kind": "ozx"}]}]`,
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidPath,
		},
		{
			name:   "not json",
			url:    "/v1/assemble",
			body:   `{`,
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.url, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, resp)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestCandidates(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/candidates", `{"from": [0, 0, 0], "step": 3, "occupied": [[3, 0, 0]]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res pipeline.SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Len(t, res.Candidates, 5)
	for _, c := range res.Candidates {
		assert.NotEqual(t, [3]int{3, 0, 0}, [3]int{c.X, c.Y, c.Z})
	}
}

func TestCandidatesErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/candidates", `{"from": [0, 0, 0], "step": 4}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidStep, decodeError(t, resp).Code)

	resp = post(t, srv.URL+"/v1/candidates", `{"from": [0, 0, 0], "step": 3, "radius": 2}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidInput, decodeError(t, resp).Code)
}

func TestExits(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/exits", `{"at": [0, 0, 0], "kind": "zzx", "occupied": [[5, 0, 0]], "beam_length": 9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res pipeline.ExitsResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, 3, res.Count)
	assert.Len(t, res.Beams, 3)

	resp = post(t, srv.URL+"/v1/exits", `{"at": [0, 0, 0]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidKind, decodeError(t, resp).Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.ErrCodeNotPipe))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.ErrCodeFileNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeInternal))
}
