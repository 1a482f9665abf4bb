package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/stacklattice/pkg/buildinfo"
	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/graph"
	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/pipeline"
)

// contentTypes maps drawing formats to their media types.
var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type candidatesRequest struct {
	pipeline.SearchRequest
	Seed        uint64 `json:"seed,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
	TargetCount int    `json:"target_count,omitempty"`
}

type exitsRequest struct {
	pipeline.ExitsRequest
	BeamLength int `json:"beam_length,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleAssemble(w http.ResponseWriter, r *http.Request) {
	var paths []lattice.EdgePath
	if !s.decode(w, r, &paths) {
		return
	}

	opts := s.defaults
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if format != pipeline.FormatJSON && contentTypes[format] == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format))
		return
	}
	opts.Formats = []string{format}
	opts.Detailed = opts.Detailed || r.URL.Query().Get("detailed") == "true"

	res, err := s.runner.Execute(r.Context(), paths, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.AssembleHit))

	if format != pipeline.FormatJSON {
		w.Header().Set("Content-Type", contentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
		return
	}

	g := graph.FromLattice(res.Lattice)
	g.RunID = res.RunID
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var req candidatesRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.defaults
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	if req.MaxAttempts != 0 {
		opts.MaxAttempts = req.MaxAttempts
	}
	if req.TargetCount != 0 {
		opts.TargetCount = req.TargetCount
	}

	res, err := s.runner.Search(r.Context(), req.SearchRequest, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(res.CacheHit))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExits(w http.ResponseWriter, r *http.Request) {
	var req exitsRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.defaults
	if req.BeamLength != 0 {
		opts.BeamLength = req.BeamLength
	}

	res, err := s.runner.Exits(req.ExitsRequest, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decode reads a JSON body into v. Coded errors raised while decoding (a
// malformed kind, say) keep their code; anything else is INVALID_INPUT.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
		}
		writeError(w, err)
		return false
	}
	return true
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidKind, errors.ErrCodeInvalidStep,
		errors.ErrCodeInvalidBeam, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidFormat,
		errors.ErrCodeNotPipe:
		return http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Code: errors.ErrCodeInvalidInput, Message: "request body too large"})
		return
	case code == "":
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
