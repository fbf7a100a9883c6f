package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/matzehuels/nestedheaders/pkg/buildinfo"
	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
	"github.com/matzehuels/nestedheaders/pkg/pipeline"
	pkgrender "github.com/matzehuels/nestedheaders/pkg/render"
)

// Cache status headers.
const (
	CacheHeader = "X-Cache"
	cacheHit    = "hit"
	cacheMiss   = "miss"
)

// healthCheckTimeout bounds the cache ping in /healthz.
const healthCheckTimeout = 2 * time.Second

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
	Cache  string         `json:"cache,omitempty"`
}

// MatrixResponse is the body of POST /v1/matrix.
type MatrixResponse struct {
	Hash          string        `json:"hash"`
	Levels        int           `json:"levels"`
	Columns       int           `json:"columns"`
	HiddenColumns []int         `json:"hidden_columns"`
	Cached        bool          `json:"cached"`
	Matrix        matrix.Matrix `json:"matrix"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Build: buildinfo.Get()}
	status := http.StatusOK

	if p, ok := s.runner.Cache.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.logger.Warn("cache unreachable", "err", err)
			resp.Status = "degraded"
			resp.Cache = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Cache = "ok"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	f, err := pipeline.Prepare(opts.Definition)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	hash, err := pipeline.DefinitionHash(opts.Definition)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	m, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), hash, f, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	hidden := m.HiddenColumns()
	if hidden == nil {
		hidden = []int{}
	}
	if m == nil {
		m = matrix.Matrix{}
	}
	w.Header().Set(CacheHeader, cacheStatus(hit))
	render.JSON(w, r, MatrixResponse{
		Hash:          hash,
		Levels:        f.Levels(),
		Columns:       f.Columns(),
		HiddenColumns: hidden,
		Cached:        hit,
		Matrix:        m,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	opts, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data := result.Artifacts[format]

	w.Header().Set("Content-Type", pkgrender.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(CacheHeader, cacheStatus(result.CacheInfo.RenderHit))
	if pkgrender.IsBinary(format) {
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "headers"+pkgrender.Extension(format)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decode reads pipeline options from the request body, bounded by the
// configured size limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		if isTooLarge(err) {
			return opts, err
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	if err := opts.Definition.Validate(); err != nil {
		return opts, err
	}
	opts.Logger = s.logger
	return opts, nil
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}

func cacheStatus(hit bool) string {
	if hit {
		return cacheHit
	}
	return cacheMiss
}
