package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nestedheaders/pkg/cache"
	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
	pkgio "github.com/matzehuels/nestedheaders/pkg/io"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
	"github.com/matzehuels/nestedheaders/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeMatrix   = "matrix"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts; zero means cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete prepare → generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Prepare
	prepareStart := time.Now()
	f, err := Prepare(opts.Definition)
	if err != nil {
		return nil, err
	}
	result.Forest = f
	result.Stats.PrepareTime = time.Since(prepareStart)
	result.Stats.Levels = f.Levels()
	result.Stats.Columns = f.Columns()

	hash, err := DefinitionHash(opts.Definition)
	if err != nil {
		return nil, err
	}
	result.DefinitionHash = hash

	r.Logger.Debug("prepared forest",
		"levels", result.Stats.Levels,
		"columns", result.Stats.Columns,
		"duration", result.Stats.PrepareTime)

	// Stage 2: Generate
	generateStart := time.Now()
	m, matrixHit, err := r.GenerateWithCacheInfo(ctx, hash, f, opts)
	if err != nil {
		return nil, err
	}
	result.Matrix = m
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.Hidden = len(m.HiddenColumns())
	result.CacheInfo.MatrixHit = matrixHit

	r.Logger.Info("generated matrix",
		"levels", m.Levels(),
		"hidden", result.Stats.Hidden,
		"cached", matrixHit,
		"duration", result.Stats.GenerateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, hash, f, m, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DefinitionHash is the content hash of a definition, its view state included.
func DefinitionHash(def pkgio.Definition) (string, error) {
	hash, err := cache.HashJSON(def)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash definition")
	}
	return hash, nil
}

// GenerateWithCacheInfo generates the matrix of f with caching and returns
// cache hit info. defHash identifies the definition f was prepared from.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, defHash string, f headers.Forest, opts Options) (matrix.Matrix, bool, error) {
	hooks := observability.Cache()
	cacheKey := r.Keyer.MatrixKey(defHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var m matrix.Matrix
			if err := json.Unmarshal(data, &m); err == nil {
				hooks.OnCacheHit(ctx, keyTypeMatrix)
				return m, true, nil
			}
			// If deserialization fails, fall through to regenerate
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "key", cacheKey, "err", err)
		}
		hooks.OnCacheMiss(ctx, keyTypeMatrix)
	}

	m, err := Generate(ctx, f)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(m); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLMatrix); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeMatrix, len(data))
		}
	}

	return m, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, defHash string, f headers.Forest, m matrix.Matrix, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(defHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			hooks.OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered, err := Render(ctx, f, m, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(defHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.artifactTTL()); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

func (r *Runner) artifactTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
