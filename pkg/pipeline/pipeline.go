// Package pipeline provides the header pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Prepare: Build the header forest of a definition and apply its hidden
//     and collapsed state
//  2. Generate: Project the forest onto a header matrix
//  3. Render: Produce output in the requested formats (text, HTML, XLSX,
//     JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
// A [Runner] adds caching to the generate and render stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Definition: def,
//	    Formats:    []string{"html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nestedheaders/pkg/cache"
	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
	pkgio "github.com/matzehuels/nestedheaders/pkg/io"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
	"github.com/matzehuels/nestedheaders/pkg/render"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = render.FormatText

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the header pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Definition is the header source plus hidden and collapsed state.
	Definition pkgio.Definition `json:"definition"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`    // DOT/SVG labels with spans and metadata
	ShowHidden bool     `json:"show_hidden,omitempty"` // keep hidden columns in text output
	ShowIndex  bool     `json:"show_index,omitempty"`  // column number row in text output

	// Refresh bypasses cache lookups; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the header forest with hidden and collapsed state applied.
	Forest headers.Forest

	// Matrix is the generated header matrix.
	Matrix matrix.Matrix

	// DefinitionHash is the content hash of the definition, state included.
	DefinitionHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Levels       int
	Columns      int
	Hidden       int
	PrepareTime  time.Duration
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	MatrixHit bool // Whether the matrix came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, render.ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the render options and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// RenderOptions returns the options passed to [render.Render].
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Text:     render.TextOptions{ShowHidden: o.ShowHidden, ShowIndex: o.ShowIndex},
		Detailed: o.Detailed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case render.FormatText:
		opts.ShowHidden = o.ShowHidden
		opts.ShowIndex = o.ShowIndex
	case render.FormatDOT, render.FormatSVG:
		opts.Detailed = o.Detailed
	}
	return opts
}
