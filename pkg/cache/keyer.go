package cache

import "fmt"

// keyVersion is bumped whenever the layout of cached values changes.
const keyVersion = "v1"

// Keyer builds cache keys.
type Keyer interface {
	// MatrixKey is the key of the header matrix of a definition.
	MatrixKey(defHash string) string

	// ArtifactKey is the key of a rendered artifact of a definition.
	ArtifactKey(defHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Detailed   bool   `json:"detailed,omitempty"`
	ShowHidden bool   `json:"show_hidden,omitempty"`
	ShowIndex  bool   `json:"show_index,omitempty"`
}

// DefaultKeyer is the stock [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates the stock keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MatrixKey returns "matrix:<version>:<hash>".
func (DefaultKeyer) MatrixKey(defHash string) string {
	return fmt.Sprintf("matrix:%s:%s", keyVersion, defHash)
}

// ArtifactKey returns "artifact:<hash of version, definition hash and options>".
func (DefaultKeyer) ArtifactKey(defHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, defHash, opts)
}

var _ Keyer = DefaultKeyer{}
