// Package prefs manages user-wide CLI preferences stored as YAML in the
// home-state directory. Preferences tune presentation and lock patience;
// they are separate from the documents the store manages.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/statekit-labs/statekit/internal/home"
	"github.com/statekit-labs/statekit/internal/platform"
)

// Filename of the preferences file within the home-state directory.
const Filename = "preferences.yaml"

// Default content written by `statekit init`.
const defaultContent = `output_format: json
color: true
verbose: false
# lock_timeout_ms: 10000
`

// Preferences represents user-wide defaults.
type Preferences struct {
	OutputFormat  string `yaml:"output_format,omitempty"`
	Color         bool   `yaml:"color,omitempty"`
	Verbose       bool   `yaml:"verbose,omitempty"`
	LockTimeoutMS int64  `yaml:"lock_timeout_ms,omitempty"`

	// Extras holds arbitrary user-defined fields.
	Extras map[string]interface{} `yaml:",inline"`
}

// Path returns the preferences file location for the run context.
func Path(env *home.Context) string {
	return filepath.Join(env.Dir, Filename)
}

// Load reads and parses the preferences file. A missing file yields
// zero-value preferences.
func Load(env *home.Context) (*Preferences, error) {
	data, err := os.ReadFile(Path(env))
	if os.IsNotExist(err) {
		return &Preferences{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	var p Preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}
	return &p, nil
}

// WriteDefault creates the preferences file with default content if it
// does not already exist. Reports whether the file was created.
func WriteDefault(env *home.Context) (bool, error) {
	path := Path(env)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := platform.EnsureSecureDir(env.Dir); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(defaultContent), platform.FilePermSecure); err != nil {
		return false, fmt.Errorf("writing preferences: %w", err)
	}
	return true, nil
}
