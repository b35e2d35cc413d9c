// Package migrate upgrades persisted documents between format versions.
// Documents carry their format under the "schemaVersion" key; registered
// migrations are applied in version order when an older document is read.
package migrate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/statekit-labs/statekit/internal/document"
)

// VersionKey is the top-level document key carrying the format version.
const VersionKey = "schemaVersion"

// ErrFutureVersion indicates the document was written by a newer CLI.
var ErrFutureVersion = errors.New("document format is newer than this version supports")

// Migration upgrades a document to one target version.
type Migration struct {
	// To is the format version this migration produces.
	To *semver.Version
	// Description describes what the migration does.
	Description string
	// Apply performs the migration on the document contents.
	Apply func(c *document.Contents) error
}

// Migrator applies registered migrations up to the current format version.
// It implements document.Migrator.
type Migrator struct {
	current    *semver.Version
	migrations []Migration
}

// New creates a Migrator for the given current format version.
func New(current string) (*Migrator, error) {
	v, err := parse(current)
	if err != nil {
		return nil, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	return &Migrator{current: v}, nil
}

// Current returns the current format version string.
func (m *Migrator) Current() string {
	return m.current.String()
}

// Register adds a migration, keeping the set ordered by target version.
func (m *Migrator) Register(mig Migration) {
	m.migrations = append(m.migrations, mig)
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].To.LessThan(m.migrations[j].To)
	})
}

// Apply upgrades the contents in place. An unstamped document counts as
// version 0.0.0. Reports whether anything changed; a document stamped
// newer than the current version fails with ErrFutureVersion.
func (m *Migrator) Apply(c *document.Contents) (bool, error) {
	from := semver.New(0, 0, 0, "", "")
	if raw, ok := c.Get(VersionKey); ok {
		s, isString := raw.(string)
		if !isString {
			return false, fmt.Errorf("%s is not a string", VersionKey)
		}
		v, err := parse(s)
		if err != nil {
			return false, fmt.Errorf("parsing %s %q: %w", VersionKey, s, err)
		}
		from = v
	}

	if from.GreaterThan(m.current) {
		return false, fmt.Errorf("%w: document has %s, supported is %s",
			ErrFutureVersion, from, m.current)
	}
	if from.Equal(m.current) {
		return false, nil
	}

	for _, mig := range m.migrations {
		if !mig.To.GreaterThan(from) || mig.To.GreaterThan(m.current) {
			continue
		}
		if err := mig.Apply(c); err != nil {
			return false, fmt.Errorf("migration to %s (%s): %w", mig.To, mig.Description, err)
		}
	}

	c.Set(VersionKey, m.current.String())
	return true, nil
}

// parse strips a leading "v" and parses the version string.
func parse(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
