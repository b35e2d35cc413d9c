package home

// Mode represents the operating mode of the CLI.
type Mode int

const (
	// ModeProduction is the default mode for installed binaries.
	ModeProduction Mode = iota
	// ModeDevelopment is for developers working on the CLI itself.
	ModeDevelopment
	// ModeDemo is for demos and screencasts; state is kept separate.
	ModeDemo
	// ModeTest is for automated test runs.
	ModeTest
)

// ParseMode maps a mode string to a Mode. Unrecognized values fall back
// to production.
func ParseMode(s string) Mode {
	switch s {
	case "development", "dev":
		return ModeDevelopment
	case "demo":
		return ModeDemo
	case "test":
		return ModeTest
	default:
		return ModeProduction
	}
}

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return "development"
	case ModeDemo:
		return "demo"
	case ModeTest:
		return "test"
	case ModeProduction:
		return "production"
	default:
		return "unknown"
	}
}

// dirSuffix returns the suffix appended to the home-state directory name so
// that non-production modes keep their state isolated.
func (m Mode) dirSuffix() string {
	switch m {
	case ModeDevelopment:
		return "-dev"
	case ModeDemo:
		return "-demo"
	case ModeTest:
		return "-test"
	default:
		return ""
	}
}
