package cli

import (
	"github.com/spf13/cobra"

	"github.com/statekit-labs/statekit/internal/branding"
	"github.com/statekit-labs/statekit/internal/document"
	"github.com/statekit-labs/statekit/internal/home"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Document selection flags shared by every command that opens a file.
var (
	flagName   string
	flagGlobal bool
	flagState  bool
	flagPath   string
	flagRoot   string
	flagNoLock bool
	flagStrict bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads and writes JSON state documents shared by concurrent
processes. Writes are reconciled against the current on-disk state under an
advisory file lock, so parallel invocations editing disjoint keys never
clobber each other.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagName, "name", "n", "config.json", "Document file name")
	pf.BoolVarP(&flagGlobal, "global", "g", false, "Use the global home-state document")
	pf.BoolVar(&flagState, "state", false, "Use the project-local state folder")
	pf.StringVar(&flagPath, "path", "", "Custom directory below the project root")
	pf.StringVar(&flagRoot, "root", "", "Project root folder (default: working directory)")
	pf.BoolVar(&flagNoLock, "no-lock", false, "Skip cross-process locking (unsafe with concurrent writers)")
	pf.BoolVar(&flagStrict, "strict", false, "Fail when the document does not exist")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// runContext builds the per-process run context.
func runContext() (*home.Context, error) {
	return home.NewContext()
}

// openFile resolves the document selected by the shared flags.
func openFile(env *home.Context) (*document.File, error) {
	return document.New(env, document.Options{
		Filename:        flagName,
		IsGlobal:        flagGlobal,
		IsState:         flagState,
		FilePath:        flagPath,
		RootFolder:      flagRoot,
		ThrowOnNotFound: flagStrict,
		DisableLock:     flagNoLock,
	})
}
