package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statekit-labs/statekit/internal/branding"
	"github.com/statekit-labs/statekit/internal/home"
	"github.com/statekit-labs/statekit/internal/lock"
	"github.com/statekit-labs/statekit/internal/platform"
	"github.com/statekit-labs/statekit/internal/prefs"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt to repair issues")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check home-state directory health",
	Long: `Validate the home-state directory: existence, permissions, preferences,
and lock sentinels left behind by crashed processes. With --fix, loose
permissions are tightened and dead sentinels removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}

		fmt.Println("Home-state check:")

		if _, statErr := os.Stat(env.Dir); os.IsNotExist(statErr) {
			fmt.Printf("  [MISS] %s does not exist\n", env.Dir)
			if doctorFix {
				fmt.Println("  [FIX ] Running init...")
				if err := platform.EnsureSecureDir(env.Dir); err != nil {
					return fmt.Errorf("auto-fix init: %w", err)
				}
				if _, err := prefs.WriteDefault(env); err != nil {
					return fmt.Errorf("auto-fix preferences: %w", err)
				}
			} else {
				fmt.Printf("         Run '%s init' to create\n", branding.CLIName())
			}
			return nil
		}
		fmt.Printf("  [ OK ] %s exists\n", env.Dir)

		checkDirPerm(env.Dir)
		checkPreferences(env)
		return checkSentinels(env)
	},
}

func checkDirPerm(dir string) {
	ok, err := platform.CheckPerm(dir, platform.DirPermSecure)
	switch {
	case err != nil:
		fmt.Printf("  [WARN] cannot check permissions: %v\n", err)
	case ok:
		fmt.Printf("  [ OK ] permissions are %o\n", platform.DirPermSecure)
	case doctorFix:
		if err := platform.Chmod(dir, platform.DirPermSecure); err != nil {
			fmt.Printf("  [WARN] could not tighten permissions: %v\n", err)
		} else {
			fmt.Printf("  [FIX ] permissions tightened to %o\n", platform.DirPermSecure)
		}
	default:
		fmt.Printf("  [WARN] permissions are not %o\n", platform.DirPermSecure)
	}
}

func checkPreferences(env *home.Context) {
	if _, err := os.Stat(prefs.Path(env)); os.IsNotExist(err) {
		fmt.Printf("  [MISS] %s does not exist\n", prefs.Path(env))
		return
	}
	if _, err := prefs.Load(env); err != nil {
		fmt.Printf("  [WARN] preferences unreadable: %v\n", err)
		return
	}
	fmt.Printf("  [ OK ] %s parses\n", prefs.Path(env))
}

func checkSentinels(env *home.Context) error {
	stale, err := lock.StaleSentinels(env.Dir, env.Lock.Stale)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		fmt.Println("  [ OK ] no stale lock sentinels")
		return nil
	}
	for _, path := range stale {
		if doctorFix {
			if err := os.Remove(path); err != nil {
				fmt.Printf("  [WARN] could not remove %s: %v\n", path, err)
			} else {
				fmt.Printf("  [FIX ] removed stale sentinel %s\n", path)
			}
		} else {
			fmt.Printf("  [WARN] stale lock sentinel %s (rerun with --fix to remove)\n", path)
		}
	}
	return nil
}
