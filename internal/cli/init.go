package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statekit-labs/statekit/internal/platform"
	"github.com/statekit-labs/statekit/internal/prefs"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the home-state directory and default preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}

		if err := platform.EnsureSecureDir(env.Dir); err != nil {
			return err
		}
		fmt.Printf("  [ OK ] %s\n", env.Dir)

		created, err := prefs.WriteDefault(env)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("  [ OK ] %s\n", prefs.Path(env))
		} else {
			fmt.Printf("  [SKIP] %s exists\n", prefs.Path(env))
		}
		return nil
	},
}
