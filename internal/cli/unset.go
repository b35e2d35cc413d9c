package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(unsetCmd)
}

var unsetCmd = &cobra.Command{
	Use:   "unset <key>...",
	Short: "Remove document keys and write the document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		f, err := openFile(env)
		if err != nil {
			return err
		}
		if _, err := f.Read(cmd.Context()); err != nil {
			return err
		}

		removed := 0
		for _, key := range args {
			if f.Unset(key) {
				removed++
			}
		}
		if _, err := f.Write(cmd.Context()); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path(), err)
		}
		fmt.Printf("Removed %d key(s)\n", removed)
		return nil
	},
}
