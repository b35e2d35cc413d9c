package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(unlinkCmd)
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Delete the document from disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		f, err := openFile(env)
		if err != nil {
			return err
		}
		if err := f.Unlink(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", f.Path())
		return nil
	},
}
