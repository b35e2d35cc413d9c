package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pathCmd)
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved document path",
	Long: `Print where the selected document lives on disk without touching it.
Useful for scripting and for checking how --global, --state and --path
interact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		f, err := openFile(env)
		if err != nil {
			return err
		}
		fmt.Println(f.Path())
		return nil
	},
}
