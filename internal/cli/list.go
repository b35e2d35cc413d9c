package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/statekit-labs/statekit/internal/prefs"
)

var listCompact bool

func init() {
	listCmd.Flags().BoolVar(&listCompact, "compact", false, "Print on one line without indentation")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the whole document",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		f, err := openFile(env)
		if err != nil {
			return err
		}
		c, err := f.Read(cmd.Context())
		if err != nil {
			return err
		}

		data, err := c.MarshalJSON()
		if err != nil {
			return fmt.Errorf("serializing %s: %w", f.Path(), err)
		}

		if listCompact {
			fmt.Println(string(pretty.Ugly(data)))
			return nil
		}

		out := pretty.Pretty(data)
		p, err := prefs.Load(env)
		if err == nil && p.Color {
			out = pretty.Color(out, nil)
		}
		fmt.Print(string(out))
		return nil
	},
}
