package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a document value",
	Long: `Print the value stored under a key. Dot-separated keys address nested
properties, e.g. "org.alias". Absent keys print nothing and exit zero.`,
	Args: cobra.ExactArgs(1),
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

		v, ok := f.Get(args[0])
		if !ok {
			return nil
		}
		return printValue(v)
	},
}

// printValue renders scalars bare and structures as indented JSON.
func printValue(v any) error {
	switch v.(type) {
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("rendering value: %w", err)
		}
		fmt.Print(string(pretty.Pretty(data)))
		return nil
	case nil:
		fmt.Println("null")
		return nil
	default:
		fmt.Println(formatScalar(v))
		return nil
	}
}

// formatScalar renders a JSON scalar the way it appears in the document.
func formatScalar(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}
