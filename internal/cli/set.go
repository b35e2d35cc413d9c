package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a document value and write it",
	Long: `Set the value under a key and persist the document. The value is parsed
as JSON when possible (numbers, booleans, null, objects, arrays) and stored
as a string otherwise; a null value removes the key. Dot-separated keys
create intermediate objects on demand. The write is reconciled against
concurrent edits.`,
	Args: cobra.ExactArgs(2),
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

		key := args[0]
		value := parseValue(args[1])
		f.Set(key, value)
		if _, err := f.Write(cmd.Context()); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path(), err)
		}
		fmt.Println(setResult(key, args[1], value))
		return nil
	},
}

// setResult describes what the set actually did. A JSON null parses to a
// nil value, which removes the key rather than storing anything.
func setResult(key, raw string, value any) string {
	if value == nil {
		return fmt.Sprintf("Removed %s (null unsets the key)", key)
	}
	return fmt.Sprintf("Set %s = %s", key, raw)
}

// parseValue interprets the argument as JSON when it parses, falling back
// to a plain string. `statekit set retries 3` stores the number 3;
// `statekit set name blue` stores the string "blue".
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
