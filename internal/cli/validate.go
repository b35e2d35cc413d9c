package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statekit-labs/statekit/internal/schema"
)

var validateSchemaPath string

func init() {
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to the JSON schema (required)")
	_ = validateCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the document against a JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		f, err := openFile(env)
		if err != nil {
			return err
		}

		result, err := schema.ValidateFile(f.Path(), validateSchemaPath)
		if err != nil {
			return err
		}
		if !result.Valid {
			return result.AsError()
		}
		fmt.Printf("%s is valid\n", f.Path())
		return nil
	},
}
