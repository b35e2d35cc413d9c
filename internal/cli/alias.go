package cli

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/statekit-labs/statekit/internal/document"
	"github.com/statekit-labs/statekit/internal/group"
	"github.com/statekit-labs/statekit/internal/home"
	"github.com/statekit-labs/statekit/internal/migrate"
)

// The alias file is statekit-owned, so it is format-versioned and migrated
// on read, unlike arbitrary user documents.
const (
	aliasFilename      = "aliases.json"
	aliasGroupName     = "default"
	aliasFormatCurrent = "1.0.0"
)

// mustVersion parses a version literal known to be valid.
func mustVersion(s string) *semver.Version {
	return semver.MustParse(s)
}

func init() {
	aliasCmd.AddCommand(aliasSetCmd)
	aliasCmd.AddCommand(aliasGetCmd)
	aliasCmd.AddCommand(aliasUnsetCmd)
	aliasCmd.AddCommand(aliasListCmd)
	rootCmd.AddCommand(aliasCmd)
}

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage name aliases stored in the global alias document",
}

// aliasMigrator upgrades legacy alias documents to the current format.
func aliasMigrator() (*migrate.Migrator, error) {
	m, err := migrate.New(aliasFormatCurrent)
	if err != nil {
		return nil, err
	}
	m.Register(migrate.Migration{
		To:          mustVersion("1.0.0"),
		Description: "move top-level orgs container to the default group",
		Apply: func(c *document.Contents) error {
			v, ok := c.Get("orgs")
			if !ok {
				return nil
			}
			c.Delete("orgs")
			c.Set(aliasGroupName, v)
			return nil
		},
	})
	return m, nil
}

// openAliases opens the global alias document with migration attached.
func openAliases(env *home.Context) (*group.Group, error) {
	m, err := aliasMigrator()
	if err != nil {
		return nil, err
	}
	f, err := document.New(env, document.Options{
		Filename: aliasFilename,
		IsGlobal: true,
		Migrator: m,
	})
	if err != nil {
		return nil, err
	}
	return group.New(f, aliasGroupName), nil
}

var aliasSetCmd = &cobra.Command{
	Use:   "set <alias> <value>",
	Short: "Set an alias",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		g, err := openAliases(env)
		if err != nil {
			return err
		}
		if _, err := g.File().Read(cmd.Context()); err != nil {
			return err
		}
		g.Set(args[0], args[1])
		if err := g.Write(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Set alias %s = %s\n", args[0], args[1])
		return nil
	},
}

var aliasGetCmd = &cobra.Command{
	Use:   "get <alias>",
	Short: "Print an alias value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		g, err := openAliases(env)
		if err != nil {
			return err
		}
		if _, err := g.File().Read(cmd.Context()); err != nil {
			return err
		}
		if v, ok := g.GetString(args[0]); ok {
			fmt.Println(v)
		}
		return nil
	},
}

var aliasUnsetCmd = &cobra.Command{
	Use:   "unset <alias>...",
	Short: "Remove aliases",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		g, err := openAliases(env)
		if err != nil {
			return err
		}
		if _, err := g.File().Read(cmd.Context()); err != nil {
			return err
		}
		removed := 0
		for _, name := range args {
			if g.Unset(name) {
				removed++
			}
		}
		if err := g.Write(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Removed %d alias(es)\n", removed)
		return nil
	},
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := runContext()
		if err != nil {
			return err
		}
		g, err := openAliases(env)
		if err != nil {
			return err
		}
		if _, err := g.File().Read(cmd.Context()); err != nil {
			return err
		}
		for _, name := range g.Keys() {
			v, _ := g.Get(name)
			fmt.Printf("%s = %v\n", name, v)
		}
		return nil
	},
}
