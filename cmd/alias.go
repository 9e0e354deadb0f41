package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(aliasCmd)
	aliasCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	aliasCmd.AddCommand(listAliasCmd())
	aliasCmd.AddCommand(createAliasCmd())
}

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "alias commands",
}

func listAliasCmd() *cobra.Command {
	var owner string

	command := &cobra.Command{
		Use:   "list",
		Short: "list aliases",
		Run: func(cmd *cobra.Command, args []string) {
			aliases, _, err := apiClient().ListAliases(owner)
			if err != nil {
				fail(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"HK", "Name", "Account"})
			for _, alias := range aliases {
				table.Append([]string{
					strconv.FormatUint(uint64(alias.HK), 10),
					alias.DisplayName,
					alias.AuthorID,
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&owner, "owner", "o", "", "restrict to an account id")

	return command
}

func createAliasCmd() *cobra.Command {
	var name string

	var required = []string{"name"}

	command := &cobra.Command{
		Use:   "create",
		Short: "create an alias for the current account",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			alias, err := apiClient().CreateAlias(name)
			if err != nil {
				fail(err)
				return
			}

			logrus.Infof("alias created with hk: %d", alias.HK)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "display name (required)")

	return command
}
