package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qtje/comic/internal/render"
)

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	linkCmd.AddCommand(addLinkCmd())
	linkCmd.AddCommand(removeLinkCmd())
	linkCmd.AddCommand(listLinksCmd())
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "navigation link commands",
}

func addLinkCmd() *cobra.Command {
	var fromKey, toKey, kind string
	var ownerHK uint
	var reciprocate bool

	var required = []string{"from", "to", "kind", "owner"}

	command := &cobra.Command{
		Use:     "add",
		Short:   "add a navigation link between two pages",
		Example: "comic link add -f 0001 -t 0002 -k n -o <owner-hk> -r",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			link, err := apiClient().AddLink(fromKey, toKey, kind, ownerHK, reciprocate)
			if err != nil {
				fail(err)
				return
			}

			logrus.Infof("link %d added: %s -%s-> %s", link.ID, fromKey, kind, toKey)
		},
	}

	command.Flags().StringVarP(&fromKey, "from", "f", "", "from page key (required)")
	command.Flags().StringVarP(&toKey, "to", "t", "", "to page key (required)")
	command.Flags().StringVarP(&kind, "kind", "k", "", "link kind: n, p or f (required)")
	command.Flags().UintVarP(&ownerHK, "owner", "o", 0, "owner alias hk (required)")
	command.Flags().BoolVarP(&reciprocate, "reciprocate", "r", false, "create the inverse link too")

	command.Flags().SortFlags = false

	return command
}

func removeLinkCmd() *cobra.Command {
	var id uint

	var required = []string{"id"}

	command := &cobra.Command{
		Use:   "remove",
		Short: "soft-delete a link",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			if err := apiClient().RemoveLink(id); err != nil {
				fail(err)
				return
			}

			logrus.Infof("link %d deleted", id)
		},
	}

	command.Flags().UintVarP(&id, "id", "i", 0, "link id (required)")

	return command
}

func listLinksCmd() *cobra.Command {
	var key string
	var at string

	var required = []string{"key"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list the links of a page as of a timestamp",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			page, err := apiClient().GetPage(key, at)
			if err != nil {
				fail(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Kind", "To", "Owner"})
			for _, group := range [][]render.SafeLink{page.First, page.Previous, page.Next} {
				for _, link := range group {
					table.Append([]string{link.Kind, link.ToKey, link.Owner.Name})
				}
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&key, "key", "k", "", "page key (required)")
	command.Flags().StringVar(&at, "at", "", "point-in-time timestamp (ISO-8601)")

	return command
}
