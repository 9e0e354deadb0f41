package cmd

import (
	"errors"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qtje/comic/client"
	"github.com/qtje/comic/internal/service"
)

func init() {
	rootCmd.AddCommand(pageCmd)
	pageCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	pageCmd.AddCommand(getPageCmd())
	pageCmd.AddCommand(createPageCmd())
	pageCmd.AddCommand(updatePageCmd())
	pageCmd.AddCommand(listPageCmd())
	pageCmd.AddCommand(renderPageCmd())
}

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "page commands",
}

// apiClient binds a client to the configured server and account.
func apiClient() *client.Client {
	ctx := readContext()
	return client.New(ctx.Server, ctx.Account)
}

func checkMissingFlags(cmd *cobra.Command, required []string) bool {
	missing := false
	for _, name := range required {
		if !cmd.Flags().Changed(name) {
			color.Red("missing: --%s", name)
			missing = true
		}
	}
	return missing
}

func fail(err error) {
	apiErr := &client.APIError{}
	if errors.As(err, &apiErr) {
		color.Red("server error: %s", apiErr.Body)
		return
	}
	logrus.Error(err)
}

func getPageCmd() *cobra.Command {
	var key string
	var at string

	var required = []string{"key"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a page as of a timestamp",
		Example: "comic page get -k 0001 --at 2024-05-01T12:00:00Z",
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
			table.SetHeader([]string{"Key", "Title", "Arc", "Owner"})
			table.Append([]string{page.Key, page.Title, page.Arc.Name, page.Owner.Name})
			table.Render()
		},
	}

	command.Flags().StringVarP(&key, "key", "k", "", "page key (required)")
	command.Flags().StringVar(&at, "at", "", "point-in-time timestamp (ISO-8601)")

	command.Flags().SortFlags = false

	return command
}

func createPageCmd() *cobra.Command {
	var title string
	var arcHK, templateHK, themeHK, ownerHK uint
	var image, altText, transcript string
	var prevKey string
	var reciprocate bool

	var required = []string{"title", "arc", "template", "theme", "owner"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a page",
		Example: "comic page create -t <title> -a <arc-hk> -o <owner-hk> --template <hk> --theme <hk>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			in := service.PageInput{
				Title:       title,
				ArcHK:       arcHK,
				TemplateHK:  templateHK,
				ThemeHK:     themeHK,
				OwnerHK:     ownerHK,
				Image:       image,
				AltText:     altText,
				Transcript:  transcript,
				PrevKey:     prevKey,
				Reciprocate: reciprocate,
			}

			page, err := apiClient().CreatePage(in)
			if err != nil {
				fail(err)
				return
			}

			logrus.Infof("page created with key: %s", page.PageKey)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "page title (required)")
	command.Flags().UintVarP(&arcHK, "arc", "a", 0, "arc hk (required)")
	command.Flags().UintVar(&templateHK, "template", 0, "template hk (required)")
	command.Flags().UintVar(&themeHK, "theme", 0, "theme hk (required)")
	command.Flags().UintVarP(&ownerHK, "owner", "o", 0, "owner alias hk (required)")
	command.Flags().StringVarP(&image, "image", "i", "", "image asset reference")
	command.Flags().StringVar(&altText, "alt", "", "alt text")
	command.Flags().StringVar(&transcript, "transcript", "", "transcript")
	command.Flags().StringVar(&prevKey, "prev", "", "previous page key to link to")
	command.Flags().BoolVarP(&reciprocate, "reciprocate", "r", false, "create the reciprocal link on the previous page")

	command.Flags().SortFlags = false

	return command
}

func updatePageCmd() *cobra.Command {
	var key, title string
	var arcHK, templateHK, themeHK, ownerHK uint
	var image, altText, transcript string

	var required = []string{"key", "title", "arc", "template", "theme", "owner"}

	command := &cobra.Command{
		Use:   "update",
		Short: "save a new version of a page",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			in := service.PageInput{
				Title:      title,
				ArcHK:      arcHK,
				TemplateHK: templateHK,
				ThemeHK:    themeHK,
				OwnerHK:    ownerHK,
				Image:      image,
				AltText:    altText,
				Transcript: transcript,
			}

			page, err := apiClient().UpdatePage(key, in)
			if err != nil {
				fail(err)
				return
			}

			logrus.Infof("page %s saved, version row %d", page.PageKey, page.RowID)
		},
	}

	command.Flags().StringVarP(&key, "key", "k", "", "page key (required)")
	command.Flags().StringVarP(&title, "title", "t", "", "page title (required)")
	command.Flags().UintVarP(&arcHK, "arc", "a", 0, "arc hk (required)")
	command.Flags().UintVar(&templateHK, "template", 0, "template hk (required)")
	command.Flags().UintVar(&themeHK, "theme", 0, "theme hk (required)")
	command.Flags().UintVarP(&ownerHK, "owner", "o", 0, "owner alias hk (required)")
	command.Flags().StringVarP(&image, "image", "i", "", "image asset reference")
	command.Flags().StringVar(&altText, "alt", "", "alt text")
	command.Flags().StringVar(&transcript, "transcript", "", "transcript")

	command.Flags().SortFlags = false

	return command
}

func listPageCmd() *cobra.Command {
	var owner string

	command := &cobra.Command{
		Use:   "list",
		Short: "list the latest version of every page",
		Run: func(cmd *cobra.Command, args []string) {
			pages, err := apiClient().ListPages(owner)
			if err != nil {
				fail(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Title", "Arc", "Row"})
			for _, page := range pages {
				table.Append([]string{
					page.PageKey,
					page.Title,
					strconv.FormatUint(uint64(page.ArcHK), 10),
					strconv.FormatUint(uint64(page.RowID), 10),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&owner, "owner", "o", "", "restrict to an account id")

	return command
}

func renderPageCmd() *cobra.Command {
	var key string
	var at string

	var required = []string{"key"}

	command := &cobra.Command{
		Use:     "render",
		Short:   "render a page through its template and theme",
		Example: "comic page render -k 0001 --at 2024-05-01T12:00:00Z",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			out, err := apiClient().RenderPage(key, at)
			if err != nil {
				fail(err)
				return
			}

			os.Stdout.WriteString(out.Body + "\n")
			for slot, html := range out.Slots {
				logrus.Debugf("slot %s: %s", slot, html)
			}
		},
	}

	command.Flags().StringVarP(&key, "key", "k", "", "page key (required)")
	command.Flags().StringVar(&at, "at", "", "point-in-time timestamp (ISO-8601)")

	command.Flags().SortFlags = false

	return command
}
