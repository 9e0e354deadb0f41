package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "comic"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
}

// Context is the client-side state the CLI keeps between invocations: where
// the server is and which account the commands act as.
type Context struct {
	Server  string `json:"server"`
	Account string `json:"account"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var serverAddr string
	var accountID string

	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if serverAddr == "" && accountID == "" {
				color.Red(`missing: --server or --account`)
				return
			}

			ctx := readContext()
			if serverAddr != "" {
				ctx.Server = serverAddr
			}
			if accountID != "" {
				ctx.Account = accountID
			}

			writeContext(ctx)
		},
	}

	command.Flags().StringVarP(&serverAddr, "server", "s", "", "server address")
	command.Flags().StringVarP(&accountID, "account", "a", "", "account id")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := readContext()
			fmt.Println("server: ", ctx.Server)
			fmt.Println("account:", ctx.Account)
		},
	}

	return command
}

func writeContext(context Context) {
	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")
	viper.Set("context", context)

	if err := viper.WriteConfig(); err != nil {
		fmt.Println("error writing config file: ", err)
	}
}

func readContext() Context {
	var ctx Context

	// create file if it doesn't exist
	if _, err := os.Stat("./.tmp/" + configFileName + ".yml"); os.IsNotExist(err) {
		if err := os.MkdirAll("./.tmp", os.ModePerm); err != nil {
			fmt.Println("error creating config dir: ", err)
			return ctx
		}
		file, err := os.Create("./.tmp/" + configFileName + ".yml")
		if err != nil {
			fmt.Println("error creating config file: ", err)
		}
		err = file.Close()
		if err != nil {
			panic(err)
		}
	}

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("error reading config file: ", err)
	}

	if err := viper.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	if ctx.Server == "" {
		ctx.Server = "http://localhost:4021"
	}

	return ctx
}
