package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/qtje/comic/internal/config"
	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/seed"
	"github.com/qtje/comic/internal/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
	dbCmd.AddCommand(Seed())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			err := model.Migrate(db)
			if err != nil {
				panic(err)
			}
		},
	}

	return command
}

func Seed() *cobra.Command {
	command := &cobra.Command{
		Use:   "seed",
		Short: "Seed an empty database with the built-in template and theme",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			st := store.NewGormStore(db)
			if err := st.Migrate(); err != nil {
				panic(err)
			}
			if err := seed.Seed(context.Background(), st); err != nil {
				panic(err)
			}
		},
	}

	return command
}
