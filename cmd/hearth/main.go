package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hearthside/hearth/internal/profile"
	"github.com/hearthside/hearth/server"
	"github.com/hearthside/hearth/store"
	"github.com/hearthside/hearth/store/db"
)

const greetingBanner = `
  _   _                 _   _
 | | | | ___  __ _ _ __| |_| |__
 | |_| |/ _ \/ _` + "`" + ` | '__| __| '_ \
 |  _  |  __/ (_| | |  | |_| | | |
 |_| |_|\___|\__,_|_|   \__|_| |_|
`

var (
	instanceProfile *profile.Profile

	rootCmd = &cobra.Command{
		Use:   "hearth",
		Short: "A household assistant that turns plain language into calendar, reminder, shopping, and task actions",
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile = &profile.Profile{
				Mode:    viper.GetString("mode"),
				Addr:    viper.GetString("addr"),
				Port:    viper.GetInt("port"),
				Data:    viper.GetString("data"),
				Driver:  viper.GetString("driver"),
				DSN:     viper.GetString("dsn"),
				Version: "0.3.1",
			}
			instanceProfile.FromEnv()
			if err := instanceProfile.Validate(); err != nil {
				slog.Error("invalid configuration", "error", err)
				os.Exit(1)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			dbDriver, err := db.NewDBDriver(instanceProfile)
			if err != nil {
				slog.Error("failed to create db driver", "error", err)
				os.Exit(1)
			}

			storeInstance := store.New(dbDriver, instanceProfile)
			if err := storeInstance.Migrate(ctx); err != nil {
				slog.Error("failed to migrate database", "error", err)
				os.Exit(1)
			}

			s, err := server.NewServer(ctx, instanceProfile, storeInstance)
			if err != nil {
				slog.Error("failed to create server", "error", err)
				os.Exit(1)
			}

			fmt.Print(greetingBanner, "\n")
			fmt.Printf("Version %s, mode %s, listening on %s:%d\n",
				instanceProfile.Version, instanceProfile.Mode, instanceProfile.Addr, instanceProfile.Port)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return s.Start(gctx)
			})
			g.Go(func() error {
				sigs := make(chan os.Signal, 1)
				signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
				select {
				case sig := <-sigs:
					slog.Info("received signal, shutting down", "signal", sig.String())
				case <-gctx.Done():
				}
				s.Shutdown(context.Background())
				cancel()
				return nil
			})

			if err := g.Wait(); err != nil {
				slog.Error("server exited", "error", err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("hearth")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
