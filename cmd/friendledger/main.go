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

	"github.com/mmynk/friendledger/internal/config"
	"github.com/mmynk/friendledger/pkg/logging"
)

var (
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
)

func newRootCmd() *cobra.Command {
	v = config.NewViper()

	rootCmd := &cobra.Command{
		Use:   "friendledger",
		Short: "Track shared expenses between friends and who owes whom",
		Long: `friendledger records expenses paid by one friend on behalf of others
and derives the pairwise balances needed to settle up.

Run "friendledger serve" to expose the ledger over Connect, or use the
friends, expenses and balances commands to work with the local database.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./friendledger.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = v.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(friendsCmd())
	rootCmd.AddCommand(expensesCmd())
	rootCmd.AddCommand(balancesCmd())
	rootCmd.AddCommand(categoriesCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.Debug("Configuration loaded", "database", cfg.Database.Path, "addr", cfg.Server.Addr)
	return nil
}
