package cmd

import (
	"citizens-link/cmd/server"
	"citizens-link/config"
	"citizens-link/internal/global/database"
	"citizens-link/internal/leaderboard"
	"citizens-link/internal/store"
	"citizens-link/tools"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "citizens-link",
	Short: "Citizens-Link activity points backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		server.Init()
		server.Run()
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Auto-migrate activity_types and activity_reports through gorm",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Init()
		if err := database.Init(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated (%s)\n", config.Get().Database.Driver)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write the current ranking to an xlsx file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Init()
		server.InitStore()
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		f, err := leaderboard.Workbook(ctx, store.Default)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash for a staff password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := tools.PasswordHash(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.Path, "config", "c", config.Path, "config file path")
	rootCmd.AddCommand(serveCmd, migrateCmd, exportCmd, hashPasswordCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
