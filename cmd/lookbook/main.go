// Command lookbook runs the catalog browser, the management UI, or a data
// consistency check over the configured collections.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meur/lookbook/internal/api"
	"github.com/meur/lookbook/internal/catalog"
	"github.com/meur/lookbook/internal/config"
	"github.com/meur/lookbook/internal/logging"
	"github.com/meur/lookbook/internal/manager"
	"github.com/meur/lookbook/internal/render"
	"github.com/meur/lookbook/internal/storage"
)

var (
	cfgFile string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "lookbook",
	Short: "Browse and edit clothing catalogs extracted from seasonal lookbooks",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.NewConsole()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := storage.New(cfg, log)
		renderer, err := render.New()
		if err != nil {
			return err
		}
		return serveHTTP(log, cfg.ServeAddr, api.New(store, renderer, log))
	},
}

var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Run the management UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.NewConsole()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := storage.New(cfg, log)
		srv, err := manager.New(store, log)
		if err != nil {
			return err
		}
		return serveHTTP(log, cfg.ManageAddr, srv)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-check every collection's index against its page items",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.NewConsole()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := storage.New(cfg, log)

		broken := 0
		for _, c := range cfg.Collections {
			index, items, err := store.Load(c.Name)
			if err != nil {
				return fmt.Errorf("load %s: %w", c.Name, err)
			}
			issues := catalog.Validate(index, items)
			if len(issues) == 0 {
				fmt.Printf("%s: OK\n", c.Name)
				continue
			}
			broken++
			fmt.Printf("%s:\n", c.Name)
			for _, issue := range issues {
				fmt.Printf("   %s\n", issue)
			}
		}
		if broken > 0 {
			return fmt.Errorf("%d collection(s) have inconsistencies", broken)
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.Default(dataDir), nil
}

// serveHTTP runs handler on addr until interrupted, then shuts down
// gracefully.
func serveHTTP(log zerolog.Logger, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	select {
	case err := <-errc:
		return err
	case <-stop:
	}

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "data", "data directory for the built-in config")
	rootCmd.AddCommand(serveCmd, manageCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
