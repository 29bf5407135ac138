package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jebrand/jebman/internal/catalog"
	"github.com/jebrand/jebman/internal/config"
	"github.com/jebrand/jebman/internal/log"
	"github.com/jebrand/jebman/internal/prompt"
	"github.com/jebrand/jebman/internal/server"
	"github.com/jebrand/jebman/internal/store"
	"github.com/jebrand/jebman/internal/store/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const greetingBanner = `
     ██ ███████ ██████  ███    ███  █████  ███    ██
     ██ ██      ██   ██ ████  ████ ██   ██ ████   ██
     ██ █████   ██████  ██ ████ ██ ███████ ██ ██  ██
██   ██ ██      ██   ██ ██  ██  ██ ██   ██ ██  ██ ██
 █████  ███████ ██████  ██      ██ ██   ██ ██   ████
`

// app holds the wired components shared by the commands.
type app struct {
	opts  *config.Options
	store *store.Store
	ctrl  *catalog.Controller
}

var (
	configFile  string
	libraryPath string
	useGUI      bool

	rootCmd = &cobra.Command{
		Use:   "jebman",
		Short: "jebman manages a personal e-book library",
		Run: func(cmd *cobra.Command, args []string) {
			a, cleanup, err := setup()
			if err != nil {
				log.Error("Startup failed", zap.Error(err))
				return
			}
			defer cleanup()

			if useGUI {
				log.Warn("GUI frontend is not bundled with this build, starting the prompt instead")
			}

			cmd.Print(greetingBanner)
			if err := prompt.New(a.ctrl, os.Stdin, os.Stdout).Run(); err != nil {
				log.Error("Prompt failed", zap.Error(err))
			}
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			a, cleanup, err := setup()
			if err != nil {
				log.Error("Startup failed", zap.Error(err))
				return
			}
			defer cleanup()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			httpServer := server.StartServer(ctx, a.opts, a.store, a.ctrl)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP server shutdown failed", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&libraryPath, "path", "p", "", "library directory, overrides the config file")
	rootCmd.Flags().BoolVarP(&useGUI, "gui", "g", false, "start the graphical frontend")
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config, opens the database and wires the controller. The
// returned cleanup closes the store and flushes the log.
func setup() (*app, func(), error) {
	opts, err := config.Load(configFile, libraryPath)
	if err != nil {
		return nil, nil, err
	}
	log.Setup(opts)

	database, err := db.Open(opts.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(context.Background()); err != nil {
		database.Close()
		return nil, nil, err
	}

	s := store.NewStore(database)
	if err := s.Ping(); err != nil {
		s.Close()
		return nil, nil, err
	}

	ctrl, err := catalog.NewController(opts, s)
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	cleanup := func() {
		s.Close()
		log.Logger.Sync()
	}
	return &app{opts: opts, store: s, ctrl: ctrl}, cleanup, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
