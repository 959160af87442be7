package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/neboloop/nayru/internal/config"
	"github.com/neboloop/nayru/internal/controller"
	"github.com/neboloop/nayru/internal/httpserver"
	"github.com/neboloop/nayru/internal/logging"
)

// ServeCmd starts the daemon: the synthesis engine bound to an HTTP surface.
func ServeCmd() *cobra.Command {
	var watchConfig bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the nayru daemon",
		Long:  `Start the nayru daemon: the synthesis engine bound to its HTTP surface.`,
		Run: func(cmd *cobra.Command, args []string) {
			runServe(watchConfig)
		},
	}

	cmd.Flags().BoolVar(&watchConfig, "watch-config", cfgFile != "", "hot-reload voice/speed/synth-url from --config")
	return cmd
}

func runServe(watchConfig bool) {
	cfg := loadedConfig
	cfg.Host = host
	cfg.Port = port
	cfg.Voice = voice
	cfg.SynthURL = synthURL
	cfg.Speed = speed

	ctrl := controller.New(cfg.EngineConfig())
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := httpserver.New(addr, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if watchConfig && cfgFile != "" {
		w, err := config.NewWatcher(cfgFile)
		if err != nil {
			logging.Errorf("config watcher: %v", err)
		} else {
			w.OnChange(func(c config.Config) {
				logging.Infof("config: hot-reloaded voice=%s speed=%v", c.Voice, c.Speed)
				ctrl.SetConfig(controller.ConfigPatch{Voice: c.Voice, Speed: c.Speed, SynthURL: c.SynthURL})
			})
			if err := w.Watch(ctx); err != nil {
				logging.Errorf("config watcher: %v", err)
			}
			defer w.Stop()
		}
	}

	printStartupBanner(addr)

	// The server goroutine and the signal-wait goroutine race to cancel ctx;
	// errgroup collects whichever error (if any) ends the group first.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			fmt.Println("\nnayru: shutting down...")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mnayru: server error: %v\033[0m\n", err)
		os.Exit(1)
	}
	fmt.Println("\033[32mnayru stopped.\033[0m")
}

func printStartupBanner(addr string) {
	fmt.Println()
	fmt.Println("\033[1;32m  ╭─────────────────────────────────────╮\033[0m")
	fmt.Println("\033[1;32m  │      \033[1;37mnayru is listening\033[1;32m            │\033[0m")
	fmt.Println("\033[1;32m  ╰─────────────────────────────────────╯\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1;36m→\033[0m http://%s\n", addr)
	fmt.Println()
	fmt.Println("  \033[2mPress Ctrl+C to stop\033[0m")
	fmt.Println()
}
