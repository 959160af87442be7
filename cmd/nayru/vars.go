package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neboloop/nayru/internal/config"
)

// Shared CLI flags, set by the root command and read by its subcommands.
var (
	cfgFile  string
	host     string
	port     int
	voice    string
	synthURL string
	speed    float64

	// loadedConfig holds the embedded defaults loaded by main, the source of
	// flag defaults. The --config file is not read into it; only serve's
	// config watcher reads that file.
	loadedConfig config.Config
)

// SetupRootCmd configures the root command with all subcommands and flags,
// seeded from cfg (the engine/server defaults loaded by main).
func SetupRootCmd(cfg config.Config) *cobra.Command {
	loadedConfig = cfg

	rootCmd := &cobra.Command{
		Use:   "nayru",
		Short: "nayru - streaming text-to-speech daemon and client",
		Long: `nayru turns markdown or plain text into spoken audio, streaming
sentence-by-sentence from a remote synthesizer to local playback.

Run 'nayru serve' to start the daemon, then drive it with 'nayru speak',
'nayru stop', 'nayru skip', 'nayru pause', 'nayru resume', and
'nayru status'.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file watched by 'serve --watch-config' for voice/speed/synth-url changes")
	rootCmd.PersistentFlags().StringVar(&host, "host", cfg.Host, "daemon host")
	rootCmd.PersistentFlags().IntVar(&port, "port", cfg.Port, "daemon port")
	rootCmd.PersistentFlags().StringVar(&voice, "voice", cfg.Voice, "voice id passed to the synthesizer")
	rootCmd.PersistentFlags().StringVar(&synthURL, "synth-url", cfg.SynthURL, "base URL of the speech synthesis server")
	rootCmd.PersistentFlags().Float64Var(&speed, "speed", cfg.Speed, "playback speed multiplier")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(SpeakCmd())
	rootCmd.AddCommand(StopCmd())
	rootCmd.AddCommand(SkipCmd())
	rootCmd.AddCommand(PauseCmd())
	rootCmd.AddCommand(ResumeCmd())
	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(ReadCmd())

	return rootCmd
}

// daemonAddr returns the host:port the client commands talk to.
func daemonAddr() string {
	return fmt.Sprintf("%s:%d", host, port)
}
