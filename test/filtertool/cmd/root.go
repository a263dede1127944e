package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zostay/go-mimestream/stream"
)

// EnvPrefix is prepended to the name of every flag to find the environment
// variable that sets its default, e.g. MIMESTREAM_LOG_LEVEL.
const EnvPrefix = "MIMESTREAM"

var (
	rootCmd = &cobra.Command{
		Use:               "filtertool",
		Short:             "Tools for exercising MIME stream filters",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	logger = slog.New(slog.DiscardHandler)
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, or error")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringSliceP("filter", "f", nil, "filters to apply, in order (see \"filtertool filters\")")
	_ = viper.BindPFlag("filter", rootCmd.PersistentFlags().Lookup("filter"))

	rootCmd.PersistentFlags().Int64("start", 0, "offset in each file to start from")
	_ = viper.BindPFlag("start", rootCmd.PersistentFlags().Lookup("start"))

	rootCmd.PersistentFlags().Int64("end", stream.Unbounded, "offset in each file to stop at, -1 for the end")
	_ = viper.BindPFlag("end", rootCmd.PersistentFlags().Lookup("end"))
}

func initConfig() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func setupLogging(_ *cobra.Command, _ []string) error {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(viper.GetString("log-level")),
	})
	logger = slog.New(h)
	return nil
}

// Execute runs the filtertool command line.
func Execute() error {
	return rootCmd.Execute()
}
