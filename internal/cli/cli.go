package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/closest-arcade/internal/config"
	"github.com/pfrederiksen/closest-arcade/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitChanged = 2
)

// Version is reported by --version
var Version = "dev"

// ExitCodeError carries a non-zero exit status that is not a failure
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

type options struct {
	envFile string
	format  string
	verbose bool
	dryRun  bool

	out    io.Writer
	lookup config.LookupFunc
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{out: os.Stdout})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "closest-arcade",
		Short: "Watch a locator page for the arcade closest to you",
		Long: `A tool that periodically checks an arcade locator page, finds the arcade
closest to a fixed location, remembers it across runs and sends a notification
when a different arcade becomes the closest one.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "Print notifications instead of sending them")

	cmd.AddCommand(newRunCmd(opts), newCheckCmd(opts), newShowCmd(opts))

	return cmd
}

// setup validates flags, loads configuration and installs the logger
func (o *options) setup() (*config.Config, OutputFormat, error) {
	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON {
		return nil, "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}

	var (
		cfg *config.Config
		err error
	)
	if o.lookup != nil {
		cfg, err = config.LoadFromLookup(o.lookup)
	} else {
		cfg, err = config.Load(o.envFile)
	}
	if err != nil {
		return nil, "", err
	}

	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}
	logger.Setup(level, cfg.LogFormat)

	return cfg, format, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	err := NewRootCmd().Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitError
}
