package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/bearprof/bearprof"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// ProfileCommander is the interface for profile execution.
type ProfileCommander interface {
	Run(ctx context.Context, opts bearprof.ProfileOptions) (bearprof.ProfileResult, error)
}

// CheckCommander defines the interface for check operations.
type CheckCommander interface {
	Run(ctx context.Context) (bearprof.CheckResult, error)
}

// InitCommander defines the interface for init operations.
type InitCommander interface {
	Run(ctx context.Context, dir string, opts bearprof.InitOptions) (bearprof.InitResult, error)
}

// ListCommander defines the interface for list operations.
type ListCommander interface {
	Run(ctx context.Context) (bearprof.ListResult, error)
}

type options struct {
	profileCommander   ProfileCommander // nil = use default
	checkCommander     CheckCommander   // nil = use default
	initCommander      InitCommander    // nil = use default
	listCommander      ListCommander    // nil = use default
	commandIDGenerator func() string    // nil = use bearprof.GenerateCommandID
}

// Option configures newRootCmd.
type Option func(*options)

// WithProfileCommander sets the ProfileCommander instance for testing.
func WithProfileCommander(cmd ProfileCommander) Option {
	return func(o *options) {
		o.profileCommander = cmd
	}
}

// WithCheckCommander sets the CheckCommander instance for testing.
func WithCheckCommander(cmd CheckCommander) Option {
	return func(o *options) {
		o.checkCommander = cmd
	}
}

// WithInitCommander sets the InitCommander instance for testing.
func WithInitCommander(cmd InitCommander) Option {
	return func(o *options) {
		o.initCommander = cmd
	}
}

// WithListCommander sets the ListCommander instance for testing.
func WithListCommander(cmd ListCommander) Option {
	return func(o *options) {
		o.listCommander = cmd
	}
}

// WithCommandIDGenerator sets the command ID generator for testing.
func WithCommandIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.commandIDGenerator = gen
	}
}

func resolveDirectory(dirFlag, baseCwd string) (string, error) {
	if dirFlag == "" {
		return baseCwd, nil
	}

	var resolved string
	if !filepath.IsAbs(dirFlag) {
		resolved = filepath.Join(baseCwd, dirFlag)
	} else {
		resolved = dirFlag
	}

	resolved, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("cannot change to '%s': %w", dirFlag, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot change to '%s': not a directory", dirFlag)
	}

	return resolved, nil
}

// createLogger creates a logger based on verbosity level.
// Returns a nop logger for verbosity < 2, or a CLI handler logger for -vv.
func createLogger(w io.Writer, verbosity int, idGen func() string) *slog.Logger {
	if verbosity < 2 {
		return bearprof.NewNopLogger()
	}
	handler := bearprof.NewCLIHandler(w, bearprof.VerbosityToLevel(verbosity))
	handlerWithID := handler.WithAttrs([]slog.Attr{
		bearprof.LogAttrKeyCmdID.Attr(idGen()),
	})
	return slog.New(handlerWithID)
}

func newRootCmd(opts ...Option) *cobra.Command {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	idGenerator := func() func() string {
		if o.commandIDGenerator != nil {
			return o.commandIDGenerator
		}
		return bearprof.GenerateCommandID
	}

	var (
		cfg       *bearprof.Config
		cwd       string
		dirFlag   string
		colorFlag string
	)

	rootCmd := &cobra.Command{
		Use:   "bearprof",
		Short: "Benchmark the overhead of runtime type-checking decorators",
		Long: `Benchmark the runtime overhead of Python type-checking decorator
libraries (beartype, typeguard) by timing small decorated and undecorated
snippets under python's statistical micro-timer.

Invoked with no arguments, runs the full battery: a version header, library
version lines, then six timed variants per scenario.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			baseCwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			cwd, err = resolveDirectory(dirFlag, baseCwd)
			if err != nil {
				return err
			}

			// Set color mode based on flag
			bearprof.SetColorMode(bearprof.ColorMode(colorFlag))

			result, err := bearprof.LoadConfig(cwd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			for _, w := range result.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			cfg = result.Config
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			filters, _ := cmd.Flags().GetStringArray("filter")

			log := createLogger(cmd.ErrOrStderr(), verbosity, idGenerator())

			var profileCmd ProfileCommander
			if o.profileCommander != nil {
				profileCmd = o.profileCommander
			} else {
				profileCmd = bearprof.NewDefaultProfileCommand(cfg, log, cmd.OutOrStdout())
			}

			_, err := profileCmd.Run(cmd.Context(), bearprof.ProfileOptions{
				Filters: filters,
			})
			return err
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the profiling environment is usable",
		Long: `Check that the Python interpreter exists on the search path, that the
external timer is importable, and that every configured decorator library
imports cleanly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			verbose := verbosity >= 1
			quiet, _ := cmd.Flags().GetBool("quiet")

			log := createLogger(cmd.ErrOrStderr(), verbosity, idGenerator())

			var checkCommand CheckCommander
			if o.checkCommander != nil {
				checkCommand = o.checkCommander
			} else {
				python := bearprof.NewPythonRunner(cfg.Python, bearprof.WithPythonLogger(log))
				checkCommand = bearprof.NewCheckCommand(python, cfg)
			}
			result, err := checkCommand.Run(cmd.Context())
			if err != nil {
				return err
			}

			formatted := result.Format(bearprof.CheckFormatOptions{
				Verbose:      verbose,
				Quiet:        quiet,
				ColorEnabled: bearprof.IsColorEnabled(),
			})
			fmt.Fprint(cmd.OutOrStdout(), formatted.Stdout)

			if result.ErrorCount() > 0 {
				return fmt.Errorf("%d check(s) failed", result.ErrorCount())
			}
			return nil
		},
	}
	checkCmd.Flags().BoolP("quiet", "q", false, "Only show errors")
	rootCmd.AddCommand(checkCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize bearprof configuration",
		Long:  `Create a .bearprof/settings.toml configuration file in the current directory.`,
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Override parent's PersistentPreRunE to skip config loading
			// since init creates the config file
			baseCwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			cwd, err = resolveDirectory(dirFlag, baseCwd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			var initCommand InitCommander
			if o.initCommander != nil {
				initCommand = o.initCommander
			} else {
				initCommand = bearprof.NewDefaultInitCommand()
			}
			result, err := initCommand.Run(cmd.Context(), cwd, bearprof.InitOptions{Force: force})
			if err != nil {
				return err
			}

			formatted := result.Format(bearprof.InitFormatOptions{})
			fmt.Fprint(cmd.OutOrStdout(), formatted.Stdout)
			return nil
		},
	}
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing configuration file")
	rootCmd.AddCommand(initCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured scenarios and libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")

			var listCommand ListCommander
			if o.listCommander != nil {
				listCommand = o.listCommander
			} else {
				listCommand = bearprof.NewListCommand(cfg)
			}
			result, err := listCommand.Run(cmd.Context())
			if err != nil {
				return err
			}

			formatted := result.Format(bearprof.ListFormatOptions{Quiet: quiet})
			fmt.Fprint(cmd.OutOrStdout(), formatted.Stdout)
			return nil
		},
	}
	listCmd.Flags().BoolP("quiet", "q", false, "Output only scenario labels")
	rootCmd.AddCommand(listCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
			fmt.Fprintf(w, "version:\t%s\n", version)
			fmt.Fprintf(w, "commit:\t%s\n", commit)
			fmt.Fprintf(w, "date:\t%s\n", date)
			w.Flush()
		},
	}
	rootCmd.AddCommand(versionCmd)

	// Register flags
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "directory", "C", "", "Run as if bearprof was started in <path>")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Enable verbose output (-v for verbose, -vv for debug)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color output: auto, always, never")
	rootCmd.Flags().StringArrayP("filter", "F", nil, "Scenario label glob(s) to run (default: all)")

	return rootCmd
}

var rootCmd = newRootCmd()

func main() {
	os.Exit(run())
}

func run() int {
	// CPU profiling support via environment variable
	if profFile := os.Getenv("BEARPROF_CPUPROFILE"); profFile != "" {
		f, err := os.Create(profFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bearprof: failed to create CPU profile: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "bearprof: failed to start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "bearprof:", err)
		return 1
	}
	return 0
}
