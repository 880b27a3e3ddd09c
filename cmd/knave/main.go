package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/opal-lang/knave/pkgs/config"
	"github.com/opal-lang/knave/pkgs/driver"
	knaveerrors "github.com/opal-lang/knave/pkgs/errors"
	"github.com/opal-lang/knave/pkgs/format"
)

// Exit code constants
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// version is set at build time with -ldflags "-X main.version=v1.2.3"
var version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	rootCmd := newRootCmd(&cfg, stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		FormatError(stderr, err, format.ShouldUseColor(cfg.NoColor, fdOf(stderr)))
		if knaveerrors.IsErrorType(err, knaveerrors.ErrMissingInput) {
			_, _ = fmt.Fprint(stderr, rootCmd.UsageString())
		}
		return ExitFailure
	}
	return ExitSuccess
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "knave [flags] <file.knv>",
		Short:         "Print the tokens of a knave source file",
		Version:       displayVersion(version),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return knaveerrors.NewMissingInputError()
			}
			return runScan(cmd.Context(), *cfg, args[0], stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Flag defaults come from the environment, so a set flag overrides it.
	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.Format, "format", "f", cfg.Format, "Output format: text, json, yaml or cbor")
	flags.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	flags.BoolVar(&cfg.LegacyCurlyPair, "legacy-curly-pair", cfg.LegacyCurlyPair, "Report {} as a closing curly bracket")
	flags.BoolVar(&cfg.Stats, "stats", cfg.Stats, "Print a scan summary to stderr")
	flags.BoolVar(&cfg.Digest, "digest", cfg.Digest, "Print a BLAKE2b digest of the token stream to stderr")
	flags.BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "Rescan the file whenever it changes")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Trace every token on stderr")

	return rootCmd
}

func runScan(ctx context.Context, cfg config.Config, path string, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	d := driver.New(cfg, stdout, stderr,
		driver.WithColor(format.ShouldUseColor(cfg.NoColor, fdOf(stdout))))

	if !cfg.Watch {
		_, err := d.Run(path)
		return err
	}

	useColor := format.ShouldUseColor(cfg.NoColor, fdOf(stderr))
	return d.Watch(ctx, path, func(result *driver.Result, err error) {
		if err != nil {
			FormatError(stderr, err, useColor)
			return
		}
		_, _ = fmt.Fprintf(stderr, "%s\n", Colorize(fmt.Sprintf("-- scanned %s (%d tokens)", result.Path, result.Tokens), format.ColorGray, useColor))
	})
}

// displayVersion normalizes a build version to canonical semver
func displayVersion(v string) string {
	if !semver.IsValid(v) {
		return "v0.0.0-" + v
	}
	return semver.Canonical(v)
}

// fdOf returns the descriptor behind w, or an invalid one for non-files
func fdOf(w io.Writer) uintptr {
	if f, ok := w.(*os.File); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}
