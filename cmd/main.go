package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	log "github.com/dsoprea/go-logging"
	"github.com/spf13/cobra"

	"github.com/ha1tch/homesoft/cmd/extract"
	"github.com/ha1tch/homesoft/pkg/diskimg"
	"github.com/ha1tch/homesoft/pkg/titles"
)

const version = "1.3"

// Log level is taken from the environment since the tool has no flags
const logLevelEnv = "HOMESOFT_LOG_LEVEL"

var (
	mainLogger  = log.NewLogger("homesoft")
	adapterOnce sync.Once
)

func main() {
	level := configureLogging(os.Getenv(logLevelEnv))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(titles.DefaultFile, extract.DefaultExtractOptions())
	if err := cmd.ExecuteContext(ctx); err != nil {
		if level == log.LevelNameDebug {
			fmt.Fprintln(os.Stderr, log.Wrap(err).ErrorStack())
		}
		stop()
		os.Exit(1)
	}
}

// configureLogging routes library logging to the console and returns the
// level in effect
func configureLogging(level string) string {
	switch level {
	case log.LevelNameDebug, log.LevelNameInfo, log.LevelNameWarning, log.LevelNameError:
	default:
		level = log.LevelNameWarning
	}

	adapterOnce.Do(func() {
		log.AddAdapter("console", log.NewConsoleLogAdapter())
	})

	scp := log.NewStaticConfigurationProvider()
	scp.SetDefaultAdapterName("console")
	scp.SetLevelName(level)
	log.LoadConfiguration(scp)

	return level
}

func newRootCommand(titleFile string, opts *extract.ExtractOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "homesoft",
		Short: "Extract programs from double-density ATR disk images",
		Long: `Reads the title list from ` + titles.DefaultFile + ` in the working directory and
extracts every executable from the GAMESnnn.ATR images it names.

Disks whose directory agrees with the title list are written as <title>.xex.
Disks that disagree are written under "` + opts.DiagnosticDir + `/<image>/" with their
on-disk names for manual review.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), titleFile, opts)
		},
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, titleFile string, opts *extract.ExtractOptions) error {
	if !opts.Quiet {
		fmt.Fprintf(stdout, "Homesoft Extractor v.%s\n", version)
	}

	disks, err := titles.LoadFromFile(titleFile)
	if err != nil {
		return fmt.Errorf("failed to load title list: %w", err)
	}
	for _, d := range disks {
		var buf bytes.Buffer
		d.Dump(&buf)
		mainLogger.Debugf(nil, "title list entry:\n%s", buf.String())
	}

	x := extract.New(opts)
	x.SetOutput(stdout, stderr)

	results, err := x.Run(ctx, disks)
	if err != nil {
		return err
	}

	var ok, notOK int
	for _, res := range results {
		if res.Skip != extract.NotSkipped {
			continue
		}
		if res.Verdict == diskimg.WellFormed {
			ok++
		} else {
			notOK++
		}
	}

	if !opts.Quiet {
		fmt.Fprintf(stdout, "%d disk(s) OK, %d disk(s) NOT OK\n", ok, notOK)
	}

	return nil
}
