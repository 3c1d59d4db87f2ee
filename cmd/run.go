package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mcasset/extract"
)

// CLI are the cli parameters for the mcextract binary
type CLI struct {
	Hashed  hashedCmd  `cmd:"" help:"Extract hashed assets (e.g. from .minecraft/assets/)."`
	Jar     jarCmd     `cmd:"" help:"Extract non-hashed assets, or data, from a version jar (or zip) file."`
	Version versionCmd `cmd:"" help:"Extract a version's container and, for --assets, its hashed assets."`

	Output         string `short:"o" default:"." type:"existingdir" help:"The directory into which to extract."`
	IgnoreTopLevel bool   `help:"Place contents directly into the output directory instead of below assets/ or data/ folders."`
	Verbose        bool   `short:"v" optional:"" help:"Verbose logging."`
}

// Selection is the assets/data choice shared by the jar and version
// subcommands.
type Selection struct {
	Assets bool `help:"Extract the assets folder. Can be combined with --data."`
	Data   bool `help:"Extract the data folder. Can be combined with --assets."`
}

func (s Selection) Validate() error {
	if !s.Assets && !s.Data {
		return fmt.Errorf("at least one of --assets or --data must be set")
	}
	return nil
}

type hashedCmd struct {
	AssetsDir string `arg:"" optional:"" type:"existingdir" help:"The assets directory holding indexes/ and objects/. Defaults to the platform's game directory."`
	Index     string `short:"i" placeholder:"FILE|VERSION" help:"The index file to use: a file path, or a version name (e.g. 24 for indexes/24.json). Defaults to the last file in indexes/."`
}

func (c *hashedCmd) Run(app *appContext) error {
	opts := app.opts
	if c.Index != "" {
		opts = append(opts, extract.WithIndex(extract.ParseIndexSelector(c.Index)))
	}
	return extract.ExtractHashed(app.ctx, c.AssetsDir, app.output, extract.NewConfig(opts...))
}

type jarCmd struct {
	File      string `arg:"" type:"existingfile" help:"The jar or zip file to extract from."`
	Selection `embed:""`
}

func (c *jarCmd) Run(app *appContext) error {
	opts := append(app.opts,
		extract.WithAssets(c.Assets),
		extract.WithData(c.Data),
	)
	return extract.ExtractArchive(app.ctx, c.File, app.output, extract.NewConfig(opts...))
}

type versionCmd struct {
	Version      string `arg:"" help:"The version directory, as a path or as a name below the versions root (e.g. 1.20.1). The jar and manifest inside must match the directory name."`
	HashedAssets string `type:"existingdir" placeholder:"DIRECTORY" help:"The assets directory to find hashed assets in. Defaults to the platform's game directory."`
	Selection    `embed:""`
}

func (c *versionCmd) Run(app *appContext) error {
	opts := append(app.opts,
		extract.WithAssets(c.Assets),
		extract.WithData(c.Data),
		extract.WithHashedAssetsDir(c.HashedAssets),
	)
	return extract.ExtractVersion(app.ctx, c.Version, app.output, extract.NewConfig(opts...))
}

// appContext carries the shared flags and config options into the
// subcommand Run methods.
type appContext struct {
	ctx    context.Context
	output string
	opts   []extract.ConfigOption
}

// Run is the entrypoint into mcextract as a cli tool
func Run(version, commit, date string) {
	ctx := context.Background()
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Description(fmt.Sprintf("Extracts game assets from hashed object stores and version containers.\n\n%s (%s), commit %s, built at %s", "mcextract", version, commit, date)),
		kong.UsageOnError(),
	)

	// check for verbose output
	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	app := &appContext{
		ctx:    ctx,
		output: cli.Output,
		opts: []extract.ConfigOption{
			extract.WithIgnoreTopLevel(cli.IgnoreTopLevel),
			extract.WithLogger(logger),
			extract.WithProgress(progressLine(os.Stdout)),
			extract.WithTelemetryHook(summaryLine(os.Stdout)),
		},
	}

	if err := kctx.Run(app); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

// progressLine renders an in-place "Extracting i/N" line, rewritten on
// every event so the cursor does not crawl down the terminal.
func progressLine(w io.Writer) extract.ProgressFunc {
	line := color.New(color.FgCyan)
	return func(index, total int) {
		fmt.Fprint(w, "\r")
		line.Fprintf(w, "Extracting %d/%d", index, total)
	}
}

// summaryLine prints one final line per extraction pass, independent of
// how many per-item warnings occurred.
func summaryLine(w io.Writer) extract.TelemetryHook {
	done := color.New(color.FgGreen)
	warned := color.New(color.FgYellow)
	return func(_ context.Context, td *extract.TelemetryData) {
		fmt.Fprint(w, "\r")
		done.Fprintf(w, "%s: extracted %d files, %d dirs in %s", td.ExtractedType, td.ExtractedFiles, td.ExtractedDirs, td.ExtractionDuration)
		if td.Warnings > 0 {
			warned.Fprintf(w, " (%d warnings)", td.Warnings)
		}
		fmt.Fprintln(w)
	}
}
