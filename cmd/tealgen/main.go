package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/broady/tealgen"
	"github.com/broady/tealgen/sink"
	"github.com/cockroachdb/errors"
)

type CLI struct {
	Config  string `help:"Project config file." default:"tealgen.toml" type:"path"`
	Verbose bool   `help:"Log debug output." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Render  RenderCmd  `cmd:"" help:"Render a snapshot into a Teal declaration file."`
	Check   CheckCmd   `cmd:"" help:"Decode and render a snapshot without writing output."`
}

// Globals are passed to every command's Run.
type Globals struct {
	Logger *slog.Logger
	Stdout io.Writer
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintln(g.Stdout, Version())
	return nil
}

// ModuleFlags override the values read from the config file.
type ModuleFlags struct {
	Module  string `help:"Module name." short:"m"`
	Local   bool   `help:"Declare the module record as local."`
	OutDir  string `help:"Output directory. Output goes to stdout when unset." short:"o" name:"out-dir"`
	OutFile string `help:"Output file path relative to the output directory." name:"out-file"`
}

func (f ModuleFlags) apply(cfg *tealgen.Config) {
	if f.Module != "" {
		cfg.ModuleName = f.Module
	}
	if f.Local {
		cfg.Local = true
	}
	if f.OutDir != "" {
		cfg.OutDir = f.OutDir
	}
	if f.OutFile != "" {
		cfg.OutFile = f.OutFile
	}
}

type RenderCmd struct {
	Snapshot string `arg:"" help:"Snapshot JSON file." type:"existingfile"`
	ModuleFlags `embed:""`
}

func (c *RenderCmd) Run(cli *CLI, g *Globals) error {
	cfg, err := loadConfig(cli.Config, c.ModuleFlags)
	if err != nil {
		return err
	}
	out, err := renderFile(c.Snapshot, cfg)
	if err != nil {
		return err
	}

	var s sink.OutputSink = sink.NewWriterSink(g.Stdout)
	if cfg.OutDir != "" {
		s = sink.NewFilesystemSink(cfg.OutDir)
	}
	path := cfg.OutFile
	if path == "" {
		path = cfg.ModuleName + tealgen.DeclExtension
	}
	if err := s.WriteFile(context.Background(), path, []byte(out)); err != nil {
		return err
	}
	g.Logger.Info("rendered declaration file",
		slog.String("module", cfg.ModuleName),
		slog.String("out_dir", cfg.OutDir),
		slog.String("path", path),
	)
	return nil
}

type CheckCmd struct {
	Snapshot string `arg:"" help:"Snapshot JSON file." type:"existingfile"`
	ModuleFlags `embed:""`
}

func (c *CheckCmd) Run(cli *CLI, g *Globals) error {
	cfg, err := loadConfig(cli.Config, c.ModuleFlags)
	if err != nil {
		return err
	}
	out, err := renderFile(c.Snapshot, cfg)
	if err != nil {
		return err
	}
	g.Logger.Debug("snapshot ok", slog.String("snapshot", c.Snapshot), slog.Int("bytes", len(out)))
	fmt.Fprintf(g.Stdout, "%s: ok\n", c.Snapshot)
	return nil
}

// loadConfig reads the config file, if present, and applies flag overrides.
func loadConfig(path string, flags ModuleFlags) (tealgen.Config, error) {
	var cfg tealgen.Config
	if _, err := os.Stat(path); err == nil {
		cfg, err = tealgen.LoadConfigFile(path)
		if err != nil {
			return cfg, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, errors.Wrap(err, "stat config")
	}
	flags.apply(&cfg)
	return cfg, nil
}

func renderFile(snapshot string, cfg tealgen.Config) (string, error) {
	data, err := os.ReadFile(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "read snapshot")
	}
	out, err := tealgen.RenderSnapshot(data, cfg)
	if err != nil {
		return "", errors.Wrapf(err, "render %s", snapshot)
	}
	return out, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tealgen"),
		kong.Description("Render Teal declaration files from tealgen snapshots."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	g := &Globals{Logger: newLogger(stderr, cli.Verbose), Stdout: stdout}
	return ctx.Run(cli, g)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tealgen: %v\n", err)
		os.Exit(1)
	}
}
