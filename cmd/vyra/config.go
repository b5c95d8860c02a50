package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/poojapathak0/vyra/pkg/driver"
)

var dumpConfigCommand = cli.Command{
	Name:   "dumpconfig",
	Usage:  "Show the effective configuration in TOML",
	Action: dumpConfig,
}

// resolveConfig starts from the defaults, overlays the --config file and
// then any flag given on the command line.
func resolveConfig(ctx *cli.Context) (driver.Config, error) {
	cfg := driver.DefaultConfig
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := driver.LoadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.GlobalIsSet(execModeFlag.Name) {
		cfg.ExecMode = ctx.GlobalString(execModeFlag.Name)
	}
	if v := ctx.GlobalInt(verbosityFlag.Name); v >= 0 {
		cfg.Verbosity = v
	}
	if ctx.GlobalIsSet(seedFlag.Name) {
		cfg.RandomSeed = ctx.GlobalInt64(seedFlag.Name)
	}
	if ctx.GlobalIsSet(maxIterationsFlag.Name) {
		cfg.MaxIterations = ctx.GlobalInt(maxIterationsFlag.Name)
	}
	if ctx.GlobalIsSet(maxCallDepthFlag.Name) {
		cfg.MaxCallDepth = ctx.GlobalInt(maxCallDepthFlag.Name)
	}
	if _, err := cfg.Options(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func configFrom(ctx *cli.Context) driver.Config {
	if cfg, ok := ctx.App.Metadata["config"].(driver.Config); ok {
		return cfg
	}
	return driver.DefaultConfig
}

// setupLogging installs a terminal handler on w, coloured when w is a
// terminal.
func setupLogging(w io.Writer, verbosity int) {
	usecolor := false
	output := w
	if f, ok := w.(*os.File); ok {
		usecolor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
		if usecolor {
			output = colorable.NewColorable(f)
		}
	}
	glogger := log.NewGlogHandler(log.StreamHandler(output, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(verbosity))
	log.Root().SetHandler(glogger)
}

func dumpConfig(ctx *cli.Context) error {
	out, err := configFrom(ctx).WriteTOML()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(ctx.App.Writer, string(out)); err != nil {
		return err
	}
	return nil
}
