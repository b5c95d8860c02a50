// Command vyra runs Vyra program documents and inspects their logic graphs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"
)

const cliToolVersion = "0.1.0-dev"

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML or YAML configuration file",
	}
	execModeFlag = cli.StringFlag{
		Name:  "exec-mode",
		Usage: "how function bodies run: graph or tree",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: -1,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for random builtins (0 seeds from the clock)",
	}
	maxIterationsFlag = cli.IntFlag{
		Name:  "max-iterations",
		Usage: "abort after this many executed steps",
	}
	maxCallDepthFlag = cli.IntFlag{
		Name:  "max-call-depth",
		Usage: "abort when user function calls nest deeper than this",
	}
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	if err := app.Run(args); err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "vyra"
	app.Usage = "run natural-English Vyra programs through their logic graph"
	app.Version = cliToolVersion
	app.Writer = stdout
	app.ErrWriter = stderr
	app.HideVersion = true
	app.Flags = []cli.Flag{
		configFileFlag,
		execModeFlag,
		verbosityFlag,
		seedFlag,
		maxIterationsFlag,
		maxCallDepthFlag,
	}
	app.Metadata = map[string]interface{}{"stdin": stdin}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := resolveConfig(ctx)
		if err != nil {
			return err
		}
		app.Metadata["config"] = cfg
		setupLogging(stderr, cfg.Verbosity)
		return nil
	}
	app.Commands = []cli.Command{
		runCommand,
		parseCommand,
		graphCommand,
		checkCommand,
		dumpConfigCommand,
		{
			Name:  "version",
			Usage: "Print the version",
			Action: func(ctx *cli.Context) error {
				_, err := fmt.Fprintln(ctx.App.Writer, "vyra", cliToolVersion)
				return err
			},
		},
	}
	return app
}
