package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/poojapathak0/vyra/pkg/driver"
	"github.com/poojapathak0/vyra/pkg/graph"
	"github.com/poojapathak0/vyra/pkg/interpreter"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

var (
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "write the graph JSON to this file instead of stdout",
	}

	runCommand = cli.Command{
		Name:      "run",
		Usage:     "Execute a program or exported graph document",
		ArgsUsage: "<program.yaml|program.json|graph.json>",
		Action:    runProgram,
	}
	parseCommand = cli.Command{
		Name:      "parse",
		Usage:     "Lower a program into its logic graph and print it as JSON",
		ArgsUsage: "<program>",
		Flags:     []cli.Flag{outputFlag},
		Action:    parseProgram,
	}
	checkCommand = cli.Command{
		Name:      "check",
		Usage:     "Build and validate a program's logic graph without running it",
		ArgsUsage: "<program>",
		Action:    checkProgram,
	}
)

var errMissingTarget = errors.New("expected a program path")

func loadTarget(ctx *cli.Context) (*driver.Source, error) {
	if ctx.NArg() != 1 {
		return nil, errMissingTarget
	}
	loader, err := driver.NewLoader(driver.DefaultCacheSize, log.Root())
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx.Args().First())
}

func runProgram(ctx *cli.Context) error {
	src, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	opts, err := configFrom(ctx).Options()
	if err != nil {
		return err
	}
	opts.Stdout = ctx.App.Writer
	if stdin, ok := ctx.App.Metadata["stdin"].(io.Reader); ok {
		opts.Stdin = stdin
	}
	opts.Logger = log.Root()

	result, err := interpreter.New(opts).Execute(src.Graph)
	if err != nil {
		return err
	}
	if !runtime.IsNull(result) {
		if _, err := fmt.Fprintf(ctx.App.Writer, "Return value: %s\n", runtime.ToString(result)); err != nil {
			return err
		}
	}
	return nil
}

func parseProgram(ctx *cli.Context) error {
	src, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	path := ctx.String("output")
	if path == "" {
		return src.Graph.WriteJSON(ctx.App.Writer)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := src.Graph.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("Wrote logic graph", "path", path, "nodes", len(src.Graph.Nodes), "edges", len(src.Graph.Edges))
	return nil
}

func checkProgram(ctx *cli.Context) error {
	src, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	if err := graph.Validate(src.Graph); err != nil {
		return fmt.Errorf("%s: %w", src.Path, err)
	}
	functions := 0
	for _, node := range src.Graph.Nodes {
		if node.Kind == graph.KindFunctionDef {
			functions++
		}
	}
	_, err = fmt.Fprintf(ctx.App.Writer, "ok: %d nodes, %d edges, %d functions\n", len(src.Graph.Nodes), len(src.Graph.Edges), functions)
	return err
}
