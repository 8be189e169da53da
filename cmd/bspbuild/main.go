// Command bspbuild ingests a .VTX/.IDX mesh pair, builds a BSP tree
// over it, and writes a tree.txt dump alongside console diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/callykitten99/BSP/internal/bsp"
	"github.com/callykitten99/BSP/internal/config"
	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/ingest"
	"github.com/callykitten99/BSP/internal/pools"
)

type cliArgs struct {
	mesh       string
	configPath string
	outPath    string
	verbose    int
	verify     bool
	json       bool
}

func parseArgs(args []string) (cliArgs, error) {
	var a cliArgs

	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				return a, fmt.Errorf("-o requires a path argument")
			}
			i++
			a.outPath = args[i]
		case "-c", "--config":
			if i+1 >= len(args) {
				return a, fmt.Errorf("%s requires a path argument", args[i])
			}
			i++
			a.configPath = args[i]
		case "-v":
			a.verbose = 1
		case "-vv":
			a.verbose = 2
		case "--verify":
			a.verify = true
		case "--json":
			a.json = true
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 1 {
		return a, fmt.Errorf("usage: bspbuild [-c config.json] [-o path] [-v|-vv] [--verify] [--json] <mesh-name>")
	}
	a.mesh = positional[0]
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.Load(a.configPath)
	if a.outPath != "" {
		cfg.OutputPath = a.outPath
	}
	if a.verbose > 0 {
		cfg.Verbosity = a.verbose
	}
	if cfg.ClipEpsilon > 0 {
		geom.Eps = cfg.ClipEpsilon
	}

	logf := func(format string, args ...any) {
		if cfg.Verbosity >= 1 {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	p, err := ingest.Load(a.mesh, logf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingestion failed: %v\n", err)
		os.Exit(1)
	}

	if err := p.MakePlanes(logf); err != nil {
		fmt.Fprintf(os.Stderr, "plane construction failed: %v\n", err)
		os.Exit(1)
	}

	initialFaces := p.NumFaces()
	initialVerts := p.NumVerts()

	builder := bsp.NewBuilder(p)
	stats, err := builder.Begin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Total BSP swaps: %d.\nTotal recursion levels: %d.\nTotal new polys: %d.\n",
		stats.Swaps, stats.RDepth, stats.Clips)

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open %s: %v\n", cfg.OutputPath, err)
		os.Exit(1)
	}
	if a.json {
		err = builder.Tree.WriteTreeJSON(out, stats.Root)
	} else {
		err = builder.Tree.WriteTree(out, stats.Root)
	}
	closeErr := out.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not write %s: %v\n", cfg.OutputPath, err)
		os.Exit(1)
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "could not close %s: %v\n", cfg.OutputPath, closeErr)
		os.Exit(1)
	}

	if a.verify {
		violations := bsp.Verify(p, builder.Tree, stats.Root, stats.Clips, initialFaces, initialVerts)
		if len(violations) > 0 {
			for _, v := range violations {
				fmt.Fprintln(os.Stderr, v.Error())
			}
			os.Exit(1)
		}
		fmt.Println("verify: all invariants hold")
	}

	if p.NumFaces() > pools.MaxEntries || p.NumVerts() > pools.MaxEntries {
		fmt.Fprintln(os.Stderr, "warning: pool grew past the 16-bit index cap during reporting")
	}
}
