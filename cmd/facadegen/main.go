// facadegen subdivides building facades along their markup and exports
// the result as a textured Wavefront mesh.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/facadegen/internal/catalog"
	"github.com/Faultbox/facadegen/internal/config"
	"github.com/Faultbox/facadegen/internal/export"
	"github.com/Faultbox/facadegen/internal/logger"
	"github.com/Faultbox/facadegen/internal/material"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		cmdBuild(args)
	case "catalog", "ls":
		cmdCatalog(args)
	case "params":
		cmdParams(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`facadegen - facade markup to textured mesh

Usage:
  facadegen <command> [options]

Commands:
  build [options] <markup.yaml>   Export buildings as OBJ/MTL with a material sidecar
  catalog <catalog-file>          List the texture bundles of a catalog
  params <catalog-file>           Show overlay parameters per facade texture
  config [options]                Print the effective config, or save it

Build options:
  -config <file>     Config file (default ./facadegen.yaml)
  -o <dir>           Output directory
  -catalog <file>    Facade texture catalog
  -level-detail      Lay levels out item by item
  -watch             Re-export whenever a catalog file changes
  -debug             Enable debug logging

Config options:
  -save              Save to the user config directory
  -save-to <file>    Save to a specific file

Examples:
  facadegen build -o out terrace.yaml
  facadegen build -catalog textures/facade.toml -watch terrace.yaml
  facadegen catalog textures/facade.yaml
  facadegen config -o out -level-detail -save`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: facadegen build [options] <markup.yaml>")
		os.Exit(1)
	}
	markupPath := fs.Arg(0)

	cfg, err := config.Load(flags)
	if err != nil {
		fatalf("%v", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := export.New(cfg, logger.Named("export"))
	cat, err := exporter.LoadCatalog()
	if err != nil {
		logger.Sync()
		fatalf("%v", err)
	}

	res, err := exporter.Export(ctx, markupPath, cat)
	if err != nil {
		logger.Sync()
		fatalf("%v", err)
	}
	printResult(res)

	if !cfg.Catalog.Watch {
		return
	}

	watcher, err := catalog.NewWatcher(logger.Named("catalog"), cfg.Catalog.FacadePath, cfg.Catalog.CladdingPath)
	if err != nil {
		fatalf("watch catalog: %v", err)
	}
	watcher.OnReload = func(cat *catalog.Catalog) {
		res, err := exporter.Export(ctx, markupPath, cat)
		if err != nil {
			logger.Error("export failed", zap.Error(err))
			return
		}
		logger.Info("re-exported after catalog change", zap.String("session", res.Session))
		printResult(res)
	}

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", strings.Join(watcher.Paths(), ", "))
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fatalf("%v", err)
	}
}

func printResult(res *export.Result) {
	fmt.Printf("Session:   %s\n", res.Session)
	fmt.Printf("Mesh:      %s\n", res.OBJPath)
	fmt.Printf("Materials: %s (%d)\n", res.Manifest, res.Materials)
	fmt.Printf("Buildings: %d (%d facades skipped)\n", res.Buildings, res.Skipped)
	fmt.Printf("Geometry:  %d vertices, %d faces\n", res.Vertices, res.Faces)
	fmt.Printf("Bounds:    (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		res.Bounds.Min.X, res.Bounds.Min.Y, res.Bounds.Min.Z,
		res.Bounds.Max.X, res.Bounds.Max.Y, res.Bounds.Max.Z)
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	save := fs.Bool("save", false, "Save to the user config directory")
	saveTo := fs.String("save-to", "", "Save to a specific file")
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fatalf("%v", err)
	}

	switch {
	case *saveTo != "":
		if err := cfg.SaveTo(*saveTo); err != nil {
			fatalf("save config: %v", err)
		}
		fmt.Printf("Saved %s\n", *saveTo)
	case *save:
		if err := cfg.Save(); err != nil {
			fatalf("save config: %v", err)
		}
		fmt.Printf("Saved %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fatalf("%v", err)
		}
		os.Stdout.Write(data)
	}
}

func cmdCatalog(args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	style := fs.String("style", "", "Only show bundles of this style")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: facadegen catalog [-style name] <catalog-file>")
		os.Exit(1)
	}

	cat, err := catalog.Load(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Catalog: %s\n\n", cat.Path)
	fmt.Println("Facade bundles:")
	for _, b := range cat.Facades.Bundles() {
		if *style != "" && b.Style != *style {
			continue
		}
		signature := b.Signature
		if signature == "" {
			signature = "(any)"
		}
		fmt.Printf("  %-10s %-12s %-24s %d\n", b.Style, b.Part, signature, len(b.Textures))
		for _, ti := range b.Textures {
			fmt.Printf("      %s\n", ti.Name)
		}
	}

	fmt.Println()
	fmt.Printf("Cladding: %s\n", strings.Join(cat.Cladding.Materials(), ", "))
}

func cmdParams(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: facadegen params <catalog-file>")
		os.Exit(1)
	}

	cat, err := catalog.Load(args[0])
	if err != nil {
		fatalf("%v", err)
	}

	var textures []*catalog.TextureInfo
	for _, b := range cat.Facades.Bundles() {
		textures = append(textures, b.Textures...)
	}
	sort.Slice(textures, func(i, j int) bool {
		return textures[i].Name < textures[j].Name
	})

	fmt.Printf("%-32s %8s %6s %8s %8s %8s\n", "TEXTURE", "WIDTH_M", "TILES", "TILE_U_M", "LEVEL_M", "HEIGHT_M")
	for _, ti := range textures {
		p, err := material.NewOverlayParams(ti)
		if err != nil {
			fmt.Printf("%-32s %v\n", ti.Name, err)
			continue
		}
		fmt.Printf("%-32s %8.3f %3dx%-2d %8.3f %8.3f %8.3f\n", ti.Name,
			p.TextureWidthM, p.NumTilesU, p.NumTilesV,
			p.TileSizeUDefaultM, p.TextureLevelHeightM, p.TextureHeightM)
	}
}
