// latc expands lattice documents into physics models and exports the
// generated skins as STL meshes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lattice-sim/lattice/internal/d3"
	"github.com/lattice-sim/lattice/internal/logger"
	"github.com/lattice-sim/lattice/markup"
	"github.com/lattice-sim/lattice/model"
	"github.com/lattice-sim/lattice/render"
)

type config struct {
	Logging struct {
		Level   string            `yaml:"level"`
		Console bool              `yaml:"console"`
		File    logger.FileConfig `yaml:"file"`
	} `yaml:"logging"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
}

func defaultConfig() config {
	var cfg config
	cfg.Logging.Level = "info"
	cfg.Logging.Console = true
	cfg.Output.Dir = "."
	return cfg
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		cmdCheck(args)
	case "build":
		cmdBuild(args)
	case "skin":
		cmdSkin(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`latc - lattice document compiler

Usage:
  latc <command> [options]

Commands:
  check <doc.xml>   Parse and validate a document
  build <doc.xml>   Expand the document and report entity counts (-json)
  skin  <doc.xml>   Expand the document and write skins as STL files

Options:
  -config <file>    YAML configuration (logging, output directory)

Examples:
  latc check cloth.xml
  latc build -config latc.yaml rope.xml
  latc skin -v cloth.xml`)
}

func setup(fs *flag.FlagSet, args []string) (config, *zap.Logger) {
	cfgPath := fs.String("config", "", "YAML configuration file")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Console)
}

func parseDocument(path string) *markup.Document {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	doc, err := markup.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	return doc
}

func buildModel(path string, log *zap.Logger) *model.Model {
	doc := parseDocument(path)
	m, err := markup.NewReader(log).Build(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	return m
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	_, log := setup(fs, args)
	defer log.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: latc check <doc.xml>")
		os.Exit(1)
	}
	parseDocument(fs.Arg(0))
	fmt.Printf("%s: OK\n", fs.Arg(0))
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print the entity summary as JSON")
	_, log := setup(fs, args)
	defer log.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: latc build [-json] <doc.xml>")
		os.Exit(1)
	}
	m := buildModel(fs.Arg(0), log)

	if *asJSON {
		out, err := json.MarshalIndent(summarize(m), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}
	s := summarize(m)
	fmt.Printf("Bodies:     %d\n", s.Bodies)
	fmt.Printf("Joints:     %d\n", s.Joints)
	fmt.Printf("Geoms:      %d\n", s.Geoms)
	fmt.Printf("Sites:      %d\n", s.Sites)
	fmt.Printf("Tendons:    %d\n", s.Tendons)
	fmt.Printf("Equalities: %d\n", s.Equalities)
	fmt.Printf("Excludes:   %d\n", s.Excludes)
	fmt.Printf("Skins:      %d\n", s.Skins)
}

type summary struct {
	Bodies     int      `json:"bodies"`
	Joints     int      `json:"joints"`
	Geoms      int      `json:"geoms"`
	Sites      int      `json:"sites"`
	Tendons    int      `json:"tendons"`
	Equalities int      `json:"equalities"`
	Excludes   int      `json:"excludes"`
	Skins      int      `json:"skins"`
	SkinNames  []string `json:"skin_names,omitempty"`
}

func summarize(m *model.Model) summary {
	s := summary{
		Bodies:     len(m.Bodies()),
		Joints:     len(m.Joints()),
		Geoms:      len(m.Geoms()),
		Sites:      len(m.Sites()),
		Tendons:    len(m.Tendons),
		Equalities: len(m.Equalities),
		Excludes:   len(m.Excludes),
		Skins:      len(m.Skins),
	}
	for _, skin := range m.Skins {
		s.SkinNames = append(s.SkinNames, skin.Name)
	}
	return s
}

func cmdSkin(args []string) {
	fs := flag.NewFlagSet("skin", flag.ExitOnError)
	cfg, log := setup(fs, args)
	defer log.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: latc skin <doc.xml>")
		os.Exit(1)
	}
	m := buildModel(fs.Arg(0), log)

	if len(m.Skins) == 0 {
		fmt.Fprintln(os.Stderr, "No skins in document")
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}
	for _, skin := range m.Skins {
		tris := render.SkinMesh(m, skin)
		out := filepath.Join(cfg.Output.Dir, skin.Name+".stl")
		if err := render.CreateSTL(out, tris); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote: %s (%d triangles)\n", out, len(tris))
		if len(tris) > 0 {
			pts := make(d3.Set, 0, 3*len(tris))
			for _, tri := range tris {
				pts = append(pts, tri[0], tri[1], tri[2])
			}
			lo, hi := pts.Min(), pts.Max()
			fmt.Printf("  bounds: [%g %g %g] to [%g %g %g]\n",
				lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
		}
	}
}
