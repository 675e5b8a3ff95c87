// Command cfront tokenizes, parses and type-checks C source files and
// prints their diagnostics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/tinyrange/cfront/internal/config"
	"github.com/tinyrange/cfront/internal/driver"
)

var (
	configPath = flag.String("config", "", "Path to a cfront.yaml config file.")

	tokens = flag.Bool("tokens", false, "Print the token stream.")
	tree   = flag.Bool("ast", false, "Print the syntax tree.")
	il     = flag.Bool("il", false, "Print the instruction listing.")
	parse  = flag.Bool("parse", true, "Parse and type-check after tokenizing.")

	color  = flag.String("color", "auto", "Color diagnostics: auto, always or never.")
	werror = flag.Bool("Werror", false, "Fail on warnings.")

	version = flag.Bool("version", false, "Print the version and exit.")
	watch   = flag.Bool("watch", false, "Recompile files when they change.")

	showMetrics = flag.Bool("metrics", false, "Print pipeline metrics to stderr after the run.")
	metricsAddr = flag.String("metrics-addr", "", "Serve pipeline metrics over HTTP on this address.")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cfront: ")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cfront [flags] file.c...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *version {
		fmt.Println("cfront", config.Version)
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.FromFile(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if err := apply(cfg, set); err != nil {
		log.Fatal(err)
	}
	opts := options(cfg, isatty.IsTerminal(os.Stderr.Fd()))

	reg := newRegistry()
	if *metricsAddr != "" {
		go serve(*metricsAddr, reg)
	}

	if *watch {
		if err := watchFiles(flag.Args(), opts, os.Stdout, os.Stderr); err != nil {
			log.Fatal(err)
		}
		return
	}
	ok := compileAll(flag.Args(), opts, os.Stdout, os.Stderr)
	if *showMetrics {
		if err := printMetrics(os.Stderr, reg); err != nil {
			log.Print(err)
		}
	}
	if !ok {
		os.Exit(1)
	}
}

// apply copies the flags named in set over cfg.
func apply(cfg *config.Config, set map[string]bool) error {
	if set["tokens"] {
		cfg.Dump.Tokens = *tokens
	}
	if set["ast"] {
		cfg.Dump.AST = *tree
	}
	if set["il"] {
		cfg.Dump.IL = *il
	}
	if set["parse"] {
		cfg.Parse = parse
	}
	if set["color"] {
		cfg.Color = *color
	}
	if set["Werror"] {
		cfg.WarningsAsErrors = *werror
	}
	return cfg.Check(config.Version)
}

func options(cfg *config.Config, terminal bool) driver.Options {
	return driver.Options{
		Parse:            cfg.ShouldParse(),
		Tokens:           cfg.Dump.Tokens,
		AST:              cfg.Dump.AST,
		IL:               cfg.Dump.IL,
		Color:            cfg.UseColor(terminal),
		WarningsAsErrors: cfg.WarningsAsErrors,
	}
}

// compileAll compiles files concurrently and prints the results in argument
// order. It reports whether every file compiled.
func compileAll(files []string, opts driver.Options, out, errw io.Writer) bool {
	results := make([]*driver.Result, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			r, err := driver.CompileFile(file, opts)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	err := g.Wait()

	ok := err == nil
	for _, r := range results {
		if r == nil {
			continue
		}
		if perr := r.Print(out, errw); perr != nil {
			log.Print(perr)
			ok = false
		}
		ok = ok && r.OK()
	}
	if err != nil {
		log.Print(err)
	}
	return ok
}
