package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/dictcoder/coder"
	"github.com/wippyai/dictcoder/tree"
)

type config struct {
	inFile string
	expr   string
	opts   coder.Options
	check  bool
}

func main() {
	var (
		inFile      = flag.String("in", "", "Path to YAML or JSON input file")
		check       = flag.Bool("check", false, "Verify that the document survives a round trip")
		exprSrc     = flag.String("expr", "", "Expression to evaluate against the encoded container")
		dateName    = flag.String("date", coder.DateSecondsSinceEpoch.String(), "Date strategy: seconds, millis or rfc3339")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log engine debug output")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: dictcoder -in <file.yaml> [-check] [-expr EXPR] [-date seconds|millis|rfc3339]")
		fmt.Fprintln(os.Stderr, "       dictcoder -in <file.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		coder.SetLogger(logger)
	}

	strategy, err := coder.ParseDateStrategy(*dateName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := config{
		inFile: *inFile,
		expr:   *exprSrc,
		check:  *check,
		opts: coder.Options{
			DateStrategy: strategy,
			UserInfo:     map[string]any{"source": *inFile},
		},
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	in, root, err := loadTree(cfg)
	if err != nil {
		return err
	}

	out, err := tree.ToContainer(root, cfg.opts)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	p := newPrinter(os.Stdout)
	p.header(fmt.Sprintf("Container: %s (%d keys, date strategy %s)", cfg.inFile, len(out), cfg.opts.DateStrategy))
	if err := p.yaml(out); err != nil {
		return err
	}

	if cfg.check {
		p.header("Round trip")
		if err := p.check(in, out); err != nil {
			return err
		}
	}

	if cfg.expr != "" {
		p.header("Expression: " + cfg.expr)
		result, err := evaluate(cfg.expr, out, root)
		if err != nil {
			return fmt.Errorf("expr: %w", err)
		}
		if err := p.yaml(result); err != nil {
			return err
		}
	}
	return nil
}

// loadTree reads the input file and decodes it into a tree.
func loadTree(cfg config) (map[string]any, *tree.Node, error) {
	data, err := os.ReadFile(cfg.inFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}
	in, err := load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}
	root, err := tree.FromContainer(in, cfg.opts)
	if err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	return in, root, nil
}
