package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"yashubustudio/clusterviz/clusterviz"
	"yashubustudio/clusterviz/render"
)

type cliOptions struct {
	configPath string
	inputPath  string
	hasClass   bool
	policy     string
	assigns    assignList
	algorithm  string
	clusters   string
	dimension  int
	outputPath string
	plotPath   string
	stdout     bool
}

// assignList collects repeated -assign COL:RAW=VALUE flags.
type assignList []string

func (a *assignList) String() string { return strings.Join(*a, ",") }

func (a *assignList) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("clusterviz-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("clusterviz-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.inputPath, "input", "", "Comma-delimited .txt/.csv file to cluster")
	flag.BoolVar(&opts.hasClass, "classes", false, "Treat the last column as class values")
	flag.StringVar(&opts.policy, "policy", "", "Non-numeric handling: zero, map, exclude-rows or exclude-columns")
	flag.Var(&opts.assigns, "assign", "Manual mapping COL:RAW=VALUE (1-based column, repeatable)")
	flag.StringVar(&opts.algorithm, "algorithm", "", "Clustering algorithm name")
	flag.StringVar(&opts.clusters, "clusters", "", "Cluster count for algorithms that require one")
	flag.IntVar(&opts.dimension, "dim", 2, "Display dimensionality: 2 or 3")
	flag.StringVar(&opts.outputPath, "output", "", "File to write the clustered data (.txt/.csv)")
	flag.StringVar(&opts.plotPath, "plot", "", "File to write the scatter plot (.png/.jpg/.html)")
	flag.BoolVar(&opts.stdout, "stdout", false, "Print the clustered data to STDOUT")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input FILE --algorithm NAME [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.algorithm = strings.TrimSpace(opts.algorithm)
	opts.clusters = strings.TrimSpace(opts.clusters)

	if opts.inputPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --input file")
	}
	if opts.algorithm == "" {
		flag.Usage()
		return opts, errors.New("missing required --algorithm name")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := clusterviz.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	session := clusterviz.NewSession(logger)
	if err := session.LoadFile(opts.inputPath); err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	if opts.hasClass {
		if err := session.SetClassFlag(true); err != nil {
			return fmt.Errorf("split classes: %w", err)
		}
	}

	if opts.policy != "" {
		policy, err := parsePolicy(opts.policy)
		if err != nil {
			return err
		}
		session.SetPolicy(policy)
	}
	for _, spec := range opts.assigns {
		col, raw, value, err := parseAssign(spec)
		if err != nil {
			return err
		}
		if err := session.AssignValue(col, raw, value); err != nil {
			return fmt.Errorf("assign %s: %w", spec, err)
		}
	}

	algo, err := resolveAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}
	session.SetAlgorithm(algo)
	session.SetClusterCount(opts.clusters)
	if !session.SetDimension(opts.dimension) {
		return fmt.Errorf("dimension %d is not available for this input", opts.dimension)
	}

	res, err := session.RunDisplay(0)
	if err != nil {
		return fmt.Errorf("run clustering: %w", err)
	}

	if opts.stdout || (opts.outputPath == "" && opts.plotPath == "") {
		fmt.Print(clusterviz.FormatResult(res))
	}
	if opts.outputPath != "" {
		if err := clusterviz.WriteResult(opts.outputPath, res); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if opts.plotPath != "" {
		if err := writePlot(opts.plotPath, res, cfg); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
	}
	return nil
}

func parsePolicy(name string) (clusterviz.Policy, error) {
	switch strings.ToLower(name) {
	case "zero":
		return clusterviz.PolicyZeroFill, nil
	case "map":
		return clusterviz.PolicyManualMap, nil
	case "exclude-rows":
		return clusterviz.PolicyExcludeRows, nil
	case "exclude-columns":
		return clusterviz.PolicyExcludeColumns, nil
	default:
		return clusterviz.PolicyNone, fmt.Errorf("unknown policy %q", name)
	}
}

// parseAssign splits COL:RAW=VALUE into its parts. The raw text may be
// empty, which addresses blank cells.
func parseAssign(spec string) (col int, raw, value string, err error) {
	head, value, ok := strings.Cut(spec, "=")
	if !ok {
		return 0, "", "", fmt.Errorf("malformed --assign %q, want COL:RAW=VALUE", spec)
	}
	colText, raw, ok := strings.Cut(head, ":")
	if !ok {
		return 0, "", "", fmt.Errorf("malformed --assign %q, want COL:RAW=VALUE", spec)
	}
	if _, err := fmt.Sscanf(colText, "%d", &col); err != nil || col < 1 {
		return 0, "", "", fmt.Errorf("malformed --assign column %q", colText)
	}
	return col - 1, raw, value, nil
}

func resolveAlgorithm(name string) (clusterviz.Algorithm, error) {
	for _, algo := range clusterviz.Algorithms() {
		if strings.EqualFold(string(algo), name) {
			return algo, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q", name)
}

func writePlot(path string, res *clusterviz.DisplayResult, cfg clusterviz.Config) error {
	sc := &render.Scatter{
		Title:  string(res.Algorithm),
		Points: res.Projection,
		Labels: res.Labels,
		Width:  cfg.PlotWidth,
		Height: cfg.PlotHeight,
	}
	if strings.EqualFold(filepath.Ext(path), ".html") {
		return sc.SaveHTML(path)
	}
	return sc.Save(path)
}
