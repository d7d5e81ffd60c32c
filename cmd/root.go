// Package cmd implements the CLI command structure for aitasks.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nibzard/aitasks/internal/assist"
	"github.com/nibzard/aitasks/internal/config"
	"github.com/nibzard/aitasks/internal/logging"
	"github.com/nibzard/aitasks/internal/shell"
	"github.com/nibzard/aitasks/internal/ui"
	"github.com/nibzard/aitasks/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// keywordColumnWidth limits the keyword column of the categories table.
const keywordColumnWidth = 60

// Run executes the aitasks CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("aitasks", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "run" as default
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, remainingArgs)
	case "classify":
		return classifyCommand(cfg, remainingArgs, stdout)
	case "suggest":
		return suggestCommand(cfg, remainingArgs, stdout)
	case "categories":
		return categoriesCommand(cfg, remainingArgs, stdout)
	case "config":
		return configCommand(cfg, remainingArgs, stdout)
	case "doctor":
		return doctorCommand(cfg, remainingArgs, stdout)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs, stdout)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand launches the interactive task list.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	session, err := logging.NewSessionLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("creating session log: %w", err)
	}
	defer session.Close()

	logger := logging.New(session.Writer(), logging.OptionsFromConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller))
	logger.Info("starting aitasks", "version", Version, "run_id", session.RunID, "config_files", cfg.Files)
	for _, w := range cfg.Warnings {
		logger.Warn("config", "warning", w)
	}

	engine := assist.NewEngine(cfg.AssistOptions())
	sh := shell.New(engine.Classifier, engine.Suggester,
		shell.WithLogger(logger),
		shell.WithDismissOnPick(cfg.Suggestions.DismissOnPick),
	)

	if err := ui.RunTUI(ctx, cfg, sh, logger); err != nil {
		if ctx.Err() != nil {
			logger.Info("interrupted")
		} else {
			logger.Error("ui failed", "err", err)
		}
		return err
	}
	return nil
}

// classification is the JSON shape printed by classify -json.
type classification struct {
	Text        string   `json:"text"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Suggestions []string `json:"suggestions"`
}

// classifyCommand prints the category of the given text.
func classifyCommand(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("aitasks classify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "Print category and suggestions as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return errors.New("classify requires text")
	}

	engine := assist.NewEngine(cfg.AssistOptions())
	category, suggestions := engine.Analyze(text)
	if *asJSON {
		if suggestions == nil {
			suggestions = []string{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(classification{
			Text:        text,
			Category:    category.Name,
			Color:       category.Color,
			Suggestions: suggestions,
		})
	}
	fmt.Fprintf(out, "%s\t%s\n", category.Name, category.Color)
	return nil
}

// suggestCommand prints the suggestions for the given text, one per line.
func suggestCommand(cfg *config.Config, args []string, out io.Writer) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errors.New("suggest requires text")
	}
	engine := assist.NewEngine(cfg.AssistOptions())
	for _, s := range engine.Suggest(text) {
		fmt.Fprintln(out, s)
	}
	return nil
}

// categoriesCommand prints the classification table in priority order.
func categoriesCommand(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	engine := assist.NewEngine(cfg.AssistOptions())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCOLOR\tKEYWORDS")
	for _, row := range engine.Keywords() {
		words := utils.Truncate(strings.Join(row.Keywords, ", "), keywordColumnWidth)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Category.Name, row.Category.Color, words)
	}
	fallback := engine.Classify("")
	fmt.Fprintf(tw, "%s\t%s\t%s\n", fallback.Name, fallback.Color, "(nessuna corrispondenza)")
	return tw.Flush()
}

// configCommand prints the effective configuration or an example file.
func configCommand(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("aitasks config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	example := fs.Bool("example", false, "Print an annotated example configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(out, config.ExampleConfig())
		return nil
	}

	if len(cfg.Files) == 0 {
		fmt.Fprintln(out, "# No config files found; showing defaults and overrides.")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(out, "# Loaded: %s\n", f)
	}
	for _, field := range []string{"log_dir", "log_level", "log_format", "mouse", "alt_screen", "suggestions.dismiss_on_pick", "keywords", "triggers"} {
		if src := cfg.Source(field); src != config.SourceDefault {
			fmt.Fprintf(out, "# %s: from %s\n", field, src)
		}
	}
	fmt.Fprintln(out)
	return cfg.WriteTOML(out)
}

// doctorCommand checks configuration, tables, log directory and terminal.
func doctorCommand(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("aitasks doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(out, "AI Tasks Doctor")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)

	allOK := true

	// Check config
	fmt.Fprintln(out, "Config:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(out, "  ✅ No config files (using defaults)")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(out, "  ✅ Loaded %s\n", f)
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintf(out, "  ⚠️  %s\n", w)
	}
	if result := config.Validate(cfg); result.Valid {
		fmt.Fprintln(out, "  ✅ Valid")
	} else {
		fmt.Fprintln(out, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "     - %v\n", e)
		}
		allOK = false
	}
	fmt.Fprintln(out)

	// Check keyword tables
	engine := assist.NewEngine(cfg.AssistOptions())
	fmt.Fprintln(out, "Keyword tables:")
	for _, row := range engine.Keywords() {
		if len(row.Keywords) == 0 {
			fmt.Fprintf(out, "  ⚠️  %s: no keywords, never selected\n", row.Category.Name)
			continue
		}
		fmt.Fprintf(out, "  ✅ %s: %d keywords (source: %s)\n", row.Category.Name, len(row.Keywords), cfg.Source("keywords"))
		if *verbose {
			fmt.Fprintf(out, "     %s\n", strings.Join(row.Keywords, ", "))
		}
	}
	triggers := engine.Triggers()
	fmt.Fprintf(out, "  ✅ Triggers: %d (source: %s)\n", len(triggers), cfg.Source("triggers"))
	if *verbose {
		for _, tr := range triggers {
			fmt.Fprintf(out, "     %s -> %s\n", strings.Join(tr.Keywords, "/"), strings.Join(tr.Suggestions, ", "))
		}
	}
	fmt.Fprintln(out)

	// Check log directory
	logDir, err := logging.LogDir(cfg.LogDir)
	if err != nil {
		fmt.Fprintf(out, "Log directory: %s\n", cfg.LogDir)
		fmt.Fprintf(out, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(out, "Log directory: %s\n", logDir)
		if info, err := os.Stat(logDir); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(out, "  ⚠️  Not found (will be created on run)")
			} else {
				fmt.Fprintf(out, "  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if !info.IsDir() {
			fmt.Fprintln(out, "  ❌ Error: path is not a directory")
			allOK = false
		} else {
			fmt.Fprintln(out, "  ✅ OK")
			if *verbose {
				logs, _ := logging.ListLogs(logDir)
				fmt.Fprintf(out, "  Sessions: %d\n", len(logs))
			}
		}
	}
	fmt.Fprintln(out)

	// Check terminal
	fmt.Fprintln(out, "Terminal:")
	if ui.IsTTY(os.Stdout) {
		fmt.Fprintln(out, "  ✅ stdout is a terminal")
	} else {
		fmt.Fprintln(out, "  ⚠️  stdout is not a terminal (run needs one)")
	}
	fmt.Fprintf(out, "  Mouse: %v, alternate screen: %v\n", cfg.Mouse, cfg.AltScreen)
	fmt.Fprintln(out)

	// Overall status
	if allOK {
		fmt.Fprintln(out, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(out, "⚠️  Some checks failed. aitasks may not function correctly.")
	return errors.New("doctor checks failed")
}

// tailCommand prints, follows or lists session logs.
func tailCommand(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("aitasks tail", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List session logs, newest first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.LogDir(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	if *list {
		logs, err := logging.ListLogs(logDir)
		if err != nil {
			return fmt.Errorf("listing logs: %w", err)
		}
		if len(logs) == 0 {
			fmt.Fprintln(out, "No log files found.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tMODIFIED\tSIZE")
		for _, l := range logs {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", l.RunID, l.ModTime.Format("2006-01-02 15:04:05"), l.Size)
		}
		return tw.Flush()
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(out, "No log files found.")
		return nil
	}

	fmt.Fprintf(out, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(out, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(out)

	return logging.TailLog(ctx, out, logPath, *n, *follow)
}

func versionCommand(out io.Writer) error {
	fmt.Fprintf(out, "aitasks version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "AI Tasks - a to-do list that sorts and expands what you write")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  aitasks [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run               Launch the task list (default command)")
	fmt.Fprintln(w, "  classify <text>   Print the category of text")
	fmt.Fprintln(w, "  suggest <text>    Print suggested subtasks for text")
	fmt.Fprintln(w, "  categories        Show categories and their keywords")
	fmt.Fprintln(w, "  config            Print the effective configuration")
	fmt.Fprintln(w, "  doctor            Check configuration, log directory and terminal")
	fmt.Fprintln(w, "  tail              Tail the latest session log")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Classify Options:")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print category and suggestions as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an annotated example configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options:")
	fmt.Fprintln(w, "  -v    Verbose output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List session logs, newest first")
}
