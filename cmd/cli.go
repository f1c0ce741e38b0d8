package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"patrol/internal/app"
	"patrol/internal/badge"
	"patrol/internal/config"
	"patrol/internal/model"
	"patrol/internal/progress"
	"patrol/internal/report"
	"patrol/internal/rules"
	"patrol/internal/tui"
	"patrol/internal/version"
)

// gateError marks a run that completed but tripped the --fail-on threshold.
// Callers exit 1 for a tripped gate and 2 for a hard failure.
type gateError struct {
	status model.OverallStatus
	failOn string
}

func (e *gateError) Error() string {
	return fmt.Sprintf("scan status %s meets fail-on threshold %q", e.status, e.failOn)
}

func IsGateFailure(err error) bool {
	var ge *gateError
	return errors.As(err, &ge)
}

func Execute(args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "scan":
		return runScan(args[1:])
	case "rules":
		return runRules(args[1:])
	case "badge":
		return runBadge(args[1:])
	case "version":
		fmt.Println("patrol", version.Version)
		return nil
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return usageError(fmt.Sprintf("unknown command %q", args[0]))
	}
}

func runScan(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(flag.CommandLine.Output())

	base := fs.String("base", cfg.Base, "Base revision to diff against (required)")
	head := fs.String("head", cfg.Head, "Head revision (default: working tree)")
	format := fs.String("format", defaultString(cfg.Format, "human"), "Output format: human|json|markdown|sarif")
	out := fs.String("out", cfg.Out, "Write the report to a file instead of stdout")
	failOn := fs.String("fail-on", cfg.FailOn, "Exit non-zero at this status: critical|warning (default: never)")
	rulesDir := fs.String("rules-dir", defaultString(cfg.RulesDir, defaultRulesDir()), "Custom rule groups directory")
	noCustom := fs.Bool("no-custom-rules", boolValue(cfg.NoCustomRules), "Run built-in rules only")
	enableTUI := fs.Bool("tui", false, "Enable interactive terminal UI")
	disableTUI := fs.Bool("no-tui", false, "Disable interactive terminal UI")
	verbose := fs.Bool("verbose", boolValue(cfg.Verbose), "Log pipeline stages to stderr")

	var onlyGroups, skipGroups, excludeDirs, excludeSuffixes listFlag
	fs.Var(&onlyGroups, "only-group", "Only evaluate specific rule group(s) (repeatable or comma-separated)")
	fs.Var(&skipGroups, "skip-group", "Skip specific rule group(s) (repeatable or comma-separated)")
	fs.Var(&excludeDirs, "exclude-dir", "Extra directory name(s) to exclude")
	fs.Var(&excludeSuffixes, "exclude-suffix", "Extra file suffix(es) to exclude")

	var positionalPath string
	parseArgs := args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		positionalPath = args[0]
		parseArgs = args[1:]
	}
	if err := fs.Parse(parseArgs); err != nil {
		return err
	}
	remaining := fs.Args()
	switch {
	case positionalPath == "" && len(remaining) == 1:
		positionalPath = remaining[0]
	case positionalPath == "" && len(remaining) == 0, positionalPath != "" && len(remaining) == 0:
		// valid
	default:
		return usageError("usage: patrol scan [path] --base <rev> [flags]")
	}

	if strings.TrimSpace(*base) == "" {
		return usageError("--base is required")
	}
	switch *format {
	case "human", "json", "markdown", "sarif":
	default:
		return usageError(fmt.Sprintf("unknown format %q", *format))
	}
	switch *failOn {
	case "", "critical", "warning":
	default:
		return usageError(fmt.Sprintf("--fail-on must be critical or warning, got %q", *failOn))
	}
	if *enableTUI && *disableTUI {
		return errors.New("cannot set both --tui and --no-tui")
	}

	opts := app.Options{
		Path:            positionalPath,
		Base:            *base,
		Head:            *head,
		RulesDir:        *rulesDir,
		NoCustomRules:   *noCustom,
		OnlyGroups:      onlyGroups,
		SkipGroups:      skipGroups,
		ExcludeDirs:     append(cfg.ExcludeDirs, excludeDirs...),
		ExcludeSuffixes: append(cfg.ExcludeSuffixes, excludeSuffixes...),
	}

	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd())
	useTUI := *enableTUI && !*disableTUI && stdoutTTY

	var rep model.Report
	if useTUI {
		events := make(chan progress.Event, 64)
		opts.Sink = progress.NewChannelSink(events)
		scanErr := make(chan error, 1)
		go func() {
			var err error
			rep, err = app.Scan(context.Background(), opts)
			scanErr <- err
			close(events)
		}()
		if err := tui.Run(tui.Options{Events: events}); err != nil {
			return err
		}
		if err := <-scanErr; err != nil {
			return err
		}
	} else {
		if *verbose {
			opts.Sink = progress.NewPlainSink(os.Stderr)
		}
		var err error
		rep, err = app.Scan(context.Background(), opts)
		if err != nil {
			return err
		}
	}

	if err := emitReport(rep, *format, *out, stdoutTTY && !useTUI); err != nil {
		return err
	}
	if useTUI {
		// The TUI already showed the summary; nothing else to print.
		if *out != "" {
			fmt.Println("report written to", *out)
		}
	}

	switch *failOn {
	case "critical":
		if rep.OverallStatus == model.StatusCritical {
			return &gateError{status: rep.OverallStatus, failOn: *failOn}
		}
	case "warning":
		if rep.OverallStatus == model.StatusCritical || rep.OverallStatus == model.StatusWarning {
			return &gateError{status: rep.OverallStatus, failOn: *failOn}
		}
	}
	return nil
}

func emitReport(rep model.Report, format, out string, color bool) error {
	if out != "" {
		switch format {
		case "json":
			return report.WriteJSON(out, rep)
		case "markdown":
			return report.WriteMarkdown(out, rep)
		case "sarif":
			return report.WriteSARIF(out, rep)
		default:
			return os.WriteFile(out, []byte(report.RenderHuman(rep, false)), 0o600)
		}
	}

	switch format {
	case "json":
		b, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(b))
	case "markdown":
		fmt.Print(report.RenderMarkdown(rep))
	case "sarif":
		content, err := report.RenderSARIF(rep)
		if err != nil {
			return err
		}
		fmt.Print(content)
	default:
		fmt.Print(report.RenderHuman(rep, color))
	}
	return nil
}

func runRules(args []string) error {
	if len(args) == 0 {
		return usageError("usage: patrol rules <list|validate> [flags]")
	}
	switch args[0] {
	case "list":
		return runRulesList(args[1:])
	case "validate":
		return runRulesValidate(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown rules subcommand %q", args[0]))
	}
}

func runRulesList(args []string) error {
	fs := flag.NewFlagSet("rules list", flag.ContinueOnError)
	fs.SetOutput(flag.CommandLine.Output())
	rulesDir := fs.String("rules-dir", defaultRulesDir(), "Custom rule groups directory")
	noCustom := fs.Bool("no-custom-rules", false, "List built-in rules only")
	format := fs.String("format", "human", "Output format: human|json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalogue, err := rules.Resolve(rules.Options{RulesDir: *rulesDir, NoCustom: *noCustom})
	if err != nil {
		return err
	}

	if *format == "json" {
		b, err := json.MarshalIndent(catalogue.Groups, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal catalogue: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}

	for _, group := range catalogue.Groups {
		fmt.Printf("%s (%s, %s)\n", group.Name, group.ID, group.Source)
		for _, rule := range group.Rules {
			fmt.Printf("  [%-8s] %-28s %s\n", strings.ToUpper(string(rule.Severity)), rule.ID, rule.Message)
		}
		fmt.Println()
	}
	fmt.Printf("%d rule(s) in %d group(s)\n", catalogue.Len(), len(catalogue.Groups))
	return nil
}

func runRulesValidate(args []string) error {
	if len(args) != 1 {
		return usageError("usage: patrol rules validate <file-or-dir>")
	}
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	if info.IsDir() {
		groups, err := rules.LoadDir(target)
		if err != nil {
			return err
		}
		total := 0
		for _, g := range groups {
			total += len(g.Rules)
		}
		fmt.Printf("ok: %d group(s), %d rule(s)\n", len(groups), total)
		return nil
	}

	group, err := rules.LoadFile(target)
	if err != nil {
		return err
	}
	fmt.Printf("ok: group %s, %d rule(s)\n", group.ID, len(group.Rules))
	return nil
}

func runBadge(args []string) error {
	fs := flag.NewFlagSet("badge", flag.ContinueOnError)
	fs.SetOutput(flag.CommandLine.Output())
	format := fs.String("format", "svg", "Badge format: svg|json")
	out := fs.String("out", "", "Write the badge to a file instead of stdout")
	label := fs.String("label", badge.DefaultLabel, "Badge label text")

	var reportPath string
	parseArgs := args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		reportPath = args[0]
		parseArgs = args[1:]
	}
	if err := fs.Parse(parseArgs); err != nil {
		return err
	}
	if reportPath == "" && fs.NArg() == 1 {
		reportPath = fs.Arg(0)
	}
	if reportPath == "" {
		return usageError("usage: patrol badge <report.json> [flags]")
	}

	rep, err := report.ReadJSON(reportPath)
	if err != nil {
		return err
	}
	grade, color := badge.Grade(rep.CountsBySeverity)

	var content string
	switch *format {
	case "svg":
		content = badge.RenderSVG(*label, grade, color)
	case "json":
		content = badge.ShieldsJSON(*label, grade, color)
	default:
		return usageError(fmt.Sprintf("unknown badge format %q", *format))
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(content), 0o600); err != nil {
			return fmt.Errorf("write badge: %w", err)
		}
		return nil
	}
	fmt.Println(content)
	return nil
}

type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func defaultRulesDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".patrol", "rules")
}

func usageError(msg string) error {
	printUsage()
	return errors.New(msg)
}

func printUsage() {
	fmt.Fprint(flag.CommandLine.Output(), `patrol: scan added lines between two revisions for risky patterns

Usage:
  patrol scan [path] --base <rev> [--head <rev>] [flags]
  patrol rules list [flags]
  patrol rules validate <file-or-dir>
  patrol badge <report.json> [flags]
  patrol version

Run a command with -h for its flags.
`)
}
