// Package app wires the scan pipeline together: catalogue resolution, git
// collaborators, path filtering, corpus construction, rule evaluation, and
// report assembly.
package app

import (
	"context"
	"fmt"
	"time"

	"patrol/internal/corpus"
	"patrol/internal/engine"
	"patrol/internal/filter"
	"patrol/internal/git"
	"patrol/internal/model"
	"patrol/internal/progress"
	"patrol/internal/report"
	"patrol/internal/rules"
)

type Options struct {
	// Path is any path inside the repository to scan. Defaults to ".".
	Path string
	// Base is the revision the change set is diffed against.
	Base string
	// Head is the other end of the range; empty means the working tree.
	Head string

	RulesDir      string
	NoCustomRules bool
	OnlyGroups    []string
	SkipGroups    []string

	ExcludeDirs     []string
	ExcludeSuffixes []string

	Sink progress.Sink
}

// Scan runs the full pipeline and returns the report. The catalogue is
// resolved and compiled before anything else so a malformed rule fails the
// run before any scanning begins; from there the only hard failures are the
// git collaborators. A completed run is never partial without saying so:
// rules skipped at evaluation time are listed in the report.
func Scan(ctx context.Context, opts Options) (model.Report, error) {
	sink := opts.Sink
	if sink == nil {
		sink = progress.NoopSink{}
	}
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Base == "" {
		return model.Report{}, fmt.Errorf("base revision is required")
	}

	catalogue, err := rules.Resolve(rules.Options{
		RulesDir:   opts.RulesDir,
		NoCustom:   opts.NoCustomRules,
		OnlyGroups: opts.OnlyGroups,
		SkipGroups: opts.SkipGroups,
	})
	if err != nil {
		return model.Report{}, fmt.Errorf("resolve rule catalogue: %w", err)
	}

	started := time.Now()
	sink.Emit(progress.Event{Type: progress.EventRunStarted})

	root, err := git.RepoRoot(opts.Path)
	if err != nil {
		return model.Report{}, err
	}

	stageStart := time.Now()
	sink.Emit(progress.Event{Type: progress.EventStageStarted, Stage: progress.StagePaths})
	changed, err := git.ChangedPaths(root, opts.Base, opts.Head)
	if err != nil {
		return model.Report{}, fmt.Errorf("resolve changed paths: %w", err)
	}
	included := filter.New(opts.ExcludeDirs, opts.ExcludeSuffixes).Apply(changed)
	sink.Emit(progress.Event{
		Type:       progress.EventStageFinished,
		Stage:      progress.StagePaths,
		Message:    fmt.Sprintf("%d changed, %d included", len(changed), len(included)),
		DurationMS: time.Since(stageStart).Milliseconds(),
	})

	// Only included paths are ever handed to git: diff content for an
	// excluded file must not even be requested.
	paths := make([]string, 0, len(included))
	for _, p := range included {
		paths = append(paths, p.Path)
	}

	stageStart = time.Now()
	sink.Emit(progress.Event{Type: progress.EventStageStarted, Stage: progress.StageDiff})
	diffText, err := git.UnifiedDiff(root, opts.Base, opts.Head, paths)
	if err != nil {
		return model.Report{}, fmt.Errorf("resolve diff: %w", err)
	}
	linesAdded, linesRemoved, err := git.DiffStat(root, opts.Base, opts.Head, paths)
	if err != nil {
		return model.Report{}, fmt.Errorf("resolve diff stats: %w", err)
	}
	lines := corpus.Build(diffText)
	sink.Emit(progress.Event{
		Type:       progress.EventStageFinished,
		Stage:      progress.StageDiff,
		Message:    fmt.Sprintf("%d added line(s)", len(lines)),
		DurationMS: time.Since(stageStart).Milliseconds(),
	})

	stageStart = time.Now()
	sink.Emit(progress.Event{Type: progress.EventStageStarted, Stage: progress.StageEvaluate})
	findings, skipped, err := engine.Evaluate(ctx, lines, catalogue)
	if err != nil {
		return model.Report{}, err
	}
	for _, s := range skipped {
		sink.Emit(progress.Event{
			Type:    progress.EventRuleSkipped,
			Message: fmt.Sprintf("%s: %s", s.RuleID, s.Reason),
		})
	}
	sink.Emit(progress.Event{
		Type:       progress.EventStageFinished,
		Stage:      progress.StageEvaluate,
		Message:    fmt.Sprintf("%d finding(s) from %d rule(s)", len(findings), catalogue.Len()),
		DurationMS: time.Since(stageStart).Milliseconds(),
	})

	stageStart = time.Now()
	sink.Emit(progress.Event{Type: progress.EventStageStarted, Stage: progress.StageReport})
	rep := report.Build(report.BuildParams{
		BaseRef:        opts.Base,
		HeadRef:        opts.Head,
		Findings:       findings,
		SkippedRules:   skipped,
		RulesEvaluated: catalogue.Len(),
		ChangedFiles:   included,
		LinesAdded:     linesAdded,
		LinesRemoved:   linesRemoved,
		CorpusLines:    len(lines),
	})
	sink.Emit(progress.Event{
		Type:       progress.EventStageFinished,
		Stage:      progress.StageReport,
		DurationMS: time.Since(stageStart).Milliseconds(),
	})

	sink.Emit(progress.Event{
		Type:         progress.EventRunFinished,
		Status:       string(rep.OverallStatus),
		FindingCount: len(rep.Findings),
		DurationMS:   time.Since(started).Milliseconds(),
	})
	return rep, nil
}
