// Package engine evaluates the rule catalogue against an added-line corpus.
// The corpus is immutable during evaluation and each rule writes only its
// own result slot, so rules are evaluated concurrently and collected back in
// catalogue order with no shared counters or locks.
package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"patrol/internal/corpus"
	"patrol/internal/model"
	"patrol/internal/rules"
)

const (
	// MaxRetainedMatches caps the example lines kept per finding. The true
	// match count is always reported even when examples are truncated.
	MaxRetainedMatches = 10

	ruleEvalTimeout = 5 * time.Second
)

type ruleResult struct {
	finding *model.Finding
	skipped *model.SkippedRule
}

// Evaluate runs every catalogue rule against every corpus line. There is no
// early termination, no deduplication across rules, and no file-type
// scoping: a line may appear in zero, one, or many findings.
//
// A rule whose evaluation times out or panics is skipped and recorded, never
// aborting the run. Context cancellation abandons the whole run instead;
// partially evaluated results are not returned.
func Evaluate(ctx context.Context, lines []corpus.Line, catalogue *rules.Catalogue) ([]model.Finding, []model.SkippedRule, error) {
	ruleSet := catalogue.Rules()
	results := make([]ruleResult, len(ruleSet))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rule := range ruleSet {
		i, rule := i, rule
		g.Go(func() error {
			results[i] = evaluateRule(gctx, lines, rule)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("rule evaluation abandoned: %w", err)
	}

	var findings []model.Finding
	var skipped []model.SkippedRule
	for _, res := range results {
		if res.finding != nil {
			findings = append(findings, *res.finding)
		}
		if res.skipped != nil {
			skipped = append(skipped, *res.skipped)
		}
	}
	return findings, skipped, nil
}

func evaluateRule(ctx context.Context, lines []corpus.Line, rule rules.CompiledRule) ruleResult {
	type outcome struct {
		finding *model.Finding
		err     error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		ch <- outcome{finding: scanRule(lines, rule)}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "[patrol] warning: rule %s skipped: %v\n", rule.ID, res.err)
			return ruleResult{skipped: &model.SkippedRule{RuleID: rule.ID, Reason: res.err.Error()}}
		}
		return ruleResult{finding: res.finding}
	case <-time.After(ruleEvalTimeout):
		fmt.Fprintf(os.Stderr, "[patrol] warning: rule %s skipped: evaluation exceeded %s\n", rule.ID, ruleEvalTimeout)
		return ruleResult{skipped: &model.SkippedRule{
			RuleID: rule.ID,
			Reason: fmt.Sprintf("evaluation exceeded %s", ruleEvalTimeout),
		}}
	case <-ctx.Done():
		return ruleResult{skipped: &model.SkippedRule{RuleID: rule.ID, Reason: "interrupted"}}
	}
}

// scanRule is the pure per-rule pass: read-only over the corpus, private
// result, no shared state.
func scanRule(lines []corpus.Line, rule rules.CompiledRule) *model.Finding {
	matches := make([]model.MatchLine, 0, MaxRetainedMatches)
	total := 0
	for _, line := range lines {
		if !rule.Regex.MatchString(line.Text) {
			continue
		}
		total++
		if len(matches) < MaxRetainedMatches {
			matches = append(matches, model.MatchLine{Line: line.Index, Text: line.Text})
		}
	}
	if total == 0 {
		return nil
	}
	return &model.Finding{
		RuleID:     rule.ID,
		Group:      rule.GroupID,
		GroupName:  rule.GroupName,
		Message:    rule.Message,
		Severity:   rule.Severity,
		Matches:    matches,
		MatchCount: total,
		Truncated:  total > MaxRetainedMatches,
	}
}
