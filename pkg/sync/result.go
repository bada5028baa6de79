package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/port"
)

// Result represents the complete result of a sync run.
type Result struct {
	Passes []*PassResult // Results per pass, in execution order

	// Operation metadata
	DryRun   bool          // Whether this was a dry run
	Duration time.Duration // Wall time of the run
}

// PassResult represents the result of a single pass.
type PassResult struct {
	Pass      Pass             // The pass that ran
	Blueprint port.BlueprintID // Where entities were published
	Fetched   int              // Records read from the source
	Published int              // Upserts the catalog accepted (or would have, in a dry run)

	// Upserts the catalog rejected; under the fail policy at most one, the one that stopped the run
	Warnings []*errors.PublishWarning
}

// NewPassResult creates an empty result for pass.
func NewPassResult(pass Pass, blueprint port.BlueprintID) *PassResult {
	return &PassResult{Pass: pass, Blueprint: blueprint}
}

// Pass returns the result of pass, or nil if it did not run.
func (sr *Result) Pass(pass Pass) *PassResult {
	for _, p := range sr.Passes {
		if p.Pass == pass {
			return p
		}
	}
	return nil
}

// TotalFetched returns the number of records read across passes.
func (sr *Result) TotalFetched() int {
	n := 0
	for _, p := range sr.Passes {
		n += p.Fetched
	}
	return n
}

// TotalPublished returns the number of accepted upserts across passes.
func (sr *Result) TotalPublished() int {
	n := 0
	for _, p := range sr.Passes {
		n += p.Published
	}
	return n
}

// TotalWarnings returns the number of rejected upserts across passes.
func (sr *Result) TotalWarnings() int {
	n := 0
	for _, p := range sr.Passes {
		n += len(p.Warnings)
	}
	return n
}

// HasWarnings returns true if any upsert was rejected.
func (sr *Result) HasWarnings() bool {
	return sr.TotalWarnings() > 0
}

// HasWarnings returns true if any upsert in the pass was rejected.
func (spr *PassResult) HasWarnings() bool {
	return len(spr.Warnings) > 0
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	if len(sr.Passes) == 0 {
		return "Nothing synced"
	}

	verb := "published"
	if sr.DryRun {
		verb = "would publish"
	}

	noun := "passes"
	if len(sr.Passes) == 1 {
		noun = "pass"
	}

	summary := fmt.Sprintf("%d of %d entities %s across %d %s", sr.TotalPublished(), sr.TotalFetched(), verb, len(sr.Passes), noun)
	if sr.HasWarnings() {
		summary += fmt.Sprintf(", %d rejected", sr.TotalWarnings())
	}

	var parts []string
	if sr.DryRun {
		parts = append(parts, "(Dry run)")
	}
	if sr.Duration > 0 {
		parts = append(parts, fmt.Sprintf("in %s", sr.Duration.Round(time.Millisecond)))
	}
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}

	return summary
}

// Summary returns a human-readable summary of the pass result.
func (spr *PassResult) Summary() string {
	if spr.HasWarnings() {
		return fmt.Sprintf("%s -> %s: %d fetched, %d published, %d rejected",
			spr.Pass, spr.Blueprint, spr.Fetched, spr.Published, len(spr.Warnings))
	}
	return fmt.Sprintf("%s -> %s: %d fetched, %d published",
		spr.Pass, spr.Blueprint, spr.Fetched, spr.Published)
}
