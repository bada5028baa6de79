package output

import (
	"io"

	"github.com/agentstation/jfrogsync/internal/cmd/table"
	"github.com/agentstation/jfrogsync/pkg/artifactory"
	"github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Printer writes command results in one format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a printer for w. An empty format is detected from w.
func NewPrinter(w io.Writer, format string) (*Printer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if f == "" {
		f = DetectFormat("", w)
	}
	return &Printer{w: w, format: f}, nil
}

// Format returns the resolved output format.
func (p *Printer) Format() Format {
	return p.format
}

// Repositories prints source repositories.
func (p *Printer) Repositories(repos []artifactory.Repository) error {
	if p.format.IsTable() {
		return p.print(table.RepositoriesToTableData(repos, p.format == FormatWide))
	}
	return p.print(repos)
}

// Builds prints source builds.
func (p *Printer) Builds(builds []artifactory.Build) error {
	if p.format.IsTable() {
		return p.print(table.BuildsToTableData(builds, p.format == FormatWide))
	}
	return p.print(builds)
}

// Entities prints converted entities bound for blueprint.
func (p *Printer) Entities(blueprint port.BlueprintID, entities []port.Entity) error {
	if p.format.IsTable() {
		return p.print(table.EntitiesToTableData(blueprint, entities))
	}
	return p.print(entities)
}

// Result prints a sync result. Tables list passes, then rejected upserts if any.
func (p *Printer) Result(result *pkgsync.Result) error {
	if !p.format.IsTable() {
		return p.print(NewResultView(result))
	}
	if err := p.print(table.ResultToTableData(result)); err != nil {
		return err
	}
	if result.HasWarnings() {
		return p.print(table.WarningsToTableData(result))
	}
	return nil
}

// Any prints arbitrary data.
func (p *Printer) Any(data any) error {
	return p.print(data)
}

func (p *Printer) print(data any) error {
	return NewFormatter(p.format).Format(p.w, data)
}

// ResultView is the serialized form of a sync result.
type ResultView struct {
	Summary  string     `json:"summary" yaml:"summary"`
	DryRun   bool       `json:"dry_run" yaml:"dry_run"`
	Duration string     `json:"duration" yaml:"duration"`
	Passes   []PassView `json:"passes" yaml:"passes"`
}

// PassView is the serialized form of a pass result.
type PassView struct {
	Pass      string        `json:"pass" yaml:"pass"`
	Blueprint string        `json:"blueprint" yaml:"blueprint"`
	Fetched   int           `json:"fetched" yaml:"fetched"`
	Published int           `json:"published" yaml:"published"`
	Rejected  []WarningView `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// WarningView is the serialized form of a rejected upsert.
type WarningView struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Body       string `json:"body,omitempty" yaml:"body,omitempty"`
}

// NewResultView converts a sync result for serialization.
func NewResultView(result *pkgsync.Result) ResultView {
	view := ResultView{
		Summary:  result.Summary(),
		DryRun:   result.DryRun,
		Duration: result.Duration.String(),
		Passes:   make([]PassView, 0, len(result.Passes)),
	}
	for _, p := range result.Passes {
		pv := PassView{
			Pass:      p.Pass.String(),
			Blueprint: p.Blueprint.String(),
			Fetched:   p.Fetched,
			Published: p.Published,
		}
		for _, w := range p.Warnings {
			pv.Rejected = append(pv.Rejected, WarningView{Identifier: w.Identifier, StatusCode: w.StatusCode, Body: w.Body})
		}
		view.Passes = append(view.Passes, pv)
	}
	return view
}
