// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/jfrogsync/pkg/artifactory"
	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RepositoriesToTableData converts repositories to table format.
func RepositoriesToTableData(repos []artifactory.Repository, wide bool) Data {
	headers := []string{"Key", "Type", "Package Type"}
	if wide {
		headers = append(headers, "URL", "Description")
	}

	rows := make([][]string, 0, len(repos))
	for _, r := range repos {
		row := []string{r.Key, r.Type, r.PackageType}
		if wide {
			row = append(row, r.URL, orDash(r.Description))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// BuildsToTableData converts builds to table format.
func BuildsToTableData(builds []artifactory.Build, wide bool) Data {
	headers := []string{"Name", "URI", "Last Started"}

	rows := make([][]string, 0, len(builds))
	for _, b := range builds {
		started := b.LastStarted
		if wide {
			started = FormatStarted(b)
		}
		rows = append(rows, []string{b.Name(), b.URI, orDash(started)})
	}

	return Data{Headers: headers, Rows: rows}
}

// FormatStarted renders the build start time for humans, or the raw value if it does not parse.
func FormatStarted(b artifactory.Build) string {
	t, err := b.StartedAt()
	if err != nil {
		return b.LastStarted
	}
	return t.Time.Format(constants.TimeFormatHuman)
}

// EntitiesToTableData converts entities to table format with properties flattened.
func EntitiesToTableData(blueprint port.BlueprintID, entities []port.Entity) Data {
	headers := []string{"Blueprint", "Identifier", "Title", "Properties"}

	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []string{blueprint.String(), e.Identifier, e.Title, FormatProperties(e.Properties)})
	}

	return Data{Headers: headers, Rows: rows}
}

// FormatProperties renders entity properties as sorted key=value pairs.
func FormatProperties(props any) string {
	var pairs map[string]string
	switch p := props.(type) {
	case port.RepositoryProperties:
		pairs = map[string]string{
			"key":          p.Key,
			"description":  p.Description,
			"type":         p.Type,
			"url":          p.URL,
			"package_type": p.PackageType,
		}
	case port.BuildProperties:
		pairs = map[string]string{
			"uri":          p.URI,
			"last_started": p.LastStarted,
		}
	default:
		return fmt.Sprintf("%v", props)
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+pairs[k])
	}
	return strings.Join(parts, " ")
}

// ResultToTableData converts a sync result to one row per pass.
func ResultToTableData(result *pkgsync.Result) Data {
	headers := []string{"Pass", "Blueprint", "Fetched", "Published", "Rejected"}

	rows := make([][]string, 0, len(result.Passes))
	for _, p := range result.Passes {
		rows = append(rows, []string{
			p.Pass.String(),
			p.Blueprint.String(),
			strconv.Itoa(p.Fetched),
			strconv.Itoa(p.Published),
			strconv.Itoa(len(p.Warnings)),
		})
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

// WarningsToTableData converts rejected upserts to table format.
func WarningsToTableData(result *pkgsync.Result) Data {
	headers := []string{"Blueprint", "Identifier", "Status", "Response"}

	var rows [][]string
	for _, p := range result.Passes {
		for _, w := range p.Warnings {
			rows = append(rows, []string{w.Blueprint, w.Identifier, strconv.Itoa(w.StatusCode), orDash(w.Body)})
		}
	}

	return Data{Headers: headers, Rows: rows}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
