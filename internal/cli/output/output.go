// Package output renders diagnostics and the diagnostic-kind catalog for
// the CLI as jedib0t/go-pretty tables, with muesli/termenv severity
// coloring (mixed severities print in a single table and are color-coded
// when the terminal supports it).
package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"github.com/rulelang/rulec/diag"
)

// Renderer writes diagnostic tables to an output stream, applying color
// only when the destination profile supports it (termenv falls back to
// termenv.Ascii for non-TTY writers such as files or pipes).
type Renderer struct {
	w       io.Writer
	profile termenv.Profile
}

// New builds a Renderer that writes to w, detecting color support via
// termenv's output-profile detection.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, profile: termenv.EnvColorProfile()}
}

// NewWithProfile builds a Renderer with an explicit color profile, used by
// tests to assert on both the colored and plain rendering paths.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{w: w, profile: profile}
}

// Diagnostics renders a table with one row per diagnostic: severity
// (colored), kind, rule id, and message. Severity color: error red,
// warning yellow, hint faint.
func (r *Renderer) Diagnostics(items []diag.Diagnostic) {
	if len(items) == 0 {
		fmt.Fprintln(r.w, "no diagnostics")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"severity", "kind", "rule", "message"})

	for _, d := range items {
		t.AppendRow(table.Row{r.severityLabel(d.Severity), string(d.Kind), d.RuleID, d.Message})
	}

	t.Render()
}

func (r *Renderer) severityLabel(sev diag.Severity) string {
	label := sev.String()
	var color termenv.Color
	switch sev {
	case diag.SeverityError:
		color = r.profile.Color("9") // red
	case diag.SeverityWarning:
		color = r.profile.Color("11") // yellow
	default:
		color = r.profile.Color("8") // faint grey
	}
	return termenv.String(label).Foreground(color).String()
}

// catalogEntry describes one diag.Kind for the "rulec diagnostics list"
// surface, pairing each kind with its severity and recovery behavior.
type catalogEntry struct {
	Kind     diag.Kind
	Severity string
	Recovery string
}

var catalog = []catalogEntry{
	{diag.KindLexParseError, "error", "Reported; no IR produced."},
	{diag.KindDuplicateDeclaration, "error", "Reported; first declaration wins downstream."},
	{diag.KindUnresolvedIdentifier, "error", "Type becomes Unknown; generator falls back to naive emission."},
	{diag.KindIllegalAssignment, "error", "Statement skipped by remaining analyzer checks; generator still walks it."},
	{diag.KindMissingAliasOrColumn, "error", "Affected row is skipped by the expander."},
	{diag.KindMergeConflict, "error", "Merged module is not produced."},
	{diag.KindNullSafeAssignment, "warning", "Generation proceeds best-effort (getter chain + final setter)."},
	{diag.KindUnusedOutput, "warning", "Does not fail compilation."},
	{diag.KindUnreachableElse, "warning", "Does not fail compilation."},
	{diag.KindMalformedWhenClause, "error", "Rejected; rule is not generated."},
}

// DiagnosticCatalog renders the static diag.Kind taxonomy as a table, used
// by "rulec diagnostics list".
func (r *Renderer) DiagnosticCatalog() {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"kind", "default severity", "recovery"})
	for _, e := range catalog {
		t.AppendRow(table.Row{string(e.Kind), e.Severity, e.Recovery})
	}
	t.Render()
}
