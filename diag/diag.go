// Package diag defines the diagnostic shape every later stage (analyzer,
// expander, compiler) reports through: a severity, a kind drawn from the
// error-handling taxonomy, a message, and an optional source location.
package diag

import (
	"fmt"

	"github.com/google/uuid"
)

// Severity indicates whether a Diagnostic fails a compilation.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Kind identifies which row of the error-handling taxonomy a Diagnostic
// belongs to.
type Kind string

const (
	KindLexParseError        Kind = "lex_parse_error"
	KindDuplicateDeclaration Kind = "duplicate_declaration"
	KindUnresolvedIdentifier Kind = "unresolved_identifier"
	KindIllegalAssignment    Kind = "illegal_assignment_target"
	KindMissingAliasOrColumn Kind = "missing_alias_or_column"
	KindMergeConflict        Kind = "merge_conflict"
	KindNullSafeAssignment   Kind = "null_safe_assignment"
	KindUnusedOutput         Kind = "unused_output"
	KindUnreachableElse      Kind = "unreachable_else"
	KindMalformedWhenClause  Kind = "malformed_when_clause"
)

// Position is a 1-based source location, as supplied by the front-end.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether p carries a real location.
func (p Position) IsValid() bool { return p.Line > 0 }

// Diagnostic is one finding surfaced by the analyzer, expander, or
// compiler.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Pos      Position // zero value if the front-end supplied no location
	RuleID   string   // rule or row this diagnostic concerns, if applicable
}

// List accumulates diagnostics for one compile session, correlated by a
// session ID so multi-module batch compiles can be told apart in logs.
type List struct {
	SessionID uuid.UUID
	items     []Diagnostic
}

// NewList starts a fresh, correlated diagnostic list.
func NewList() *List {
	return &List{SessionID: uuid.New()}
}

// Add appends d to the list.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
}

// Errorf appends an error-severity diagnostic.
func (l *List) Errorf(kind Kind, ruleID, format string, args ...any) {
	l.Add(Diagnostic{Severity: SeverityError, Kind: kind, RuleID: ruleID, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning-severity diagnostic.
func (l *List) Warnf(kind Kind, ruleID, format string, args ...any) {
	l.Add(Diagnostic{Severity: SeverityWarning, Kind: kind, RuleID: ruleID, Message: fmt.Sprintf(format, args...)})
}

// Items returns every accumulated diagnostic, in the order they were added.
func (l *List) Items() []Diagnostic {
	return l.items
}

// HasErrors reports whether any accumulated diagnostic is error-severity.
// This is what decides whether compilation surfaces as Failure; warnings
// alone never do.
func (l *List) HasErrors() bool {
	return l.ErrorCount() > 0
}

// ErrorCount returns how many accumulated diagnostics are error-severity.
func (l *List) ErrorCount() int {
	n := 0
	for _, d := range l.items {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Strings renders every diagnostic as one line, suitable for bundling into
// a compiler.Failure.
func (l *List) Strings() []string {
	out := make([]string, len(l.items))
	for i, d := range l.items {
		out[i] = d.Severity.String() + ": " + string(d.Kind) + ": " + d.Message
	}
	return out
}
