// Package fterr defines the two-family error taxonomy used throughout
// gofta: recoverable, user-facing text errors and unrecoverable
// implementation-invariant violations.
package fterr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Error is a recoverable, user-visible diagnostic produced while
// reading or validating fault-tree text. Line is nil for cross-object
// problems (e.g. a cycle spanning several gates) that have no single
// source line.
type Error struct {
	Code       string // short machine-stable tag, e.g. "InvalidKey"
	Line       *int
	Msg        string
	Explainer  string // optional multi-line elaboration
	Suggestion string // optional "did you mean ...?" hint
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Line != nil {
		fmt.Fprintf(&b, "line %d: %s: %s", *e.Line, e.Code, e.Msg)
	} else {
		fmt.Fprintf(&b, "%s: %s", e.Code, e.Msg)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	if e.Explainer != "" {
		b.WriteString("\n")
		b.WriteString(e.Explainer)
	}
	return b.String()
}

// New builds an Error with no source line (cross-object problems).
// msg is formatted with fmt.Sprintf when args are supplied.
func New(code, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{Code: code, Msg: msg}
}

// At builds an Error anchored to a one-based source line. msg is
// formatted with fmt.Sprintf when args are supplied.
func At(line int, code, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{Code: code, Line: &line, Msg: msg}
}

// WithExplainer attaches a multi-line elaboration and returns the
// receiver, for fluent construction at call sites.
func (e *Error) WithExplainer(explainer string) *Error {
	e.Explainer = explainer
	return e
}

// WithSuggestion attaches a "did you mean" hint and returns the
// receiver.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// Suggest finds the closest match for got among candidates using fuzzy
// ranking, returning "" if candidates is empty or nothing ranks. It is
// used to turn an InvalidKey/InvalidClass/UnknownModel/UnknownInput
// error into a "did you mean" hint.
func Suggest(got string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(got, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// AtWithSuggestion is a convenience constructor combining At and a
// fuzzy-matched suggestion against candidates.
func AtWithSuggestion(line int, code, msg, got string, candidates []string) *Error {
	e := At(line, code, msg)
	if s := Suggest(got, candidates); s != "" {
		e.Suggestion = s
	}
	return e
}
