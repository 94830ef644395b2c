// Package faulttree assembles parsed assemblies into the validated
// domain model of spec §3/§4.E: Model, Event, Gate and the owning
// FaultTree, plus the seven-step validation pipeline and the
// is_used/is_top_gate marking pass.
package faulttree

import (
	"github.com/gofta/gofta/internal/boolean"
	"github.com/gofta/gofta/internal/parsing"
	"github.com/gofta/gofta/internal/sampling"
)

// Model is a named, shareable failure model.
type Model struct {
	ID      string
	Line    int
	Label   string
	Comment string
	Type    parsing.ModelType
	Params  map[string]sampling.Distribution
}

// Event is a primary event: either an inline model or a reference to a
// shared Model, never both.
type Event struct {
	ID      string
	Index   int
	Line    int
	Label   string
	Comment string

	ModelID     string // non-empty when referencing a shared Model
	ModelIDLine int

	InlineType   parsing.ModelType // meaningful only when ModelID == ""
	InlineParams map[string]sampling.Distribution

	IsUsed bool

	computedExpression *boolean.Expression
}

// HasInlineModel reports whether the event carries its own model
// rather than referencing one by id.
func (e *Event) HasInlineModel() bool {
	return e.ModelID == ""
}

// ComputedExpression returns the event's single-bit-term expression,
// computing and caching it on first request (spec §4.F memoisation).
func (e *Event) ComputedExpression() boolean.Expression {
	if e.computedExpression == nil {
		expr := boolean.NewExpression([]boolean.Term{boolean.Term(1) << uint(e.Index)})
		e.computedExpression = &expr
	}
	return *e.computedExpression
}

// Gate is an internal fault-tree node.
type Gate struct {
	ID      string
	Line    int
	Label   string
	Comment string

	IsPaged bool
	Type    parsing.GateType

	InputIDs     []string
	InputIDsLine int

	IsTopGate bool

	computedExpression *boolean.Expression
}

// FaultTree is the fully validated, immutable result of building a
// text document: times, global sampling parameters, and the owned
// collections of models, events (declaration-ordered, contiguous
// indices) and gates (declaration-ordered).
type FaultTree struct {
	TimeUnit               string
	Times                  []float64
	Seed                   *int64
	SampleSize             int
	ComputationalTolerance float64

	Models []*Model
	Events []*Event
	Gates  []*Gate

	ModelByID map[string]*Model
	EventByID map[string]*Event
	GateByID  map[string]*Gate
}

// ResolveModel returns the effective model backing an event: either
// its inline definition or the shared model it references by id.
// Builder validation guarantees ModelID (when set) resolves, so this
// never returns nil for a tree that passed Build.
func (ft *FaultTree) ResolveModel(e *Event) *Model {
	if e.HasInlineModel() {
		return &Model{ID: e.ID, Line: e.Line, Type: e.InlineType, Params: e.InlineParams}
	}
	return ft.ModelByID[e.ModelID]
}
