// Package output renders an analysis Result into the three TSV tables
// spec §6 names (event, gate, per-gate cut-set), mirroring
// original_source/pfta/presentation.py's Table.write_tsv: a headings
// row followed by one data row per object, tab-delimited.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/gofta/gofta/internal/analysis"
	"github.com/gofta/gofta/internal/faulttree"
	"github.com/gofta/gofta/internal/numeric"
)

// tablePrecision/tableSciThreshold pick six significant figures for
// every computed quantity column, switching to scientific notation for
// nonzero magnitudes below 1e-4 (strconv's 'g' form) or at or above
// 1e6 (the threshold) — original_source/pfta's own format_number isn't
// present in the retrieved source (only its test file is), so these
// are this package's own choice of reasonable table precision.
const (
	tablePrecision    = 6
	tableSciThreshold = 1e6
)

// Table is headings plus row data, serialisable to TSV independent of
// where the values came from.
type Table struct {
	Headings []string
	Rows     [][]string
}

// WriteTSV writes t as tab-separated values to name, one headings row
// followed by the data rows, in the host platform's own line ending
// (matching the original's lineterminator=os.linesep).
func (t Table) WriteTSV(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = '\t'
	w.UseCRLF = runtime.GOOS == "windows"
	if err := w.Write(t.Headings); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// quantityHeadings builds one column name per (time, sample) point,
// e.g. "probability[t=10,s=2]" — spec §6 fixes the per-time/per-sample
// probability and intensity columns it wants but not their exact
// names, so this format is this package's own choice: compact,
// grep-able, and sorted the same way the Cartesian product is
// evaluated (time-major, then sample).
func quantityHeadings(quantity string, times []float64, sampleSize int) []string {
	headings := make([]string, 0, len(times)*sampleSize)
	for _, t := range times {
		for si := 0; si < sampleSize; si++ {
			headings = append(headings, fmt.Sprintf("%s[t=%s,s=%d]", quantity, formatTime(t), si))
		}
	}
	return headings
}

func formatTime(t float64) string {
	return numeric.FormatNumber(t, numeric.SignificantFigures, tablePrecision, tableSciThreshold)
}

func flatten(grid [][]float64) []string {
	out := make([]string, 0, len(grid)*len(grid[0]))
	for _, row := range grid {
		for _, v := range row {
			out = append(out, formatValue(v))
		}
	}
	return out
}

func formatValue(v float64) string {
	return numeric.FormatNumber(v, numeric.SignificantFigures, tablePrecision, tableSciThreshold)
}

// EventTable compiles the per-event summary table (spec §6), columns
// index/id/is_used/label/comment followed by a probability and an
// intensity column per (time, sample) point.
func EventTable(ft *faulttree.FaultTree, result *analysis.Result) Table {
	headings := []string{"index", "id", "is_used", "label", "comment"}
	headings = append(headings, quantityHeadings("probability", ft.Times, ft.SampleSize)...)
	headings = append(headings, quantityHeadings("intensity", ft.Times, ft.SampleSize)...)

	rows := make([][]string, len(ft.Events))
	for i, e := range ft.Events {
		row := []string{
			strconv.Itoa(e.Index), e.ID, strconv.FormatBool(e.IsUsed), e.Label, e.Comment,
		}
		row = append(row, flatten(result.EventProbability[e.ID])...)
		row = append(row, flatten(result.EventIntensity[e.ID])...)
		rows[i] = row
	}
	return Table{Headings: headings, Rows: rows}
}

// GateTable compiles the per-gate summary table (spec §6), columns
// id/is_top_gate/is_paged/type/inputs/label/comment followed by a
// probability and an intensity column per (time, sample) point, the
// latter via the same inclusion-exclusion as probability (spec §4.F:
// "Gate q/ω at (time, sample) are computed with §4.D's
// inclusion-exclusion").
func GateTable(ft *faulttree.FaultTree, result *analysis.Result) Table {
	headings := []string{"id", "is_top_gate", "is_paged", "type", "inputs", "label", "comment"}
	headings = append(headings, quantityHeadings("probability", ft.Times, ft.SampleSize)...)
	headings = append(headings, quantityHeadings("intensity", ft.Times, ft.SampleSize)...)

	rows := make([][]string, len(ft.Gates))
	for i, g := range ft.Gates {
		row := []string{
			g.ID, strconv.FormatBool(g.IsTopGate), strconv.FormatBool(g.IsPaged),
			g.Type.String(), strings.Join(g.InputIDs, ","), g.Label, g.Comment,
		}
		row = append(row, flatten(result.GateProbability[g.ID])...)
		row = append(row, flatten(result.GateIntensity[g.ID])...)
		rows[i] = row
	}
	return Table{Headings: headings, Rows: rows}
}

// CutSetTable compiles one gate's minimal cut-set table (spec §6):
// columns cut_set/order followed by a probability and an intensity
// column per (time, sample) point.
func CutSetTable(ft *faulttree.FaultTree, result *analysis.Result, gateID string) Table {
	headings := []string{"cut_set", "order"}
	headings = append(headings, quantityHeadings("probability", ft.Times, ft.SampleSize)...)
	headings = append(headings, quantityHeadings("intensity", ft.Times, ft.SampleSize)...)

	rows := make([][]string, len(result.CutSets[gateID]))
	for i, cs := range result.CutSets[gateID] {
		row := []string{cs.CutSet, strconv.Itoa(cs.Order)}
		row = append(row, flatten(cs.Probability)...)
		row = append(row, flatten(cs.Intensity)...)
		rows[i] = row
	}
	return Table{Headings: headings, Rows: rows}
}

// WriteAll writes the event table, gate table, and one cut-set table
// per gate into dir, which must already exist.
func WriteAll(dir string, ft *faulttree.FaultTree, result *analysis.Result) error {
	if err := EventTable(ft, result).WriteTSV(filepath.Join(dir, "events.tsv")); err != nil {
		return err
	}
	if err := GateTable(ft, result).WriteTSV(filepath.Join(dir, "gates.tsv")); err != nil {
		return err
	}
	for _, g := range ft.Gates {
		name := filepath.Join(dir, "cut_sets_"+g.ID+".tsv")
		if err := CutSetTable(ft, result, g.ID).WriteTSV(name); err != nil {
			return err
		}
	}
	return nil
}
