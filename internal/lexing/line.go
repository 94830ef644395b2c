// Package lexing classifies raw fault-tree text lines into the four
// kinds recognised by the grammar in spec §4.A: OBJECT, PROPERTY,
// COMMENT and BLANK. This is the first of the parser's three passes;
// the second (paragraph grouping) and third (assembly typing) live in
// package parsing.
package lexing

import (
	"regexp"
	"strings"

	"github.com/gofta/gofta/internal/fterr"
)

// Kind identifies which of the four line patterns a line matched.
type Kind int

const (
	Blank Kind = iota
	Comment
	Object
	Property
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Object:
		return "object"
	case Property:
		return "property"
	default:
		fterr.Violate("unknown line kind %d", int(k))
		return ""
	}
}

// Line is a single classified source line, one-based Number preserved
// for diagnostics.
type Line struct {
	Number int
	Kind   Kind
	Raw    string

	// Populated for Kind == Object.
	Class string
	ID    string

	// Populated for Kind == Property.
	Key   string
	Value string
}

var (
	objectPattern   = regexp.MustCompile(`^([A-Za-z]+):\s+([A-Za-z0-9_-]+)$`)
	propertyPattern = regexp.MustCompile(`^- ([A-Za-z_][A-Za-z0-9_]*):\s+(.*)$`)
)

// Classify splits raw source text into one Line per input line,
// one-based line numbering starting at 1. A line that matches none of
// the four patterns yields an *fterr.Error with code "InvalidLine".
func Classify(source string) ([]Line, error) {
	rawLines := strings.Split(source, "\n")
	// A trailing newline produces one spurious empty final element;
	// drop it so a file ending in "\n" doesn't report a phantom blank
	// line past the real content.
	if len(rawLines) > 0 && rawLines[len(rawLines)-1] == "" {
		rawLines = rawLines[:len(rawLines)-1]
	}

	lines := make([]Line, 0, len(rawLines))
	for i, raw := range rawLines {
		number := i + 1
		line, err := classifyOne(number, raw)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func classifyOne(number int, raw string) (Line, error) {
	trimmed := strings.TrimRight(raw, " \t\r")

	if strings.TrimSpace(trimmed) == "" {
		return Line{Number: number, Kind: Blank, Raw: raw}, nil
	}

	leadingTrimmed := strings.TrimLeft(trimmed, " \t")
	if strings.HasPrefix(leadingTrimmed, "#") {
		return Line{Number: number, Kind: Comment, Raw: raw}, nil
	}

	if m := objectPattern.FindStringSubmatch(trimmed); m != nil {
		return Line{Number: number, Kind: Object, Raw: raw, Class: m[1], ID: m[2]}, nil
	}

	if m := propertyPattern.FindStringSubmatch(trimmed); m != nil {
		return Line{Number: number, Kind: Property, Raw: raw, Key: m[1], Value: m[2]}, nil
	}

	return Line{}, fterr.At(number, "InvalidLine",
		"line does not match OBJECT, PROPERTY, COMMENT or BLANK patterns").
		WithExplainer("  " + raw)
}
