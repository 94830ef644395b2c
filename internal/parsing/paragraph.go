// Package parsing implements the second and third passes of the text
// parser (spec §4.A): grouping classified lines into paragraphs, then
// promoting each paragraph to a typed Assembly with coerced property
// values.
package parsing

import (
	"github.com/gofta/gofta/internal/fterr"
	"github.com/gofta/gofta/internal/lexing"
)

// Paragraph is a run of consecutive non-blank, non-comment lines.
// Header is nil only for the first paragraph of a file that opens
// directly with a property line — the implicit FaultTree object.
type Paragraph struct {
	Header     *lexing.Line
	Properties []lexing.Line
}

// Group splits classified lines into paragraphs, separated by one or
// more blank lines (comments are dropped and never separate a
// paragraph). Only the first paragraph may lack an OBJECT header; a
// PROPERTY line with no preceding header in any later paragraph is
// DanglingProperty, and a second OBJECT line within one paragraph is
// SmotheredObject.
func Group(lines []lexing.Line) ([]Paragraph, error) {
	var paragraphs []Paragraph
	var current *Paragraph

	flush := func() {
		if current != nil {
			paragraphs = append(paragraphs, *current)
			current = nil
		}
	}

	for _, line := range lines {
		switch line.Kind {
		case lexing.Blank:
			flush()
		case lexing.Comment:
			// Comments neither join nor break a paragraph.
		case lexing.Object:
			if current == nil {
				current = &Paragraph{}
			} else if current.Header != nil {
				return nil, fterr.At(line.Number, "SmotheredObject",
					"a paragraph may declare at most one object")
			} else if len(current.Properties) > 0 {
				return nil, fterr.At(line.Number, "SmotheredObject",
					"object header must be the first line of its paragraph")
			}
			l := line
			current.Header = &l
		case lexing.Property:
			if current == nil {
				current = &Paragraph{}
			}
			if current.Header == nil && len(paragraphs) > 0 {
				return nil, fterr.At(line.Number, "DanglingProperty",
					"property has no preceding object header")
			}
			current.Properties = append(current.Properties, line)
		default:
			fterr.Violate("unexpected line kind %v in Group", line.Kind)
		}
	}
	flush()

	return paragraphs, nil
}
