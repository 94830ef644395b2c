package parsing

import (
	"strings"

	"github.com/gofta/gofta/internal/fterr"
	"github.com/gofta/gofta/internal/lexing"
)

// Value is one coerced property: the typed Data alongside the line
// number of the property that produced it, so later layers (builder,
// analysis) can report accurate diagnostics without re-threading raw
// source positions.
type Value struct {
	Line int
	Data any
}

// Assembly is a paragraph promoted to one of the four recognised
// classes, with every property coerced to its expected type.
type Assembly struct {
	Class string
	ID    string // empty for the implicit FaultTree assembly
	Line  int
	Props map[string]Value
}

var validClasses = []string{"FaultTree", "Model", "Event", "Gate"}

type coercer func(line int, raw string) (any, error)

func stringCoercer(_ int, raw string) (any, error) { return raw, nil }

func floatCoercer(line int, raw string) (any, error) { return CoerceFloat(line, raw) }
func floatsCoercer(line int, raw string) (any, error) { return CoerceFloats(line, raw) }
func intCoercer(line int, raw string) (any, error)    { return CoerceInt(line, raw) }
func boolCoercer(line int, raw string) (any, error)   { return CoerceBool(line, raw) }
func gateTypeCoercer(line int, raw string) (any, error) { return CoerceGateType(line, raw) }
func modelTypeCoercer(line int, raw string) (any, error) { return CoerceModelType(line, raw) }
func distributionCoercer(line int, raw string) (any, error) { return CoerceDistribution(line, raw) }
func idListCoercer(line int, raw string) (any, error) { return CoerceIDList(line, raw) }

// modelParamKeys are the six distribution-valued parameter keys shared
// by Model and Event assemblies; which subset is actually legal for a
// given model_type is a builder-level (spec §6) concern, not a parsing
// one — here every one of them is simply a recognised key.
var modelParamKeys = map[string]coercer{
	"probability":       distributionCoercer,
	"intensity":         distributionCoercer,
	"failure_rate":      distributionCoercer,
	"mean_failure_time": distributionCoercer,
	"repair_rate":       distributionCoercer,
	"mean_repair_time":  distributionCoercer,
}

var classSchemas = map[string]map[string]coercer{
	"FaultTree": {
		"time_unit":               stringCoercer,
		"times":                   floatsCoercer,
		"seed":                    intCoercer,
		"sample_size":             intCoercer,
		"computational_tolerance": floatCoercer,
	},
	"Model": merge(map[string]coercer{
		"label":      stringCoercer,
		"comment":    stringCoercer,
		"model_type": modelTypeCoercer,
	}, modelParamKeys),
	"Event": merge(map[string]coercer{
		"label":      stringCoercer,
		"comment":    stringCoercer,
		"model":      stringCoercer,
		"model_type": modelTypeCoercer,
	}, modelParamKeys),
	"Gate": {
		"label":    stringCoercer,
		"comment":  stringCoercer,
		"is_paged": boolCoercer,
		"type":     gateTypeCoercer,
		"inputs":   idListCoercer,
	},
}

func merge(base map[string]coercer, extra map[string]coercer) map[string]coercer {
	out := make(map[string]coercer, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// CoerceIDList splits a comma-separated list of identifiers, trimming
// surrounding whitespace around each element. An empty element
// (including a dangling trailing comma) is InvalidIDList.
func CoerceIDList(line int, value string) ([]string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, fterr.At(line, "InvalidIDList", "empty value where an id list was expected")
	}
	parts := strings.Split(trimmed, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fterr.At(line, "InvalidIDList", "empty element in id list")
		}
		out = append(out, p)
	}
	return out, nil
}

// Type promotes grouped paragraphs into typed, coerced Assemblies
// (spec §4.A pass 3). The first paragraph may have no object header,
// representing the implicit FaultTree; every later one must.
func Type(paragraphs []Paragraph) ([]Assembly, error) {
	assemblies := make([]Assembly, 0, len(paragraphs))
	for i, p := range paragraphs {
		a, err := typeOne(p, i == 0)
		if err != nil {
			return nil, err
		}
		assemblies = append(assemblies, a)
	}
	return assemblies, nil
}

func typeOne(p Paragraph, isFirst bool) (Assembly, error) {
	class, id, line := "FaultTree", "", 0
	if p.Header != nil {
		class, id, line = p.Header.Class, p.Header.ID, p.Header.Number
	} else if !isFirst {
		fterr.Violate("paragraph without header outside first position reached assembly typing")
	} else if len(p.Properties) > 0 {
		line = p.Properties[0].Number
	}

	schema, ok := classSchemas[class]
	if !ok {
		return Assembly{}, fterr.AtWithSuggestion(line, "InvalidClass",
			"\""+class+"\" is not a recognised object class", class, validClasses)
	}

	props := make(map[string]Value, len(p.Properties))
	for _, prop := range p.Properties {
		if _, dup := props[prop.Key]; dup {
			return Assembly{}, fterr.At(prop.Number, "DuplicateKey",
				"property %q repeated within this object", prop.Key)
		}
		coerce, known := schema[prop.Key]
		if !known {
			return Assembly{}, fterr.AtWithSuggestion(prop.Number, "InvalidKey",
				"\""+prop.Key+"\" is not a recognised property for "+class, prop.Key, keysOf(schema))
		}
		data, err := coerce(prop.Number, prop.Value)
		if err != nil {
			return Assembly{}, err
		}
		props[prop.Key] = Value{Line: prop.Number, Data: data}
	}

	return Assembly{Class: class, ID: id, Line: line, Props: props}, nil
}

func keysOf(schema map[string]coercer) []string {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	return keys
}
