package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofta/gofta/internal/fterr"
	"github.com/gofta/gofta/internal/sampling"
)

// CoerceFloat parses a single token as a finite, infinite, or NaN real.
func CoerceFloat(line int, token string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, fterr.At(line, "InvalidFloat", "%q is not a valid number", token)
	}
	return v, nil
}

// CoerceFloats parses a comma-separated list of floats. One trailing
// comma is permitted; more than one, or any empty element (including a
// leading or interior empty element), is InvalidFloat.
func CoerceFloats(line int, value string) ([]float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, fterr.At(line, "InvalidFloat", "empty value where a float list was expected")
	}
	if strings.HasSuffix(trimmed, ",,") {
		return nil, fterr.At(line, "InvalidFloat", "more than one trailing comma")
	}
	trimmed = strings.TrimSuffix(trimmed, ",")

	parts := strings.Split(trimmed, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fterr.At(line, "InvalidFloat", "empty element in float list")
		}
		v, err := CoerceFloat(line, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// CoerceInt parses a decimal integer token. Anything non-integral
// (including floats like "1.0") is rejected.
func CoerceInt(line int, token string) (int, error) {
	token = strings.TrimSpace(token)
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fterr.At(line, "InvalidInteger", "%q is not a valid integer", token)
	}
	return v, nil
}

// CoerceBool accepts exactly the case-sensitive literals "True" and
// "False".
func CoerceBool(line int, token string) (bool, error) {
	switch token {
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return false, fterr.At(line, "InvalidBoolean", "%q is neither True nor False", token)
	}
}

// GateKind tags which of the four gate shapes a GateType names.
type GateKind int

const (
	GateAnd GateKind = iota
	GateOr
	GateNull
	GateVote
)

// GateType is the coerced form of a Gate's "type" property. K is only
// meaningful when Kind == GateVote.
type GateType struct {
	Kind GateKind
	K    int
}

func (g GateType) String() string {
	switch g.Kind {
	case GateAnd:
		return "AND"
	case GateOr:
		return "OR"
	case GateNull:
		return "NULL"
	case GateVote:
		return "VOTE(" + strconv.Itoa(g.K) + ")"
	default:
		fterr.Violate("unknown gate kind %d", int(g.Kind))
		return ""
	}
}

var voteSyntax = regexp.MustCompile(`^VOTE\((\d+)\)$`)

// CoerceGateType parses one of AND, OR, NULL, or VOTE(<int>).
func CoerceGateType(line int, token string) (GateType, error) {
	switch token {
	case "AND":
		return GateType{Kind: GateAnd}, nil
	case "OR":
		return GateType{Kind: GateOr}, nil
	case "NULL":
		return GateType{Kind: GateNull}, nil
	}
	if m := voteSyntax.FindStringSubmatch(token); m != nil {
		k, err := strconv.Atoi(m[1])
		if err != nil {
			return GateType{}, fterr.At(line, "InvalidGateType", "%q is not a valid gate type", token)
		}
		return GateType{Kind: GateVote, K: k}, nil
	}
	return GateType{}, fterr.AtWithSuggestion(line, "InvalidGateType",
		"\""+token+"\" is not a valid gate type", token,
		[]string{"AND", "OR", "NULL", "VOTE(k)"})
}

// ModelType tags the statistical behaviour of a Model (spec §3).
type ModelType int

const (
	Undeveloped ModelType = iota
	ModelTrue
	ModelFalse
	Fixed
	ConstantRate
)

func (m ModelType) String() string {
	switch m {
	case Undeveloped:
		return "Undeveloped"
	case ModelTrue:
		return "True"
	case ModelFalse:
		return "False"
	case Fixed:
		return "Fixed"
	case ConstantRate:
		return "ConstantRate"
	default:
		fterr.Violate("unknown model type %d", int(m))
		return ""
	}
}

var modelTypeNames = []string{"Undeveloped", "True", "False", "Fixed", "ConstantRate"}

// CoerceModelType parses one of Undeveloped, True, False, Fixed, or
// ConstantRate (case-sensitive).
func CoerceModelType(line int, token string) (ModelType, error) {
	switch token {
	case "Undeveloped":
		return Undeveloped, nil
	case "True":
		return ModelTrue, nil
	case "False":
		return ModelFalse, nil
	case "Fixed":
		return Fixed, nil
	case "ConstantRate":
		return ConstantRate, nil
	default:
		return 0, fterr.AtWithSuggestion(line, "InvalidModelType",
			"\""+token+"\" is not a valid model type", token, modelTypeNames)
	}
}

// CoerceDistribution parses either a bare float (Degenerate(value)) or
// a call of the form name(param=expr, ...) with name in {uniform,
// loguniform, normal, lognormal}.
func CoerceDistribution(line int, value string) (sampling.Distribution, error) {
	trimmed := strings.TrimSpace(value)

	if open := strings.IndexByte(trimmed, '('); open < 0 {
		v, err := CoerceFloat(line, trimmed)
		if err != nil {
			return sampling.Distribution{}, err
		}
		return sampling.NewDegenerate(line, v)
	}

	name, args, err := parseCall(line, trimmed)
	if err != nil {
		return sampling.Distribution{}, err
	}

	switch name {
	case "uniform":
		a, b, err := requireAB(line, args)
		if err != nil {
			return sampling.Distribution{}, err
		}
		return sampling.NewUniform(line, a, b)
	case "loguniform":
		a, b, err := requireAB(line, args)
		if err != nil {
			return sampling.Distribution{}, err
		}
		return sampling.NewLogUniform(line, a, b)
	case "normal":
		mu, sigma, err := requireMuSigma(line, args)
		if err != nil {
			return sampling.Distribution{}, err
		}
		return sampling.NewNormal(line, mu, sigma)
	case "lognormal":
		mu, sigma, err := requireMuSigma(line, args)
		if err != nil {
			return sampling.Distribution{}, err
		}
		return sampling.NewLogNormal(line, mu, sigma)
	default:
		return sampling.Distribution{}, fterr.AtWithSuggestion(line, "InvalidDistribution",
			"\""+name+"\" is not a recognised distribution", name,
			[]string{"uniform", "loguniform", "normal", "lognormal"})
	}
}

// parseCall splits "name(k1=v1, k2=v2)" into the name and a keyword
// map. Malformed call syntax is InvalidDistribution.
func parseCall(line int, token string) (string, map[string]string, error) {
	open := strings.IndexByte(token, '(')
	if !strings.HasSuffix(token, ")") || open < 0 {
		return "", nil, fterr.At(line, "InvalidDistribution", "%q is not valid call syntax", token)
	}
	name := strings.TrimSpace(token[:open])
	body := token[open+1 : len(token)-1]

	args := map[string]string{}
	body = strings.TrimSpace(body)
	if body == "" {
		return name, args, nil
	}
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return "", nil, fterr.At(line, "InvalidDistribution", "empty argument in %q", token)
		}
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			return "", nil, fterr.At(line, "InvalidDistribution", "argument %q is not key=value", part)
		}
		key := strings.TrimSpace(part[:eq])
		val := strings.TrimSpace(part[eq+1:])
		if _, dup := args[key]; dup {
			return "", nil, fterr.At(line, "InvalidDistribution", "duplicate argument %q", key)
		}
		args[key] = val
	}
	return name, args, nil
}

func requireAB(line int, args map[string]string) (float64, float64, error) {
	a, err := requireArg(line, args, "a")
	if err != nil {
		return 0, 0, err
	}
	b, err := requireArg(line, args, "b")
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func requireMuSigma(line int, args map[string]string) (float64, float64, error) {
	mu, err := requireArg(line, args, "mu")
	if err != nil {
		return 0, 0, err
	}
	sigma, err := requireArg(line, args, "sigma")
	if err != nil {
		return 0, 0, err
	}
	return mu, sigma, nil
}

func requireArg(line int, args map[string]string, key string) (float64, error) {
	token, ok := args[key]
	if !ok {
		return 0, fterr.At(line, "InvalidDistribution", "missing required argument %q", key)
	}
	return CoerceFloat(line, token)
}
