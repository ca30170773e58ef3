package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

const unknownProtocol = "Unknown"

// RouteStep is one protocol fill inside a hop. Parallel venues at the same
// hop are separate steps.
type RouteStep struct {
	Protocol  string          `json:"protocol"`
	Part      decimal.Decimal `json:"part"`
	FromToken string          `json:"fromToken"`
	ToToken   string          `json:"toToken"`
}

// Path is one routed path from source to destination.
type Path struct {
	Steps []RouteStep `json:"steps"`
}

// Routes is the parsed protocols payload of a quote or swap response.
type Routes []Path

// ProtocolShare is a protocol's summed part across all steps.
type ProtocolShare struct {
	Protocol   string          `json:"protocol"`
	Percentage decimal.Decimal `json:"percentage"`
}

// GasWeights are the weights of the route gas heuristic.
type GasWeights struct {
	Base        uint64
	PerStep     uint64
	PerProtocol uint64
}

// DefaultGasWeights is 21000 + steps*100000 + protocols*50000.
var DefaultGasWeights = GasWeights{Base: 21_000, PerStep: 100_000, PerProtocol: 50_000}

// ParseRoutesJSON decodes a raw protocols payload. Only a body that is not
// JSON at all fails; malformed entries inside it are skipped.
func ParseRoutesJSON(raw json.RawMessage) (Routes, error) {
	if len(raw) == 0 {
		return Routes{}, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, apperror.New(apperror.CodeInvalidRoute, apperror.WithCause(err), apperror.WithContext(err.Error()))
	}
	return ParseRoutes(v), nil
}

// ParseRoutes flattens paths -> hops -> protocol entries. Anything that is
// not the expected array or object is skipped, and paths left with no steps
// are dropped.
func ParseRoutes(v any) Routes {
	paths, ok := v.([]any)
	if !ok {
		return Routes{}
	}

	routes := make(Routes, 0, len(paths))
	for _, p := range paths {
		hops, ok := p.([]any)
		if !ok {
			continue
		}

		var steps []RouteStep
		for _, h := range hops {
			entries, ok := h.([]any)
			if !ok {
				continue
			}
			for _, e := range entries {
				obj, ok := e.(map[string]any)
				if !ok {
					continue
				}
				steps = append(steps, stepFrom(obj))
			}
		}

		if len(steps) > 0 {
			routes = append(routes, Path{Steps: steps})
		}
	}
	return routes
}

func stepFrom(obj map[string]any) RouteStep {
	step := RouteStep{Protocol: unknownProtocol, Part: decimal.Zero}
	if name, ok := obj["name"].(string); ok && name != "" {
		step.Protocol = name
	}
	switch part := obj["part"].(type) {
	case float64:
		step.Part = decimal.NewFromFloat(part)
	case string:
		if d, err := decimal.NewFromString(part); err == nil {
			step.Part = d
		}
	}
	if s, ok := obj["fromTokenAddress"].(string); ok {
		step.FromToken = s
	}
	if s, ok := obj["toTokenAddress"].(string); ok {
		step.ToToken = s
	}
	return step
}

// StepCount is the total number of steps across all paths.
func (r Routes) StepCount() int {
	n := 0
	for _, p := range r {
		n += len(p.Steps)
	}
	return n
}

// UniqueProtocols lists each protocol name once, in first-seen order.
func (r Routes) UniqueProtocols() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range r {
		for _, s := range p.Steps {
			if _, ok := seen[s.Protocol]; ok {
				continue
			}
			seen[s.Protocol] = struct{}{}
			out = append(out, s.Protocol)
		}
	}
	return out
}

// IntermediateTokens lists the hop endpoints that are neither src nor dst,
// compared case-insensitively, in first-seen order.
func (r Routes) IntermediateTokens(src, dst string) []string {
	seen := map[string]struct{}{
		strings.ToLower(src): {},
		strings.ToLower(dst): {},
	}
	out := []string{}
	add := func(tok string) {
		if tok == "" {
			return
		}
		key := strings.ToLower(tok)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, tok)
	}
	for _, p := range r {
		for _, s := range p.Steps {
			add(s.FromToken)
			add(s.ToToken)
		}
	}
	return out
}

// Distribution sums each protocol's part over all steps, largest first.
// Ties keep first-seen order.
func (r Routes) Distribution() []ProtocolShare {
	index := make(map[string]int)
	var shares []ProtocolShare
	for _, p := range r {
		for _, s := range p.Steps {
			i, ok := index[s.Protocol]
			if !ok {
				i = len(shares)
				index[s.Protocol] = i
				shares = append(shares, ProtocolShare{Protocol: s.Protocol, Percentage: decimal.Zero})
			}
			shares[i].Percentage = shares[i].Percentage.Add(s.Part)
		}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage.GreaterThan(shares[j].Percentage)
	})
	if shares == nil {
		shares = []ProtocolShare{}
	}
	return shares
}

// EstimateGas applies the default gas heuristic. The figure is a rough
// guide and not derived from the chain.
func (r Routes) EstimateGas() uint64 {
	return r.EstimateGasWith(DefaultGasWeights)
}

// EstimateGasWith applies w to the step and unique protocol counts.
func (r Routes) EstimateGasWith(w GasWeights) uint64 {
	return w.Base +
		uint64(r.StepCount())*w.PerStep +
		uint64(len(r.UniqueProtocols()))*w.PerProtocol
}

// IsDirect reports a single path holding a single step.
func (r Routes) IsDirect() bool {
	return len(r) == 1 && len(r[0].Steps) == 1
}

// IncludesProtocol reports whether any step's protocol contains name,
// ignoring case.
func (r Routes) IncludesProtocol(name string) bool {
	needle := strings.ToLower(name)
	for _, p := range r {
		for _, s := range p.Steps {
			if strings.Contains(strings.ToLower(s.Protocol), needle) {
				return true
			}
		}
	}
	return false
}

// Format renders "UNISWAP_V3 (60%) -> CURVE (40%) | ...".
func (r Routes) Format() string {
	paths := make([]string, 0, len(r))
	for _, p := range r {
		steps := make([]string, 0, len(p.Steps))
		for _, s := range p.Steps {
			steps = append(steps, fmt.Sprintf("%s (%s%%)", s.Protocol, s.Part.String()))
		}
		paths = append(paths, strings.Join(steps, " -> "))
	}
	return strings.Join(paths, " | ")
}

// ValidateTokenPath checks every path starts at from and reaches to. A path
// whose last step does not end at to is still accepted when to appears
// somewhere along it.
func ValidateTokenPath(from, to string, r Routes) bool {
	if len(r) == 0 {
		return false
	}
	for _, p := range r {
		if len(p.Steps) == 0 {
			return false
		}
		if !strings.EqualFold(p.Steps[0].FromToken, from) {
			return false
		}
		if strings.EqualFold(p.Steps[len(p.Steps)-1].ToToken, to) {
			continue
		}
		found := false
		for _, s := range p.Steps {
			if strings.EqualFold(s.FromToken, to) || strings.EqualFold(s.ToToken, to) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RouteAnalysis summarizes a parsed route.
type RouteAnalysis struct {
	Paths              int             `json:"paths"`
	Steps              int             `json:"steps"`
	Protocols          []string        `json:"protocols"`
	IntermediateTokens []string        `json:"intermediateTokens"`
	Distribution       []ProtocolShare `json:"distribution"`
	EstimatedGas       uint64          `json:"estimatedGas"`
	IsDirect           bool            `json:"isDirect"`
	Summary            string          `json:"summary"`
}

// Analyze collects the route figures in one value.
func (r Routes) Analyze(src, dst string, w GasWeights) RouteAnalysis {
	return RouteAnalysis{
		Paths:              len(r),
		Steps:              r.StepCount(),
		Protocols:          r.UniqueProtocols(),
		IntermediateTokens: r.IntermediateTokens(src, dst),
		Distribution:       r.Distribution(),
		EstimatedGas:       r.EstimateGasWith(w),
		IsDirect:           r.IsDirect(),
		Summary:            r.Format(),
	}
}
