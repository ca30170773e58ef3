package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

// Params are the parameters of one input item, as decoded from JSON.
// Numbers may arrive as float64, json.Number or strings.
type Params map[string]any

// Has reports whether name is set to a non-empty value.
func (p Params) Has(name string) bool {
	v, ok := p[name]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// String returns the parameter rendered as a trimmed string, "" when unset.
func (p Params) String(name string) string {
	switch v := p[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Require returns the parameter as a string or a MISSING_PARAMETER error.
func (p Params) Require(name string) (string, error) {
	if !p.Has(name) {
		return "", apperror.Validation(apperror.CodeMissingParameter, name)
	}
	return p.String(name), nil
}

// Decimal parses the parameter, returning def when unset.
func (p Params) Decimal(name string, def decimal.Decimal) (decimal.Decimal, error) {
	if !p.Has(name) {
		return def, nil
	}
	d, err := decimal.NewFromString(p.String(name))
	if err != nil {
		return decimal.Zero, invalid(name, p.String(name))
	}
	return d, nil
}

// Int parses an integer parameter, returning def when unset.
func (p Params) Int(name string, def int) (int, error) {
	if !p.Has(name) {
		return def, nil
	}
	d, err := p.Decimal(name, decimal.Zero)
	if err != nil || !d.IsInteger() || d.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, invalid(name, p.String(name))
	}
	return int(d.IntPart()), nil
}

// Uint parses a non-negative integer parameter, returning def when unset.
func (p Params) Uint(name string, def uint64) (uint64, error) {
	if !p.Has(name) {
		return def, nil
	}
	v, err := strconv.ParseUint(p.String(name), 10, 64)
	if err != nil {
		return 0, invalid(name, p.String(name))
	}
	return v, nil
}

// Bool parses a boolean parameter, returning def when unset.
func (p Params) Bool(name string, def bool) (bool, error) {
	if !p.Has(name) {
		return def, nil
	}
	if b, ok := p[name].(bool); ok {
		return b, nil
	}
	b, err := strconv.ParseBool(p.String(name))
	if err != nil {
		return false, invalid(name, p.String(name))
	}
	return b, nil
}

// List returns a list parameter. Arrays and comma separated strings are
// both accepted; blank entries are dropped.
func (p Params) List(name string) []string {
	var raw []string
	switch v := p[name].(type) {
	case nil:
		return nil
	case []any:
		for _, e := range v {
			raw = append(raw, fmt.Sprint(e))
		}
	case []string:
		raw = v
	default:
		raw = strings.Split(p.String(name), ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Object returns a nested parameter collection, empty when unset.
func (p Params) Object(name string) Params {
	switch v := p[name].(type) {
	case map[string]any:
		return Params(v)
	case Params:
		return v
	}
	return Params{}
}

// Raw re-encodes the parameter as JSON. A string holding JSON is passed
// through as is.
func (p Params) Raw(name string) (json.RawMessage, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return nil, apperror.Validation(apperror.CodeMissingParameter, name)
	}
	if s, isString := v.(string); isString {
		if !json.Valid([]byte(s)) {
			return nil, invalid(name, "not valid JSON")
		}
		return json.RawMessage(s), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, invalid(name, err.Error())
	}
	return b, nil
}

// Decode unmarshals the parameter into out.
func (p Params) Decode(name string, out any) error {
	raw, err := p.Raw(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return invalid(name, err.Error())
	}
	return nil
}

func invalid(name, value string) error {
	return apperror.Validation(apperror.CodeInvalidInput, fmt.Sprintf("invalid %s: %s", name, value))
}
