package app

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
)

// input reads typed parameters and keeps the first error, so handlers can
// read every field and check once.
type input struct {
	p   domain.Params
	err error
}

func read(p domain.Params) *input {
	return &input{p: p}
}

func (in *input) str(name string) string {
	return in.p.String(name)
}

func (in *input) decimal(name string, def decimal.Decimal) decimal.Decimal {
	if in.err != nil {
		return def
	}
	v, err := in.p.Decimal(name, def)
	in.err = err
	return v
}

func (in *input) int(name string, def int) int {
	if in.err != nil {
		return def
	}
	v, err := in.p.Int(name, def)
	in.err = err
	return v
}

func (in *input) uint(name string, def uint64) uint64 {
	if in.err != nil {
		return def
	}
	v, err := in.p.Uint(name, def)
	in.err = err
	return v
}

func (in *input) bool(name string, def bool) bool {
	if in.err != nil {
		return def
	}
	v, err := in.p.Bool(name, def)
	in.err = err
	return v
}

func (in *input) optInt(name string) *int {
	if !in.p.Has(name) {
		return nil
	}
	v := in.int(name, 0)
	return &v
}

func (in *input) optUint(name string) *uint64 {
	if !in.p.Has(name) {
		return nil
	}
	v := in.uint(name, 0)
	return &v
}

func (in *input) optBool(name string) *bool {
	if !in.p.Has(name) {
		return nil
	}
	v := in.bool(name, false)
	return &v
}

func (in *input) decode(name string, out any) {
	if in.err != nil {
		return
	}
	in.err = in.p.Decode(name, out)
}
