package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

func decodeParams(t *testing.T, raw string) Params {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var p Params
	require.NoError(t, dec.Decode(&p))
	return p
}

func TestParamsScalars(t *testing.T) {
	p := decodeParams(t, `{"amount":"1000000","slippage":0.5,"limit":25,"flag":"true","on":true,"blank":"  ","big":1e30}`)

	assert.True(t, p.Has("amount"))
	assert.False(t, p.Has("blank"))
	assert.False(t, p.Has("missing"))
	assert.Equal(t, "1000000", p.String("amount"))

	s, err := p.Decimal("slippage", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "0.5", s.String())

	def, err := p.Decimal("missing", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "1", def.String())

	n, err := p.Int("limit", 10)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	_, err = p.Int("slippage", 10)
	assert.Equal(t, apperror.CodeInvalidInput, apperror.GetCode(err))
	_, err = p.Int("big", 10)
	assert.Error(t, err)

	b, err := p.Bool("flag", false)
	require.NoError(t, err)
	assert.True(t, b)
	b, err = p.Bool("on", false)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = p.Require("blank")
	assert.Equal(t, apperror.CodeMissingParameter, apperror.GetCode(err))
	assert.Equal(t, "Missing required parameter: blank", err.Error())
}

func TestParamsList(t *testing.T) {
	p := decodeParams(t, `{"csv":"a, b,,c","arr":["x"," y "],"one":"z"}`)
	assert.Equal(t, []string{"a", "b", "c"}, p.List("csv"))
	assert.Equal(t, []string{"x", "y"}, p.List("arr"))
	assert.Equal(t, []string{"z"}, p.List("one"))
	assert.Nil(t, p.List("missing"))
}

func TestParamsRawAndDecode(t *testing.T) {
	p := decodeParams(t, `{"obj":{"salt":"1"},"str":"{\"salt\":\"2\"}","bad":"{nope","opts":{"fee":1}}`)

	var out struct {
		Salt string `json:"salt"`
	}
	require.NoError(t, p.Decode("obj", &out))
	assert.Equal(t, "1", out.Salt)
	require.NoError(t, p.Decode("str", &out))
	assert.Equal(t, "2", out.Salt)

	_, err := p.Raw("bad")
	assert.Equal(t, apperror.CodeInvalidInput, apperror.GetCode(err))
	_, err = p.Raw("missing")
	assert.Equal(t, apperror.CodeMissingParameter, apperror.GetCode(err))

	assert.Equal(t, "1", p.Object("opts").String("fee"))
	assert.Empty(t, p.Object("missing"))
}
