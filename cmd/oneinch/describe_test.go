package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, descriptions()))

	var out struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
		Credentials []struct {
			Name string `json:"name"`
		} `json:"credentials"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Nodes, 2)
	assert.NotEqual(t, out.Nodes[0].Name, out.Nodes[1].Name)
	assert.Len(t, out.Credentials, 3)
}
