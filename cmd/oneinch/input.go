package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
)

// readItems decodes the -input value: a JSON array of parameter objects, a
// single object, or "-" to read either from stdin. Empty input is one item
// with no parameters.
func readItems(input string, stdin io.Reader) ([]domain.Params, error) {
	raw := []byte(strings.TrimSpace(input))
	if input == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		raw = bytes.TrimSpace(b)
	}
	if len(raw) == 0 {
		return []domain.Params{{}}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if raw[0] == '{' {
		var item domain.Params
		if err := dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("decoding input object: %w", err)
		}
		return []domain.Params{item}, nil
	}

	var items []domain.Params
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding input array: %w", err)
	}
	for i := range items {
		if items[i] == nil {
			items[i] = domain.Params{}
		}
	}
	return items, nil
}

// writeRecords prints the records as an indented JSON array.
func writeRecords(w io.Writer, records any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
