package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/eth2030/headerid/core/types"
)

var errNoHeaders = errors.New("no headers in input")

// readHeaders decodes one header object or an array of header objects.
func readHeaders(r io.Reader) ([]*types.Header, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errNoHeaders
	}
	if data[0] == '[' {
		var headers []*types.Header
		if err := json.Unmarshal(data, &headers); err != nil {
			return nil, err
		}
		if len(headers) == 0 {
			return nil, errNoHeaders
		}
		return headers, nil
	}
	h := new(types.Header)
	if err := json.Unmarshal(data, h); err != nil {
		return nil, err
	}
	return []*types.Header{h}, nil
}

// loadHeaders reads headers from each named file in order, or from stdin
// when no file is named.
func (a *app) loadHeaders(files []string) ([]*types.Header, error) {
	if len(files) == 0 {
		headers, err := readHeaders(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return headers, nil
	}
	var all []*types.Header
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		headers, err := readHeaders(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		a.log.Debug("Headers loaded", "file", name, "count", len(headers))
		all = append(all, headers...)
	}
	return all, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
