package cryptox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Canonicalize renders v as canonical JSON: object members sorted by key at
// every level, no insignificant whitespace and no HTML escaping. Numbers keep
// their original textual form. Top-level members named in omit are dropped;
// this is how a document's own signature is excluded from the signed bytes.
//
// v must marshal to a JSON object.
func Canonicalize(v any, omit ...string) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("canonicalize: document is not a JSON object: %w", err)
	}
	for _, k := range omit {
		delete(obj, k)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(obj); err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}
