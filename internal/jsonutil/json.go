// Package jsonutil holds the JSON encoding settings used for data files.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrNilDestination = errors.New("jsonutil: nil destination pointer")

// Marshal encodes v as compact JSON followed by a newline. Non-ASCII text and
// the characters <, > and & are written literally.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("jsonutil: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single JSON document into v.
//
// Numbers decoded into interface values keep their exact value: integers
// become int64 (uint64 above its range), everything else float64.
func Unmarshal(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("jsonutil: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("jsonutil: invalid character after top-level value")
	}

	if p, ok := v.(*any); ok {
		normalized, err := normalizeNumbers(*p)
		if err != nil {
			return fmt.Errorf("jsonutil: %w", err)
		}
		*p = normalized
	}
	return nil
}

// normalizeNumbers replaces every json.Number in a generic value.
func normalizeNumbers(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		return number(t)
	case map[string]any:
		for k, e := range t {
			n, err := normalizeNumbers(e)
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	case []any:
		for i, e := range t {
			n, err := normalizeNumbers(e)
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	default:
		return v, nil
	}
}

func number(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u, nil
	}
	return n.Float64()
}
