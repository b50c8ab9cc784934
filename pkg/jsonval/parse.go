package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxDepth is the maximum nesting depth Parse accepts. Deeper inputs
// fail with a ParseError rather than exhausting the stack.
const MaxDepth = 128

// ParseError describes malformed JSON input.
type ParseError struct {
	// Offset is the byte position in the input where parsing failed.
	Offset int64
	// Reason describes what went wrong.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("json parse error at offset %d: %s", e.Offset, e.Reason)
}

// Parse decodes UTF-8 JSON bytes into a Value tree.
//
// Number literals are preserved exactly as they appear in the input.
// Parse fails with a *ParseError on malformed input, trailing data
// after the first value, or nesting deeper than MaxDepth.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec, 0)
	if err != nil {
		return Value{}, err
	}

	// Anything after the first value is an error.
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, &ParseError{Offset: dec.InputOffset(), Reason: "trailing data after value"}
	}

	return v, nil
}

func parseValue(dec *json.Decoder, depth int) (Value, error) {
	if depth >= MaxDepth {
		return Value{}, &ParseError{Offset: dec.InputOffset(), Reason: "maximum nesting depth exceeded"}
	}

	tok, err := dec.Token()
	if err != nil {
		return Value{}, parseErrorFrom(dec, err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, parseErrorFrom(dec, err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, &ParseError{Offset: dec.InputOffset(), Reason: "object key is not a string"}
				}
				val, err := parseValue(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			// Consume the closing '}'.
			if _, err := dec.Token(); err != nil {
				return Value{}, parseErrorFrom(dec, err)
			}
			return ObjectValue(obj), nil
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := parseValue(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			// Consume the closing ']'.
			if _, err := dec.Token(); err != nil {
				return Value{}, parseErrorFrom(dec, err)
			}
			return Array(items...), nil
		default:
			return Value{}, &ParseError{Offset: dec.InputOffset(), Reason: fmt.Sprintf("unexpected delimiter %q", t.String())}
		}
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	default:
		return Value{}, &ParseError{Offset: dec.InputOffset(), Reason: fmt.Sprintf("unexpected token %v", tok)}
	}
}

func parseErrorFrom(dec *json.Decoder, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Offset: syntaxErr.Offset, Reason: syntaxErr.Error()}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{Offset: dec.InputOffset(), Reason: "unexpected end of input"}
	}
	return &ParseError{Offset: dec.InputOffset(), Reason: err.Error()}
}
