package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors" // Standard errors package
	"github.com/mcncl/rrapi/internal/errors" // Custom errors package
	"github.com/mcncl/rrapi/internal/models"
)

// MaxDepth is the deepest nesting of objects and arrays Parse accepts.
const MaxDepth = 10000

// Parse converts a single JSON document from reader into a models.JSONValue.
// Object members keep their document order and numbers keep their original
// text as json.Number.
func Parse(reader io.Reader) (models.JSONValue, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, wrapDecodeError(err)
	}

	root, err := decodeValue(decoder, tok, 1)
	if err != nil {
		return nil, err
	}

	// Anything other than EOF after the root value means a second document
	// or garbage.
	if _, err := decoder.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
		}
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return root, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.JSONValue, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewParsingError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// decodeValue builds the value that starts with tok, consuming the rest of it
// from decoder.
func decodeValue(decoder *json.Decoder, tok json.Token, depth int) (models.JSONValue, error) {
	switch v := tok.(type) {
	case json.Delim:
		if depth > MaxDepth {
			return nil, errors.NewParsingError(
				fmt.Sprintf("nesting exceeds %d levels at offset %d", MaxDepth, decoder.InputOffset()),
				errors.ErrTooDeep,
			)
		}
		switch v {
		case '{':
			return decodeObject(decoder, depth)
		case '[':
			return decodeArray(decoder, depth)
		default:
			return nil, errors.NewParsingError(
				fmt.Sprintf("unexpected %q at offset %d", rune(v), decoder.InputOffset()),
				errors.ErrInvalidJSON,
			)
		}
	case string, json.Number, bool, nil:
		return v, nil
	default:
		return models.Undefined{}, nil
	}
}

func decodeObject(decoder *json.Decoder, depth int) (models.JSONValue, error) {
	obj := models.JSONObject{}
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, wrapDecodeError(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.NewParsingError(
				fmt.Sprintf("object key is not a string at offset %d", decoder.InputOffset()),
				errors.ErrInvalidJSON,
			)
		}

		valTok, err := decoder.Token()
		if err != nil {
			return nil, wrapDecodeError(err)
		}
		value, err := decodeValue(decoder, valTok, depth+1)
		if err != nil {
			return nil, err
		}
		obj = append(obj, models.JSONMember{Key: key, Value: value})
	}
	if err := expectDelim(decoder, '}'); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(decoder *json.Decoder, depth int) (models.JSONValue, error) {
	arr := models.JSONArray{}
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, wrapDecodeError(err)
		}
		value, err := decodeValue(decoder, tok, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if err := expectDelim(decoder, ']'); err != nil {
		return nil, err
	}
	return arr, nil
}

func expectDelim(decoder *json.Decoder, want json.Delim) error {
	tok, err := decoder.Token()
	if err != nil {
		return wrapDecodeError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.NewParsingError(
			fmt.Sprintf("expected %q at offset %d", rune(want), decoder.InputOffset()),
			errors.ErrInvalidJSON,
		)
	}
	return nil
}

func wrapDecodeError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}
