package sections

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
)

// Document is the free-form content of a section: a JSON object whose values
// are strings, json.Number, bools, nil, []any or nested map[string]any.
type Document map[string]any

// Encode serializes doc for storage. A nil document is stored as an empty object.
func Encode(doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, apperrors.Validationf("document cannot be serialized: %v", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a stored document. Anything other than exactly one JSON object is an integrity failure.
func Decode(raw []byte) (Document, error) {
	value, err := DecodeValue(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIntegrity, err)
	}
	doc, ok := AsDocument(value)
	if !ok {
		return nil, fmt.Errorf("%w: stored value is %s, not an object", apperrors.ErrIntegrity, kindOf(value))
	}
	return doc, nil
}

// DecodeValue reads a single JSON value from r, keeping numbers as json.Number.
// Input that is not valid UTF-8 is rejected rather than decoded with replacement characters.
func DecodeValue(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, apperrors.Validationf("invalid JSON: input is not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !apperrors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return value, nil
}

// AsDocument reports whether value is a JSON object and returns it as a Document.
func AsDocument(value any) (Document, bool) {
	switch v := value.(type) {
	case Document:
		return v, v != nil
	case map[string]any:
		return Document(v), v != nil
	default:
		return nil, false
	}
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", value)
	}
}
