// Package llmjson recovers a JSON object from free-form model output.
//
// Models tend to wrap the requested object in prose or markdown fences, so
// the object is taken to be everything from the first '{' to the last '}'.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// snippetLimit bounds the raw text carried by MalformedError.
const snippetLimit = 256

var (
	ErrNoJSONObject  = errors.New("no JSON object found in model response")
	ErrMalformedJSON = errors.New("malformed JSON in model response")
)

// MalformedError is returned when the braced substring is not valid JSON.
type MalformedError struct {
	Snippet string
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedJSON.Error(), e.Err)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedJSON
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Extract returns the substring from the first '{' to the last '}' of raw,
// inclusive, after checking that it is a valid JSON document.
func Extract(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < 0 || start >= end {
		return "", ErrNoJSONObject
	}

	candidate := raw[start : end+1]
	if !json.Valid([]byte(candidate)) {
		var probe any
		err := json.Unmarshal([]byte(candidate), &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return "", &MalformedError{Snippet: Excerpt(candidate), Err: err}
	}

	return candidate, nil
}

// Decode extracts the JSON object from raw and decodes it into T. Unknown
// fields are ignored and absent ones are left zero. A field whose JSON type
// does not match T is left zero as well; the rest of the object still
// decodes. Errors raised by field decoders, such as closed enumeration
// checks, are returned unchanged.
func Decode[T any](raw string) (*T, error) {
	out, _, err := DecodeObject[T](raw)
	return out, err
}

// DecodeObject is Decode that also returns the extracted object exactly as
// the model wrote it.
func DecodeObject[T any](raw string) (*T, json.RawMessage, error) {
	body, err := Extract(raw)
	if err != nil {
		return nil, nil, err
	}

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, nil, err
		}
	}
	return &out, json.RawMessage(body), nil
}

// Snippet returns the diagnostic excerpt carried by err, if any.
func Snippet(err error) (string, bool) {
	var malformed *MalformedError
	if errors.As(err, &malformed) {
		return malformed.Snippet, true
	}
	return "", false
}

// Excerpt cuts s to at most 256 bytes on a rune boundary.
func Excerpt(s string) string {
	if len(s) <= snippetLimit {
		return s
	}
	// avoid cutting a multi-byte rune in half
	cut := snippetLimit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
