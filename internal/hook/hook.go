// Package hook implements the JSON framing used by assistant hook events.
package hook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Hook event names.
const (
	UserPromptSubmit = "UserPromptSubmit"
	PrePromptSubmit  = "PrePromptSubmit"
)

// Input is the payload a hook receives on stdin. Unknown fields are ignored.
type Input struct {
	Prompt string `json:"prompt"`
}

// Output is the payload a hook writes to stdout.
type Output struct {
	HookSpecificOutput SpecificOutput `json:"hookSpecificOutput"`
}

// SpecificOutput carries the context injected for a hook event.
type SpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// InputError reports a payload that is not a valid JSON object.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("Invalid JSON input: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ReadInput decodes a single JSON object from r.
func ReadInput(r io.Reader) (Input, error) {
	dec := json.NewDecoder(r)

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return Input{}, &InputError{Err: err}
	}
	if raw == nil {
		return Input{}, &InputError{Err: errors.New("expected an object, got null")}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("extra data after object")
		}
		return Input{}, &InputError{Err: err}
	}

	var in Input
	if p, ok := raw["prompt"]; ok {
		// Non-string prompts are treated as absent.
		_ = json.Unmarshal(p, &in.Prompt)
	}
	return in, nil
}

// Write encodes the output for event with the given context to w.
func Write(w io.Writer, event, context string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	out := Output{
		HookSpecificOutput: SpecificOutput{
			HookEventName:     event,
			AdditionalContext: context,
		},
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write hook output: %w", err)
	}
	return nil
}
