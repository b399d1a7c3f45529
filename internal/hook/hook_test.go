package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPrompt string
		wantErr    bool
	}{
		{"prompt", `{"prompt":"fix typo"}`, "fix typo", false},
		{"extra fields", `{"session_id":"abc","prompt":"hi","cwd":"/tmp"}`, "hi", false},
		{"missing prompt", `{}`, "", false},
		{"null prompt", `{"prompt":null}`, "", false},
		{"non-string prompt", `{"prompt":42}`, "", false},
		{"malformed", `{"prompt":`, "", true},
		{"empty input", ``, "", true},
		{"not an object", `["prompt"]`, "", true},
		{"null", `null`, "", true},
		{"trailing brace", `{"prompt":"fix typo"}}`, "", true},
		{"trailing garbage", `{"prompt":"fix typo"} garbage`, "", true},
		{"second object", `{"prompt":"a"}{"prompt":"b"}`, "", true},
		{"trailing newline", "{\"prompt\":\"fix typo\"}\n", "fix typo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadInput(strings.NewReader(tt.input))
			if tt.wantErr {
				var inputErr *InputError
				if !errors.As(err, &inputErr) {
					t.Fatalf("expected *InputError, got %v", err)
				}
				if !strings.HasPrefix(err.Error(), "Invalid JSON input: ") {
					t.Errorf("unexpected message %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if in.Prompt != tt.wantPrompt {
				t.Errorf("Prompt = %q, want %q", in.Prompt, tt.wantPrompt)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, UserPromptSubmit, "\n## Heading <b> & more"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"hookSpecificOutput":{"hookEventName":"UserPromptSubmit","additionalContext":"\n## Heading <b> & more"}}` + "\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}

	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.HookSpecificOutput.HookEventName != UserPromptSubmit {
		t.Errorf("unexpected event %q", out.HookSpecificOutput.HookEventName)
	}
}

func TestWrite_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, PrePromptSubmit, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"additionalContext":""`) {
		t.Errorf("expected empty context, got %s", buf.String())
	}
}
