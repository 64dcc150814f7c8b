package oracle

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fences", in: `{"a":1}`, want: `{"a":1}`},
		{name: "plain fences", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "json language tag", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
		{name: "fence on same line", in: "```{\"a\":1}```", want: `{"a":1}`},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Score int `json:"score"`
	}

	if err := DecodeJSON("```json\n{\"score\": 88}\n```", &out); err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if out.Score != 88 {
		t.Errorf("score = %d, want 88", out.Score)
	}

	if err := DecodeJSON("I think the score is about 90.", &out); err == nil {
		t.Error("DecodeJSON() = nil error for prose output")
	}
}
