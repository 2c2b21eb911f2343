package rewrite

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceBlock(t *testing.T) {
	spec := BlockSpec{
		Name:     "helper",
		Open:     regexp.MustCompile(`int helper\(`),
		Template: "int helper() {\n  return 42;\n}",
	}

	tests := []struct {
		name      string
		text      string
		spec      BlockSpec
		params    Params
		want      string
		wantFound bool
	}{
		{
			name:      "flat_body",
			text:      "before\nint helper(int x) {\n  return x;\n}\nafter",
			spec:      spec,
			want:      "before\nint helper() {\n  return 42;\n}\nafter",
			wantFound: true,
		},
		{
			name: "nested_delimiters_resolve_true_end",
			text: "int helper(int x) {\n" +
				"  if (x > 0) {\n" +
				"    return x;\n" +
				"  } else {\n" +
				"    return -x;\n" +
				"  }\n" +
				"}\ntrailing",
			spec:      spec,
			want:      "int helper() {\n  return 42;\n}\ntrailing",
			wantFound: true,
		},
		{
			name:      "not_found_returns_input_unchanged",
			text:      "nothing to see here",
			spec:      spec,
			want:      "nothing to see here",
			wantFound: false,
		},
		{
			name:      "missing_body_brace_is_noop",
			text:      "int helper(int x);",
			spec:      spec,
			want:      "int helper(int x);",
			wantFound: false,
		},
		{
			name:      "unbalanced_body_is_noop",
			text:      "int helper(int x) {\n  if (x) {\n    return x;\n",
			spec:      spec,
			want:      "int helper(int x) {\n  if (x) {\n    return x;\n",
			wantFound: false,
		},
		{
			name: "first_match_only",
			text: "int helper(int x) {\n  return x;\n}\n" +
				"int helper(int y) {\n  return y;\n}\n",
			spec: spec,
			want: "int helper() {\n  return 42;\n}\n" +
				"int helper(int y) {\n  return y;\n}\n",
			wantFound: true,
		},
		{
			name: "template_params_expanded",
			text: "int helper(int x) {\n  return x;\n}",
			spec: BlockSpec{
				Name:     "helper",
				Open:     regexp.MustCompile(`int helper\(`),
				Template: "String describe() => '{description}';",
			},
			params:    Params{Description: "it's nested"},
			want:      `String describe() => 'it\'s nested';`,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ReplaceBlock(context.Background(), tt.text, tt.spec, tt.params)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestMatchingBrace(t *testing.T) {
	tests := []struct {
		name string
		text string
		open int
		want int
	}{
		{name: "flat", text: "{abc}", open: 0, want: 4},
		{name: "nested", text: "{a{b}c}", open: 0, want: 6},
		{name: "offset_open", text: "xx{a{}{}b}", open: 2, want: 9},
		{name: "never_closed", text: "{a{b}", open: 0, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchingBrace(tt.text, tt.open))
		})
	}
}
