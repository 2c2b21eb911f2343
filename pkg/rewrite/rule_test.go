package rewrite

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSet_Apply(t *testing.T) {
	tests := []struct {
		name        string
		rules       []Rule
		text        string
		params      Params
		want        string
		wantApplied []string
		wantCount   int
		wantChanged bool
	}{
		{
			name: "simple_replacement",
			rules: []Rule{
				{Name: "swap", Pattern: regexp.MustCompile(`World`), Replace: "Universe"},
			},
			text:        "Hello World",
			want:        "Hello Universe",
			wantApplied: []string{"swap"},
			wantCount:   1,
			wantChanged: true,
		},
		{
			name: "all_occurrences_rewritten",
			rules: []Rule{
				{Name: "swap", Pattern: regexp.MustCompile(`World`), Replace: "Universe"},
			},
			text:        "World World World",
			want:        "Universe Universe Universe",
			wantApplied: []string{"swap"},
			wantCount:   3,
			wantChanged: true,
		},
		{
			name: "later_rules_see_earlier_output",
			rules: []Rule{
				{Name: "first", Pattern: regexp.MustCompile(`a`), Replace: "b"},
				{Name: "second", Pattern: regexp.MustCompile(`bb`), Replace: "c"},
			},
			text:        "ab",
			want:        "c",
			wantApplied: []string{"first", "second"},
			wantCount:   2,
			wantChanged: true,
		},
		{
			name: "no_match_is_silent_noop",
			rules: []Rule{
				{Name: "swap", Pattern: regexp.MustCompile(`missing`), Replace: "found"},
			},
			text:        "Hello World",
			want:        "Hello World",
			wantChanged: false,
		},
		{
			name: "capture_group_reference",
			rules: []Rule{
				{Name: "wrap", Pattern: regexp.MustCompile(`'([^']+)'`), Replace: "<$1>"},
			},
			text:        "say 'hi' and 'bye'",
			want:        "say <hi> and <bye>",
			wantApplied: []string{"wrap"},
			wantCount:   2,
			wantChanged: true,
		},
		{
			name: "placeholder_expansion",
			rules: []Rule{
				{Name: "desc", Pattern: regexp.MustCompile(`DESC`), Replace: "'{description}'"},
			},
			text:        "DESC",
			params:      Params{Description: "Post-processing layer"},
			want:        "'Post-processing layer'",
			wantApplied: []string{"desc"},
			wantCount:   1,
			wantChanged: true,
		},
		{
			name: "placeholder_escapes_apostrophes",
			rules: []Rule{
				{Name: "desc", Pattern: regexp.MustCompile(`DESC`), Replace: "'{description}'"},
			},
			text:        "DESC",
			params:      Params{Description: "the layer's job"},
			want:        `'the layer\'s job'`,
			wantApplied: []string{"desc"},
			wantCount:   1,
			wantChanged: true,
		},
		{
			name: "placeholder_value_dollar_is_literal",
			rules: []Rule{
				{Name: "desc", Pattern: regexp.MustCompile(`(D)ESC`), Replace: "$1:{description}"},
			},
			text:        "DESC",
			params:      Params{Description: "costs $5"},
			want:        "D:costs $5",
			wantApplied: []string{"desc"},
			wantCount:   1,
			wantChanged: true,
		},
		{
			name:        "empty_rule_set",
			rules:       nil,
			text:        "Hello World",
			want:        "Hello World",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRuleSet(tt.rules...)
			got, result := rs.Apply(context.Background(), tt.text, tt.params)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantApplied, result.Applied)
			assert.Equal(t, tt.wantCount, result.Count)
			assert.Equal(t, tt.wantChanged, result.Changed)
		})
	}
}

func TestRuleSet_Validate(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []Rule{
				{Name: "ok", Pattern: regexp.MustCompile(`(a)(b)`), Replace: "$2$1"},
			},
		},
		{
			name: "missing_name",
			rules: []Rule{
				{Pattern: regexp.MustCompile(`a`), Replace: "b"},
			},
			wantError: "name is required",
		},
		{
			name: "missing_pattern",
			rules: []Rule{
				{Name: "broken"},
			},
			wantError: "pattern is required",
		},
		{
			name: "group_reference_out_of_range",
			rules: []Rule{
				{Name: "arity", Pattern: regexp.MustCompile(`(a)`), Replace: "$1 $2"},
			},
			wantError: "template references group $2 but pattern has 1 groups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRuleSet(tt.rules...).Validate()

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestEscapeDart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "apostrophe", in: "it's", want: `it\'s`},
		{name: "backslash_first", in: `a\'b`, want: `a\\\'b`},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeDart(tt.in))
		})
	}
}
