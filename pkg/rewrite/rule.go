// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rewrite

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🧬 Params holds the per-entity values substituted into rule templates
type Params struct {
	Name        string // Entity class name (e.g. PostProcessingLayer)
	Description string // Human-readable description, may contain apostrophes
	Priority    string // Priority enum label (e.g. postProcessing)
}

// 🔄 Rule is a single matcher + replacement-template pair
type Rule struct {
	Name    string         // Short identifier used in reports and logs
	Pattern *regexp.Regexp // Matcher over the current buffer
	Replace string         // Template; may use $1 refs and {name}/{description}/{priority}
}

// 📊 Result records what a RuleSet application did to a buffer
type Result struct {
	Applied []string // Names of rules that matched at least once
	Count   int      // Total number of matches rewritten
	Changed bool     // Whether the buffer differs from the input
}

// 📚 RuleSet is an ordered list of rules applied in sequence to one buffer.
// Each rule scans the whole current buffer, so later rules see the effects
// of earlier ones. A rule that matches nothing is a silent no-op.
type RuleSet struct {
	rules []Rule
}

// 🏭 NewRuleSet creates a rule set from an ordered list of rules
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// 📏 Len returns the number of rules in the set
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// 🏃 Apply runs every rule in order against text and returns the rewritten
// buffer. Rules rewrite all occurrences of their pattern.
func (rs *RuleSet) Apply(ctx context.Context, text string, params Params) (string, *Result) {
	logger := zerolog.Ctx(ctx)
	result := &Result{}

	current := text
	for _, rule := range rs.rules {
		matches := rule.Pattern.FindAllStringIndex(current, -1)
		if len(matches) == 0 {
			continue
		}

		replacement := expandPlaceholders(rule.Replace, params)
		current = rule.Pattern.ReplaceAllString(current, replacement)

		result.Applied = append(result.Applied, rule.Name)
		result.Count += len(matches)
		logger.Debug().
			Str("rule", rule.Name).
			Int("matches", len(matches)).
			Msg("rule applied")
	}

	result.Changed = current != text
	return current, result
}

// ✅ Validate checks that every capture-group reference in each rule's
// template is satisfied by its pattern. Template arity errors are defects
// caught here, at construction time, never at apply time.
func (rs *RuleSet) Validate() error {
	for i, rule := range rs.rules {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if rule.Pattern == nil {
			return errors.Errorf("rule %q: pattern is required", rule.Name)
		}
		if max := maxGroupRef(rule.Replace); max > rule.Pattern.NumSubexp() {
			return errors.Errorf("rule %q: template references group $%d but pattern has %d groups",
				rule.Name, max, rule.Pattern.NumSubexp())
		}
	}
	return nil
}

// groupRefPattern matches $1-style references in replacement templates
var groupRefPattern = regexp.MustCompile(`\$(\d+)`)

// 🔍 maxGroupRef returns the highest $N reference used in a template
func maxGroupRef(template string) int {
	max := 0
	for _, m := range groupRefPattern.FindAllStringSubmatch(template, -1) {
		n := 0
		for _, c := range m[1] {
			n = n*10 + int(c-'0')
		}
		if n > max {
			max = n
		}
	}
	return max
}

// 📝 expandPlaceholders substitutes entity params into a template. Values
// are escaped for the Dart single-quoted string context they land in, and
// dollar signs are doubled so ReplaceAllString never mistakes expanded
// values for group references.
func expandPlaceholders(template string, params Params) string {
	r := strings.NewReplacer(
		"{name}", strings.ReplaceAll(escapeDart(params.Name), `$`, `$$`),
		"{description}", strings.ReplaceAll(escapeDart(params.Description), `$`, `$$`),
		"{priority}", strings.ReplaceAll(escapeDart(params.Priority), `$`, `$$`),
	)
	return r.Replace(template)
}

// 🔒 escapeDart escapes a raw param value for a Dart single-quoted string.
// Descriptions with apostrophes are escaped rather than rejected.
func escapeDart(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return v
}
