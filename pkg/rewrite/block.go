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
)

// 🧱 BlockSpec describes one structurally delimited block to replace: the
// opening signature pattern and the fully formed replacement text.
type BlockSpec struct {
	Name     string         // Short identifier used in reports and logs
	Open     *regexp.Regexp // Matches the block's opening signature
	Template string         // Replacement block; may use {name}/{description}/{priority}
}

// 🏃 ReplaceBlock locates the block opened by spec.Open, resolves its true
// end by counting nested brace depth, and replaces the whole span with the
// expanded template. Only the first open match is processed. If the opening
// signature or its body brace is absent the input is returned unchanged.
func ReplaceBlock(ctx context.Context, text string, spec BlockSpec, params Params) (string, bool) {
	logger := zerolog.Ctx(ctx)

	loc := spec.Open.FindStringIndex(text)
	if loc == nil {
		logger.Debug().Str("block", spec.Name).Msg("block not found, skipping")
		return text, false
	}

	// The body starts at the first opening brace after the signature.
	openBrace := strings.IndexByte(text[loc[1]:], '{')
	if openBrace < 0 {
		return text, false
	}

	end := matchingBrace(text, loc[1]+openBrace)
	if end < 0 {
		// Unbalanced body, leave the buffer alone.
		logger.Warn().Str("block", spec.Name).Msg("unbalanced braces, skipping block")
		return text, false
	}

	replacement := expandLiteral(spec.Template, params)
	logger.Debug().
		Str("block", spec.Name).
		Int("start", loc[0]).
		Int("end", end+1).
		Msg("replacing block")

	return text[:loc[0]] + replacement + text[end+1:], true
}

// 🔍 matchingBrace returns the index of the brace closing the one at open,
// tracking nesting depth. Returns -1 when the text runs out first.
func matchingBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// 📝 expandLiteral substitutes entity params into a block template. Unlike
// rule templates this never passes through a regexp replacement, so only the
// Dart string escaping applies.
func expandLiteral(template string, params Params) string {
	r := strings.NewReplacer(
		"{name}", escapeDart(params.Name),
		"{description}", escapeDart(params.Description),
		"{priority}", escapeDart(params.Priority),
	)
	return r.Replace(template)
}

// TODO(refit): 🧐 warn when the open signature matches more than once instead
// of silently taking the first occurrence
