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

import "regexp"

// 📚 MigrationRules returns the ordered rule table that retrofits a Dart
// translation layer to the BaseTranslationLayer contract. The table is
// constructed once at startup and never mutated. Rule order matters: the
// accessor expansion must run before the signature rewrites so the anchor
// pair is still intact when it is scanned.
func MigrationRules() *RuleSet {
	return NewRuleSet(
		Rule{
			Name:    "drop-result-import",
			Pattern: regexp.MustCompile(`import '\.\./models/translation_result\.dart';\n`),
			Replace: "",
		},
		Rule{
			Name:    "drop-exceptions-import",
			Pattern: regexp.MustCompile(`import '\.\./utils/exceptions\.dart';\n`),
			Replace: "",
		},
		Rule{
			Name: "add-description-accessor",
			Pattern: regexp.MustCompile(
				`@override\n  String get name => layerName;\n\n  @override\n  int get priority => layerPriority;`),
			Replace: "@override\n  String get name => layerName;\n\n" +
				"  @override\n  String get description => '{description}';\n\n" +
				"  @override\n  LayerPriority get priority => LayerPriority.{priority};",
		},
		Rule{
			Name:    "widen-canhandle-signature",
			Pattern: regexp.MustCompile(`bool canHandle\(TranslationContext context\)`),
			Replace: "bool canHandle(String text, TranslationContext context)",
		},
		Rule{
			Name:    "widen-process-signature",
			Pattern: regexp.MustCompile(`Future<LayerResult> process\(TranslationContext context\)`),
			Replace: "Future<LayerResult> process(String text, TranslationContext context)",
		},
		Rule{
			Name: "defer-debug-info",
			Pattern: regexp.MustCompile(
				`final debugInfo = LayerDebugInfo\(\s*layerName: name,\s*startTime: DateTime\.now\(\),\s*\);`),
			Replace: "final startTime = DateTime.now();",
		},
		Rule{
			Name:    "fallback-to-subject-text",
			Pattern: regexp.MustCompile(`String currentText = context\.translatedText \?\? '';`),
			Replace: "String currentText = context.translatedText ?? text;",
		},
		Rule{
			Name:    "reorder-create-result-calls",
			Pattern: regexp.MustCompile(`return _createResult\(false, context, stopwatch, debugInfo, '([^']+)'\);`),
			Replace: "return _createResult(text, false, stopwatch, startTime, '$1');",
		},
		Rule{
			Name:    "comment-out-details-mutations",
			Pattern: regexp.MustCompile(`debugInfo\.details\['([^']+)'\] = ([^;]+);`),
			Replace: "// $1: $2 (moved to additionalInfo)",
		},
	)
}

// 🧱 CreateResultBlock returns the block spec that swaps the whole
// _createResult method for the new six-parameter shape. The method body is
// replaced wholesale rather than patched piecewise: it builds LayerDebugInfo
// at completion time and routes through LayerResult.success / error.
func CreateResultBlock() BlockSpec {
	return BlockSpec{
		Name: "create-result-method",
		Open: regexp.MustCompile(`LayerResult _createResult\(`),
		Template: `LayerResult _createResult(
    String processedText,
    bool success,
    Stopwatch stopwatch,
    DateTime startTime,
    [String? error,
    Map<String, dynamic>? additionalInfo]
  ) {
    stopwatch.stop();

    final debugInfo = LayerDebugInfo(
      layerName: name,
      processingTimeMs: stopwatch.elapsedMilliseconds,
      isSuccessful: success,
      hasError: error != null,
      errorMessage: error,
      additionalInfo: additionalInfo ?? {},
    );

    if (success) {
      return LayerResult.success(
        processedText: processedText,
        debugInfo: debugInfo,
      );
    } else {
      return LayerResult.error(
        originalText: processedText,
        errorMessage: error ?? 'Unknown error',
        debugInfo: debugInfo,
      );
    }
  }`,
	}
}
