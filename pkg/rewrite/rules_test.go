package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// preMigrationLayer is a layer file in the shape the rule table was written
// against: narrow signatures, eager debug-info construction, the old
// five-argument result helper.
const preMigrationLayer = `import 'dart:async';

import '../models/translation_context.dart';
import '../models/translation_result.dart';
import '../utils/exceptions.dart';
import 'base_translation_layer.dart';

class PostProcessingLayer extends BaseTranslationLayer {
  static const String layerName = 'PostProcessingLayer';
  static const int layerPriority = 6;

  @override
  String get name => layerName;

  @override
  int get priority => layerPriority;

  @override
  bool canHandle(TranslationContext context) {
    return context.translatedText != null;
  }

  @override
  Future<LayerResult> process(TranslationContext context) async {
    final stopwatch = Stopwatch()..start();
    final debugInfo = LayerDebugInfo(
      layerName: name,
      startTime: DateTime.now(),
    );

    String currentText = context.translatedText ?? '';
    if (currentText.isEmpty) {
      return _createResult(false, context, stopwatch, debugInfo, 'No text to process');
    }

    debugInfo.details['inputLength'] = currentText.length;

    final processed = currentText.trim();
    debugInfo.details['outputLength'] = processed.length;

    return LayerResult.success(
      processedText: processed,
      debugInfo: debugInfo,
    );
  }

  LayerResult _createResult(
    bool success,
    TranslationContext context,
    Stopwatch stopwatch,
    LayerDebugInfo debugInfo,
    [String? error]
  ) {
    stopwatch.stop();
    if (success) {
      return LayerResult.success(
        processedText: context.translatedText ?? '',
        debugInfo: debugInfo,
      );
    } else {
      return LayerResult.error(
        originalText: context.sourceText,
        errorMessage: error ?? 'Unknown error',
        debugInfo: debugInfo,
      );
    }
  }
}
`

var postProcessingParams = Params{
	Name:        "PostProcessingLayer",
	Description: "Post-processing layer: final text formatting, capitalization, punctuation, and quality assessment",
	Priority:    "postProcessing",
}

func migrate(t *testing.T, text string, params Params) string {
	t.Helper()
	ctx := context.Background()

	rules := MigrationRules()
	require.NoError(t, rules.Validate())

	out, _ := rules.Apply(ctx, text, params)
	out, _ = ReplaceBlock(ctx, out, CreateResultBlock(), params)
	return out
}

func TestMigrationRules_EndToEnd(t *testing.T) {
	got := migrate(t, preMigrationLayer, postProcessingParams)

	// Imports stripped
	assert.NotContains(t, got, "import '../models/translation_result.dart';")
	assert.NotContains(t, got, "import '../utils/exceptions.dart';")
	assert.Contains(t, got, "import '../models/translation_context.dart';")

	// Accessors expanded from the name/priority anchor
	assert.Contains(t, got, "String get description => 'Post-processing layer: final text formatting, capitalization, punctuation, and quality assessment';")
	assert.Contains(t, got, "LayerPriority get priority => LayerPriority.postProcessing;")
	assert.NotContains(t, got, "int get priority => layerPriority;")

	// Signatures widened
	assert.Contains(t, got, "bool canHandle(String text, TranslationContext context)")
	assert.NotContains(t, got, "bool canHandle(TranslationContext context)")
	assert.Contains(t, got, "Future<LayerResult> process(String text, TranslationContext context)")
	assert.NotContains(t, got, "Future<LayerResult> process(TranslationContext context)")

	// Eager debug-info construction replaced by a timestamp capture
	assert.Contains(t, got, "final startTime = DateTime.now();")
	assert.NotContains(t, got, "startTime: DateTime.now(),")

	// Text fallback now uses the subject text
	assert.Contains(t, got, "String currentText = context.translatedText ?? text;")

	// Result-helper calls reordered to the new shape
	assert.Contains(t, got, "return _createResult(text, false, stopwatch, startTime, 'No text to process');")
	assert.NotContains(t, got, "_createResult(false, context,")

	// Details mutations documented as comments
	assert.Contains(t, got, "// inputLength: currentText.length (moved to additionalInfo)")
	assert.Contains(t, got, "// outputLength: processed.length (moved to additionalInfo)")
	assert.NotContains(t, got, "debugInfo.details[")

	// Builder method replaced wholesale; the nested if/else inside the old
	// body must not have cut the block short
	assert.Contains(t, got, "String processedText,")
	assert.Contains(t, got, "additionalInfo: additionalInfo ?? {},")
	assert.NotContains(t, got, "TranslationContext context,\n    Stopwatch stopwatch")
	assert.Contains(t, got, "errorMessage: error ?? 'Unknown error',")
	// The class closing brace after the replaced method survives
	assert.True(t, len(got) > 0 && got[len(got)-2] == '}')
}

func TestMigrationRules_Idempotent(t *testing.T) {
	ctx := context.Background()

	once := migrate(t, preMigrationLayer, postProcessingParams)

	rules := MigrationRules()
	twice, result := rules.Apply(ctx, once, postProcessingParams)
	assert.False(t, result.Changed, "rules re-matched already-migrated text: %v", result.Applied)
	assert.Equal(t, once, twice)

	// The block open signature still matches, but replacing it again is a
	// fixed point.
	again, found := ReplaceBlock(ctx, twice, CreateResultBlock(), postProcessingParams)
	assert.True(t, found)
	assert.Equal(t, once, again)
}

func TestMigrationRules_NoOpOnForeignText(t *testing.T) {
	ctx := context.Background()
	input := "void main() {\n  print('hello');\n}\n"

	rules := MigrationRules()
	got, result := rules.Apply(ctx, input, postProcessingParams)
	assert.Equal(t, input, got, "buffer must pass through byte-for-byte")
	assert.False(t, result.Changed)
	assert.Empty(t, result.Applied)

	got, found := ReplaceBlock(ctx, input, CreateResultBlock(), postProcessingParams)
	assert.Equal(t, input, got)
	assert.False(t, found)
}

func TestMigrationRules_DescriptionWithApostrophe(t *testing.T) {
	params := Params{
		Name:        "WordOrderLayer",
		Description: "Reorders words to match the target language's syntax",
		Priority:    "wordOrder",
	}

	got := migrate(t, preMigrationLayer, params)
	assert.Contains(t, got, `String get description => 'Reorders words to match the target language\'s syntax';`)
}
