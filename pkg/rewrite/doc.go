/*
Package rewrite is the core text-rewrite engine.

	            +-------------+
	            |   RuleSet   |
	            | (Patterns)  |
	            +------+------+
	                   |
	            +------+------+
	            |BlockReplacer|
	            | (Structure) |
	            +------+------+

🎯 Purpose:
- Applies an ordered list of regexp find/replace rules to one buffer
- Locates a named method body by signature and brace depth, then replaces
  the whole block atomically
- Substitutes per-entity parameters into templates with Dart string escaping

🔄 Flow:
1. RuleSet.Apply runs every rule in order over the current buffer
2. ReplaceBlock finds the builder method and swaps its full span
3. Both treat an absent pattern as "nothing to do", never as an error

⚡ Key Responsibilities:
- Ordered, order-sensitive rule composition
- Nested-delimiter tracking (a single regexp cannot find the true end of a
  body that contains its own braces)
- Rule/template arity validation at construction time

📝 Design Philosophy:
This is pattern-based rewriting, not parsing. The engine never understands
Dart; it trusts that inputs loosely match the shapes the rule table was
written against, and passes anything else through untouched. Rules rewrite
every occurrence of their pattern; the block replacer takes the first open
match only.

🔍 Example:

	rules := rewrite.MigrationRules()
	text, result := rules.Apply(ctx, input, rewrite.Params{
		Name:        "PostProcessingLayer",
		Description: "Post-processing layer",
		Priority:    "postProcessing",
	})
	text, _ = rewrite.ReplaceBlock(ctx, text, rewrite.CreateResultBlock(), params)
*/
package rewrite
