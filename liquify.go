// Package liquify provides a Liquid-style text templating engine with
// iteration, pagination-style resumable loops, and conditional tags.
//
// Templates mix literal text with {{ expression }} output markers and
// {% tag %} directives:
//
//	{% for item in items limit: 3 %}
//	  {{ forloop.index }}: {{ item }}
//	{% else %}
//	  nothing to show
//	{% endfor %}
//
// # Basic Usage
//
// Create an engine and render templates:
//
//	engine := liquify.MustNew()
//	result, err := engine.Render(ctx, "Hello, {{ user }}!", map[string]any{
//	    "user": "Alice",
//	})
//	// result: "Hello, Alice!"
//
// # The for tag
//
// The for tag iterates arrays, slices, maps (as [key, value] pairs),
// and bounded integer ranges. It supports offset and limit bounds, a
// reversed flag, positional destructuring of loop variables, an else
// branch for empty segments, and break/continue interrupts:
//
//	{% for key, value in pairs %}{{ key }}={{ value }} {% endfor %}
//	{% for n in (1..5) reversed %}{{ n }}{% endfor %}
//
// Inside the body the well-known forloop variable exposes iteration
// metadata: length, index, index0, rindex, rindex0, first, last, and
// parentloop for nested loops.
//
// # Resumable iteration
//
// "offset: continue" resumes a loop where its previous render pass
// over the same Context left off, enabling pagination across passes:
//
//	tmpl, _ := engine.Parse("{% for i in items offset: continue limit: 2 %}{{ i }}{% endfor %}")
//	c := liquify.NewContext(map[string]any{"items": []any{"a", "b", "c", "d"}})
//	first, _ := tmpl.RenderContext(ctx, c)  // "ab"
//	second, _ := tmpl.RenderContext(ctx, c) // "cd"
//
// # Syntax modes
//
// Two for-tag markup parsers are available: the default lenient
// pattern-based parser, and a strict tokenizer-based parser selected
// with liquify.WithSyntaxMode(liquify.SyntaxStrict). Both accept
// equivalent well-formed markup; the strict parser additionally
// rejects unknown attributes and trailing garbage.
package liquify
