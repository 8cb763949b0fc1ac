package poet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kotlinpoet/poet"
)

func TestCodeBlockOf(t *testing.T) {
	system := poet.NewClassName("java.lang", "System")
	tests := []struct {
		name   string
		format string
		args   []interface{}
		expect string
	}{
		{name: "literal", format: "%L taco", args: []interface{}{"delicious"}, expect: "delicious taco"},
		{name: "indexed reuse", format: "%1T.out.println(%1S)", args: []interface{}{system}, expect: `java.lang.System.out.println("java.lang.System")`},
		{name: "string literal", format: "val s = %S", args: []interface{}{"a\"b\t"}, expect: `val s = "a\"b\t"`},
		{name: "null string", format: "%S", args: []interface{}{nil}, expect: "null"},
		{name: "escaped name", format: "val %N = 1", args: []interface{}{"in"}, expect: "val `in` = 1"},
		{name: "percent", format: "100%%", expect: "100%"},
		{name: "dollar escaped", format: "%S", args: []interface{}{"$x"}, expect: `"\$x"`},
		{name: "template keeps dollar", format: "%P", args: []interface{}{"$x"}, expect: `"$x"`},
		{name: "member reference", format: "%M(1, 2)", args: []interface{}{poet.NewMemberName("kotlin.math", "max")}, expect: "kotlin.math.max(1, 2)"},
		{name: "nullable type", format: "%T", args: []interface{}{poet.Nullable(poet.String)}, expect: "kotlin.String?"},
		{name: "parameterized type", format: "%T", args: []interface{}{poet.Map.ParameterizedBy(poet.String, poet.Star)}, expect: "kotlin.collections.Map<kotlin.String, *>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := poet.CodeBlockOf(tt.format, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, block.String())
		})
	}
}

func TestCodeBlockOf_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		args    []interface{}
		message string
	}{
		{name: "index out of range", format: "%1T", message: "received 0 arguments"},
		{name: "positional out of range", format: "%L %L", args: []interface{}{1}, message: "not in range (received 1 arguments)"},
		{name: "unused positional", format: "%L", args: []interface{}{1, 2}, message: "unused arguments: expected 1, received 2"},
		{name: "no directives", format: "text", args: []interface{}{1}, message: "unused arguments: expected 0, received 1"},
		{name: "unused indexed", format: "%2L", args: []interface{}{1, 2}, message: "unused argument: %1"},
		{name: "mixed", format: "%1L %L", args: []interface{}{1}, message: "cannot mix indexed and positional parameters"},
		{name: "unknown directive", format: "%Q", message: "unknown format %Q"},
		{name: "dangling", format: "abc%", message: "dangling format characters"},
		{name: "indexed marker", format: "%1>", message: "%> may not have an index"},
		{name: "type expected", format: "%T", args: []interface{}{"String"}, message: "expected type but was String"},
		{name: "name expected", format: "%N", args: []interface{}{42}, message: "expected name but was 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := poet.CodeBlockOf(tt.format, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, poet.ErrFormat)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCodeBlockBuilder_AddNamed(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		arguments map[string]interface{}
		expect    string
		message   string
	}{
		{
			name:      "bound arguments",
			format:    "I like %food:L and %count:L %food:L",
			arguments: map[string]interface{}{"food": "tacos", "count": 3},
			expect:    "I like tacos and 3 tacos",
		},
		{
			name:      "type argument",
			format:    "val x: %type:T",
			arguments: map[string]interface{}{"type": poet.Int},
			expect:    "val x: kotlin.Int",
		},
		{
			name:      "missing argument",
			format:    "%food:L",
			arguments: map[string]interface{}{},
			message:   "missing named argument for %food",
		},
		{
			name:      "uppercase argument",
			format:    "%Food:L",
			arguments: map[string]interface{}{"Food": "tacos"},
			message:   "argument 'Food' must start with a lowercase character",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := poet.NewCodeBlockBuilder().AddNamed(tt.format, tt.arguments).Build()
			if tt.message != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, poet.ErrFormat)
				assert.Contains(t, err.Error(), tt.message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, block.String())
		})
	}
}

func TestCodeBlock_ControlFlow(t *testing.T) {
	block, err := poet.NewCodeBlockBuilder().
		BeginControlFlow("if (x > %L)", 1).
		AddStatement("println(%S)", "big").
		NextControlFlow("else").
		AddStatement("println(%S)", "small").
		EndControlFlow().
		Build()
	require.NoError(t, err)
	assert.Equal(t, "if (x > 1) {\n  println(\"big\")\n} else {\n  println(\"small\")\n}\n", block.String())
}

func TestCodeBlock_Trim(t *testing.T) {
	block, err := poet.NewCodeBlockBuilder().Indent().AddStatement("return x").Unindent().Build()
	require.NoError(t, err)
	trimmed := block.Trim()
	assert.Equal(t, "return x\n", trimmed.String())
	assert.True(t, trimmed.Trim().Equal(trimmed))
	assert.Equal(t, trimmed.String(), trimmed.Trim().String())
}

func TestCodeBlock_WithoutPrefix(t *testing.T) {
	tests := []struct {
		name   string
		block  poet.CodeBlock
		prefix poet.CodeBlock
		expect string
		ok     bool
	}{
		{name: "partial literal", block: poet.MustCodeBlockOf("return %L", 1), prefix: poet.MustCodeBlockOf("return "), expect: "1", ok: true},
		{name: "exact parts", block: poet.MustCodeBlockOf("%L + %L", 1, 2), prefix: poet.MustCodeBlockOf("%L", 1), expect: " + 2", ok: true},
		{name: "argument mismatch", block: poet.MustCodeBlockOf("%L + %L", 1, 2), prefix: poet.MustCodeBlockOf("%L", 3)},
		{name: "literal mismatch", block: poet.MustCodeBlockOf("throw x"), prefix: poet.MustCodeBlockOf("return ")},
		{name: "longer prefix", block: poet.MustCodeBlockOf("a"), prefix: poet.MustCodeBlockOf("%L%L", "a", "b")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, ok := tt.block.WithoutPrefix(tt.prefix)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.expect, rest.String())
			assert.Equal(t, tt.block.String(), tt.prefix.Concat(rest).String())
		})
	}
}

func TestCodeBlock_Concat(t *testing.T) {
	a := poet.MustCodeBlockOf("%L", "a")
	b := poet.MustCodeBlockOf("%S", "b")
	c := poet.MustCodeBlockOf("%T", poet.Int)
	assert.Equal(t, a.String()+b.String()+c.String(), a.Concat(b, c).String())
	assert.True(t, a.Concat(b).Concat(c).Equal(a.Concat(b.Concat(c))))
	assert.True(t, poet.CodeBlock{}.IsEmpty())
}

func TestJoinToCode(t *testing.T) {
	blocks := []poet.CodeBlock{poet.MustCodeBlockOf("%S", "a"), poet.MustCodeBlockOf("%L", 2)}
	tests := []struct {
		name      string
		separator string
		prefix    string
		suffix    string
		expect    string
	}{
		{name: "plain", separator: ", ", expect: `"a", 2`},
		{name: "affixes", separator: ", ", prefix: "listOf(", suffix: ")", expect: `listOf("a", 2)`},
		{name: "percent in separator", separator: " % ", expect: `"a" % 2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, poet.JoinToCode(blocks, tt.separator, tt.prefix, tt.suffix).String())
		})
	}
}

func TestCodeBlock_StatementErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		message string
	}{
		{name: "nested enter", format: "%[a%[b%]", message: "statement enter %[ followed by statement enter %["},
		{name: "exit without enter", format: "a%]", message: "statement exit %] has no matching statement enter %["},
		{name: "enter without exit", format: "%[a", message: "statement enter %[ has no matching statement exit %]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := poet.CodeBlockOf(tt.format)
			require.NoError(t, err)
			_, err = block.Render()
			require.Error(t, err)
			assert.ErrorIs(t, err, poet.ErrRender)
			assert.Contains(t, err.Error(), tt.message)
			assert.Panics(t, func() { _ = block.String() })
		})
	}
}

func TestCodeBlock_StatementWrapping(t *testing.T) {
	block, err := poet.NewCodeBlockBuilder().
		AddStatement("val total = first +\nsecond +\nthird").
		AddStatement("return total").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "val total = first +\n    second +\n    third\nreturn total\n", block.String())
}
