package poet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kotlinpoet/poet"
)

func TestFunSpec_Render(t *testing.T) {
	typeVariable := poet.NewTypeVariable("T")
	documented, err := poet.NewParameterBuilder("a", poet.Int).AddKdoc("first number").Build()
	require.NoError(t, err)

	tests := []struct {
		name    string
		builder *poet.FunSpecBuilder
		expect  string
	}{
		{
			name:    "expression body",
			builder: poet.NewFunBuilder("taco").AddParameterOf("count", poet.Int).Returns(poet.String).AddStatement("return %S", "yum"),
			expect:  "fun taco(count: kotlin.Int): kotlin.String = \"yum\"\n",
		},
		{
			name:    "block body",
			builder: poet.NewFunBuilder("greet").AddStatement("println(%S)", "hi"),
			expect:  "fun greet() {\n  println(\"hi\")\n}\n",
		},
		{
			name:    "throw expression",
			builder: poet.NewFunBuilder("fail").Returns(poet.Nothing).AddStatement("throw %T(%S)", poet.NewClassName("kotlin", "IllegalStateException"), "boom"),
			expect:  "fun fail(): kotlin.Nothing = throw kotlin.IllegalStateException(\"boom\")\n",
		},
		{
			name:    "two statements keep the block",
			builder: poet.NewFunBuilder("twice").AddStatement("println()").AddStatement("return 1").Returns(poet.Int),
			expect:  "fun twice(): kotlin.Int {\n  println()\n  return 1\n}\n",
		},
		{
			name:    "abstract",
			builder: poet.NewFunBuilder("eat").AddModifiers(poet.Abstract),
			expect:  "abstract fun eat()\n",
		},
		{
			name:    "empty body",
			builder: poet.NewFunBuilder("noop").AddModifiers(poet.Private),
			expect:  "private fun noop() {\n}\n",
		},
		{
			name: "extension with type variable",
			builder: poet.NewFunBuilder("firstOrNull").
				AddTypeVariable(typeVariable).
				Receiver(poet.List.ParameterizedBy(typeVariable)).
				Returns(poet.Nullable(typeVariable)).
				AddStatement("return null"),
			expect: "fun <T> kotlin.collections.List<T>.firstOrNull(): T? = null\n",
		},
		{
			name:    "lambda receiver",
			builder: poet.NewFunBuilder("run").Receiver(poet.NewLambdaType(nil, poet.Unit)).AddStatement("this()"),
			expect:  "fun (() -> kotlin.Unit).run() {\n  this()\n}\n",
		},
		{
			name:    "vararg and escaped name",
			builder: poet.NewFunBuilder("in").AddParameterOf("values", poet.String, poet.Vararg),
			expect:  "fun `in`(vararg values: kotlin.String) {\n}\n",
		},
		{
			name:    "constructor delegation",
			builder: poet.NewConstructorBuilder().AddParameterOf("name", poet.String).CallThisConstructor(poet.MustCodeBlockOf("name"), poet.MustCodeBlockOf("%L", 0)),
			expect:  "constructor(name: kotlin.String) : this(name, 0)\n",
		},
		{
			name:    "getter",
			builder: poet.NewGetterBuilder().AddStatement("return %L", 1),
			expect:  "get() = 1\n",
		},
		{
			name:    "setter",
			builder: poet.NewSetterBuilder().AddParameterOf("value", poet.String).AddStatement("field = value"),
			expect:  "set(value) {\n  field = value\n}\n",
		},
		{
			name: "kdoc tags",
			builder: poet.NewFunBuilder("add").
				AddKdoc("Adds numbers.\n").
				AddParameter(documented).
				Returns(poet.Int).
				AddReturnKdoc("the sum").
				AddStatement("return a"),
			expect: "/**\n * Adds numbers.\n *\n * @param a first number\n * @return the sum\n */\nfun add(a: kotlin.Int): kotlin.Int = a\n",
		},
		{
			name: "control flow",
			builder: poet.NewFunBuilder("check").AddParameterOf("x", poet.Int).
				BeginControlFlow("if (x < 0)").
				AddStatement("throw %T()", poet.NewClassName("kotlin", "IllegalArgumentException")).
				EndControlFlow(),
			expect: "fun check(x: kotlin.Int) {\n  if (x < 0) {\n    throw kotlin.IllegalArgumentException()\n  }\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			funSpec, err := tt.builder.Build()
			require.NoError(t, err)
			actual, err := funSpec.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, actual)
		})
	}
}

func TestFunSpecBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *poet.FunSpecBuilder
		message string
	}{
		{name: "abstract with code", builder: poet.NewFunBuilder("f").AddModifiers(poet.Abstract).AddStatement("return 1"), message: "abstract function f cannot have code"},
		{name: "getter parameters", builder: poet.NewGetterBuilder().AddParameterOf("x", poet.Int), message: "get() cannot have parameters"},
		{name: "setter parameters", builder: poet.NewSetterBuilder().AddParameterOf("x", poet.Int).AddParameterOf("y", poet.Int), message: "set() can have at most one parameter"},
		{name: "reified without inline", builder: poet.NewFunBuilder("f").AddTypeVariable(poet.NewTypeVariable("T").Reified()), message: "only type parameters of inline functions can be reified!"},
		{name: "delegation on function", builder: poet.NewFunBuilder("f").CallThisConstructor(), message: "only constructors can delegate to other constructors!"},
		{name: "constructor return type", builder: poet.NewConstructorBuilder().Returns(poet.Int), message: "cannot have a return type"},
		{name: "two varargs", builder: poet.NewFunBuilder("f").AddParameterOf("a", poet.Int, poet.Vararg).AddParameterOf("b", poet.Int, poet.Vararg), message: "vararg"},
		{name: "empty name", builder: poet.NewFunBuilder(""), message: "name"},
		{name: "wrong target", builder: poet.NewFunBuilder("f").AddModifiers(poet.Data), message: "unexpected modifier DATA for FUNCTION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, poet.ErrSpec)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestFunSpec_ToBuilder(t *testing.T) {
	original, err := poet.NewFunBuilder("taco").AddParameterOf("count", poet.Int).AddStatement("println(count)").Build()
	require.NoError(t, err)
	copied, err := original.ToBuilder().AddModifiers(poet.Internal).Build()
	require.NoError(t, err)
	assert.Equal(t, "fun taco(count: kotlin.Int) {\n  println(count)\n}\n", original.String())
	assert.Equal(t, "internal fun taco(count: kotlin.Int) {\n  println(count)\n}\n", copied.String())
	assert.NotNil(t, copied.Parameter("count"))
	assert.Nil(t, copied.Parameter("missing"))
}

func TestParameterSpec_Render(t *testing.T) {
	tests := []struct {
		name    string
		builder *poet.ParameterSpecBuilder
		expect  string
	}{
		{name: "plain", builder: poet.NewParameterBuilder("count", poet.Int), expect: "count: kotlin.Int"},
		{name: "default value", builder: poet.NewParameterBuilder("count", poet.Int).DefaultValue("%L", 1), expect: "count: kotlin.Int = 1"},
		{name: "vararg", builder: poet.NewParameterBuilder("items", poet.String, poet.Vararg), expect: "vararg items: kotlin.String"},
		{name: "crossinline lambda", builder: poet.NewParameterBuilder("block", poet.NewLambdaType(nil, poet.Unit), poet.Crossinline), expect: "crossinline block: () -> kotlin.Unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parameter, err := tt.builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, parameter.String())
		})
	}

	_, err := poet.NewParameterBuilder("count", poet.Int, poet.Override).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, poet.ErrSpec)
	assert.Contains(t, err.Error(), "unexpected parameter modifier OVERRIDE")
}

func TestAnnotationSpec_Render(t *testing.T) {
	suppress := poet.NewClassName("kotlin", "Suppress")
	jvmName := poet.NewClassName("kotlin.jvm", "JvmName")
	tests := []struct {
		name    string
		builder *poet.AnnotationSpecBuilder
		expect  string
	}{
		{name: "marker", builder: poet.NewAnnotationBuilder(poet.NewClassName("kotlin.jvm", "JvmStatic")), expect: "@kotlin.jvm.JvmStatic"},
		{name: "single member", builder: poet.NewAnnotationBuilder(suppress).AddMember("%S", "unused"), expect: `@kotlin.Suppress("unused")`},
		{name: "members", builder: poet.NewAnnotationBuilder(suppress).AddMember("%S", "a").AddMember("%S", "b"), expect: `@kotlin.Suppress("a", "b")`},
		{name: "use-site target", builder: poet.NewAnnotationBuilder(jvmName).AddMember("%S", "x").UseSiteTarget(poet.UseSiteGet), expect: `@get:kotlin.jvm.JvmName("x")`},
		{name: "constant string keeps escapes", builder: poet.NewAnnotationBuilder(suppress).AddMember("%S", "a\nb"), expect: `@kotlin.Suppress("a\nb")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotation, err := tt.builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, annotation.String())
		})
	}
}

func TestPropertySpec_Render(t *testing.T) {
	getter, err := poet.NewGetterBuilder().AddStatement("return field").Build()
	require.NoError(t, err)
	setter, err := poet.NewSetterBuilder().AddParameterOf("value", poet.Int).AddStatement("field = value").Build()
	require.NoError(t, err)

	tests := []struct {
		name    string
		builder *poet.PropertySpecBuilder
		expect  string
	}{
		{name: "initializer", builder: poet.NewPropertyBuilder("name", poet.String).Initializer("%S", "taco"), expect: "val name: kotlin.String = \"taco\"\n"},
		{name: "no initializer", builder: poet.NewPropertyBuilder("name", poet.String, poet.Lateinit).Mutable(true), expect: "lateinit var name: kotlin.String\n"},
		{name: "const", builder: poet.NewPropertyBuilder("MAX", poet.Int, poet.Const).Initializer("%L", 10), expect: "const val MAX: kotlin.Int = 10\n"},
		{name: "delegate", builder: poet.NewPropertyBuilder("answer", poet.Int).Delegate("lazy { %L }", 42), expect: "val answer: kotlin.Int by lazy { 42 }\n"},
		{
			name:    "accessors",
			builder: poet.NewPropertyBuilder("size", poet.Int).Mutable(true).Getter(getter).Setter(setter),
			expect:  "var size: kotlin.Int\n  get() = field\n  set(value) {\n    field = value\n  }\n",
		},
		{
			name:    "extension",
			builder: poet.NewPropertyBuilder("half", poet.Int).Receiver(poet.Int).Getter(getter),
			expect:  "val kotlin.Int.half: kotlin.Int\n  get() = field\n",
		},
		{
			name:    "kdoc",
			builder: poet.NewPropertyBuilder("name", poet.String).AddKdoc("The name.").Initializer("%S", ""),
			expect:  "/**\n * The name.\n */\nval name: kotlin.String = \"\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property, err := tt.builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, property.String())
		})
	}
}

func TestPropertySpecBuilder_Errors(t *testing.T) {
	setter, err := poet.NewSetterBuilder().AddParameterOf("value", poet.Int).AddStatement("field = value").Build()
	require.NoError(t, err)
	function, err := poet.NewFunBuilder("size").Build()
	require.NoError(t, err)

	tests := []struct {
		name    string
		builder *poet.PropertySpecBuilder
		message string
	}{
		{name: "setter on val", builder: poet.NewPropertyBuilder("size", poet.Int).Setter(setter), message: "only a mutable property can have a setter"},
		{name: "initializer twice", builder: poet.NewPropertyBuilder("size", poet.Int).Initializer("1").Delegate("lazy { 2 }"), message: "initializer was already set"},
		{name: "getter is a function", builder: poet.NewPropertyBuilder("size", poet.Int).Getter(function), message: "size is not a getter"},
		{name: "mutable const", builder: poet.NewPropertyBuilder("size", poet.Int, poet.Const).Mutable(true), message: "const"},
		{name: "wrong target", builder: poet.NewPropertyBuilder("size", poet.Int, poet.Data), message: "unexpected modifier DATA for PROPERTY"},
		{name: "missing type", builder: poet.NewPropertyBuilder("size", nil), message: "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, poet.ErrSpec)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestTypeAliasSpec_Render(t *testing.T) {
	typeVariable := poet.NewTypeVariable("T")
	tests := []struct {
		name    string
		builder *poet.TypeAliasSpecBuilder
		expect  string
	}{
		{name: "plain", builder: poet.NewTypeAliasBuilder("Word", poet.String), expect: "typealias Word = kotlin.String\n"},
		{name: "generic", builder: poet.NewTypeAliasBuilder("Items", poet.List.ParameterizedBy(typeVariable)).AddTypeVariable(typeVariable), expect: "typealias Items<T> = kotlin.collections.List<T>\n"},
		{name: "internal", builder: poet.NewTypeAliasBuilder("Word", poet.String).AddModifiers(poet.Internal), expect: "internal typealias Word = kotlin.String\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typeAlias, err := tt.builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, typeAlias.String())
		})
	}

	_, err := poet.NewTypeAliasBuilder("Word", poet.String).AddModifiers(poet.Open).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, poet.ErrSpec)
}
