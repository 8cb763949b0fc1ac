package poet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kotlinpoet/poet"
)

func mustFun(t *testing.T, builder *poet.FunSpecBuilder) *poet.FunSpec {
	t.Helper()
	funSpec, err := builder.Build()
	require.NoError(t, err)
	return funSpec
}

func mustProperty(t *testing.T, builder *poet.PropertySpecBuilder) *poet.PropertySpec {
	t.Helper()
	property, err := builder.Build()
	require.NoError(t, err)
	return property
}

func mustType(t *testing.T, builder *poet.TypeSpecBuilder) *poet.TypeSpec {
	t.Helper()
	typeSpec, err := builder.Build()
	require.NoError(t, err)
	return typeSpec
}

func TestTypeSpec_Render(t *testing.T) {
	food := poet.NewClassName("com.example", "Food")
	serializable := poet.NewClassName("java.io", "Serializable")
	tests := []struct {
		name    string
		builder func(t *testing.T) *poet.TypeSpecBuilder
		expect  string
	}{
		{
			name: "empty class",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("Taco")
			},
			expect: "class Taco\n",
		},
		{
			name: "data class with constructor properties",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				constructor := mustFun(t, poet.NewConstructorBuilder().AddParameterOf("name", poet.String).AddParameterOf("count", poet.Int))
				return poet.NewClassBuilder("Taco").
					AddModifiers(poet.Data).
					PrimaryConstructor(constructor).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("name", poet.String).Initializer("name"))).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("count", poet.Int).Initializer("count")))
			},
			expect: "data class Taco(\n  val name: kotlin.String,\n  val count: kotlin.Int,\n)\n",
		},
		{
			name: "constructor parameter without property",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				constructor := mustFun(t, poet.NewConstructorBuilder().AddParameterOf("seed", poet.Long))
				return poet.NewClassBuilder("Random").
					PrimaryConstructor(constructor).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("state", poet.Long).Mutable(true).Initializer("seed")))
			},
			expect: "class Random(\n  seed: kotlin.Long,\n) {\n  var state: kotlin.Long = seed\n}\n",
		},
		{
			name: "superclass interfaces and companion",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				companion := poet.NewCompanionObjectBuilder("").
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("SIZE", poet.Int, poet.Const).Initializer("%L", 3)))
				return poet.NewClassBuilder("Taco").
					AddModifiers(poet.Open).
					Superclass(food).
					AddSuperclassConstructorParameter("%S", "taco").
					AddSuperinterface(serializable).
					AddType(mustType(t, companion))
			},
			expect: "open class Taco : com.example.Food(\"taco\"), java.io.Serializable {\n  companion object {\n    const val SIZE: kotlin.Int = 3\n  }\n}\n",
		},
		{
			name: "secondary constructor delegates to super",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				constructor := mustFun(t, poet.NewConstructorBuilder().AddParameterOf("name", poet.String).CallSuperConstructor(poet.MustCodeBlockOf("name")))
				return poet.NewClassBuilder("Taco").Superclass(food).AddFunction(constructor)
			},
			expect: "class Taco : com.example.Food {\n  constructor(name: kotlin.String) : super(name)\n}\n",
		},
		{
			name: "interface members are implicitly abstract",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewInterfaceBuilder("Shape").
					AddFunction(mustFun(t, poet.NewFunBuilder("area").AddModifiers(poet.Abstract).Returns(poet.Double))).
					AddFunction(mustFun(t, poet.NewFunBuilder("describe").Returns(poet.String).AddStatement("return %S", "shape")))
			},
			expect: "interface Shape {\n  fun area(): kotlin.Double\n\n  fun describe(): kotlin.String = \"shape\"\n}\n",
		},
		{
			name: "fun interface",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewFunInterfaceBuilder("Action").
					AddFunction(mustFun(t, poet.NewFunBuilder("run").AddModifiers(poet.Abstract)))
			},
			expect: "fun interface Action {\n  fun run()\n}\n",
		},
		{
			name: "enum constants",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewEnumBuilder("Roshambo").AddEnumConstant("ROCK", nil).AddEnumConstant("PAPER", nil)
			},
			expect: "enum class Roshambo {\n  ROCK,\n  PAPER,\n}\n",
		},
		{
			name: "enum with arguments and members",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				constructor := mustFun(t, poet.NewConstructorBuilder().AddParameterOf("handPosition", poet.String))
				rock := mustType(t, poet.NewAnonymousClassBuilder().AddSuperclassConstructorParameter("%S", "fist"))
				return poet.NewEnumBuilder("Roshambo").
					PrimaryConstructor(constructor).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("handPosition", poet.String).Initializer("handPosition"))).
					AddEnumConstant("ROCK", rock).
					AddFunction(mustFun(t, poet.NewFunBuilder("describe").Returns(poet.String).AddStatement("return handPosition")))
			},
			expect: "enum class Roshambo(\n  val handPosition: kotlin.String,\n) {\n  ROCK(\"fist\"),\n  ;\n\n  fun describe(): kotlin.String = handPosition\n}\n",
		},
		{
			name: "enum constant with body",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				toString := mustFun(t, poet.NewFunBuilder("toString").AddModifiers(poet.Override).Returns(poet.String).AddStatement("return %S", "r"))
				rock := mustType(t, poet.NewAnonymousClassBuilder().AddFunction(toString))
				return poet.NewEnumBuilder("Roshambo").AddEnumConstant("ROCK", rock)
			},
			expect: "enum class Roshambo {\n  ROCK {\n    override fun toString(): kotlin.String = \"r\"\n  },\n}\n",
		},
		{
			name: "initializer block keeps its position",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("Counter").
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("a", poet.Int).Initializer("1"))).
					AddInitializerBlock(poet.MustCodeBlockOf("println(a)\n")).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("b", poet.Int).Initializer("2")))
			},
			expect: "class Counter {\n  val a: kotlin.Int = 1\n\n  init {\n    println(a)\n  }\n\n  val b: kotlin.Int = 2\n}\n",
		},
		{
			name: "expect members have no bodies",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("Platform").
					AddModifiers(poet.Expect).
					AddFunction(mustFun(t, poet.NewFunBuilder("name").Returns(poet.String)))
			},
			expect: "expect class Platform {\n  fun name(): kotlin.String\n}\n",
		},
		{
			name: "interface delegation",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				constructor := mustFun(t, poet.NewConstructorBuilder().AddParameterOf("base", serializable))
				return poet.NewClassBuilder("Wrapper").
					PrimaryConstructor(constructor).
					AddSuperinterfaceDelegate(serializable, poet.MustCodeBlockOf("base"))
			},
			expect: "class Wrapper(\n  base: java.io.Serializable,\n) : java.io.Serializable by base\n",
		},
		{
			name: "kdoc with constructor parameters",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				parameter, err := poet.NewParameterBuilder("name", poet.String).AddKdoc("the name").Build()
				require.NoError(t, err)
				constructor := mustFun(t, poet.NewConstructorBuilder().AddParameter(parameter))
				return poet.NewClassBuilder("Taco").AddKdoc("A taco.").PrimaryConstructor(constructor)
			},
			expect: "/**\n * A taco.\n *\n * @param name the name\n */\nclass Taco(\n  name: kotlin.String,\n)\n",
		},
		{
			name: "class kdoc",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("Taco").AddKdoc("Delicious.")
			},
			expect: "/**\n * Delicious.\n */\nclass Taco\n",
		},
		{
			name: "final is implicit unless overriding",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("Base").
					AddModifiers(poet.Open).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("p", poet.Int, poet.Final).Initializer("1"))).
					AddFunction(mustFun(t, poet.NewFunBuilder("f").AddModifiers(poet.Final))).
					AddFunction(mustFun(t, poet.NewFunBuilder("g").AddModifiers(poet.Final, poet.Override)))
			},
			expect: "open class Base {\n  val p: kotlin.Int = 1\n\n  fun f() {\n  }\n\n  final override fun g() {\n  }\n}\n",
		},
		{
			name: "several superinterfaces",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("Taco").
					AddSuperinterface(serializable).
					AddSuperinterface(poet.NewClassName("java.lang", "Cloneable"))
			},
			expect: "class Taco : java.io.Serializable, java.lang.Cloneable\n",
		},
		{
			name: "nested type and alias",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				alias, err := poet.NewTypeAliasBuilder("Name", poet.String).Build()
				require.NoError(t, err)
				return poet.NewObjectBuilder("Registry").
					AddType(mustType(t, poet.NewClassBuilder("Entry"))).
					AddTypeAlias(alias)
			},
			expect: "object Registry {\n  class Entry\n\n  typealias Name = kotlin.String\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typeSpec, err := tt.builder(t).Build()
			require.NoError(t, err)
			actual, err := typeSpec.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, actual)
		})
	}
}

func TestTypeSpec_AnonymousObjectLiteral(t *testing.T) {
	run := mustFun(t, poet.NewFunBuilder("run").AddModifiers(poet.Override).AddStatement("println()"))
	anonymous := mustType(t, poet.NewAnonymousClassBuilder().AddSuperinterface(poet.NewClassName("java.lang", "Runnable")).AddFunction(run))
	block, err := poet.CodeBlockOf("val r = %L", anonymous)
	require.NoError(t, err)
	assert.Equal(t, "val r = object : java.lang.Runnable {\n  override fun run() {\n    println()\n  }\n}", block.String())
	assert.True(t, anonymous.IsAnonymous())
}

func TestTypeSpecBuilder_Errors(t *testing.T) {
	abstractFun := func(t *testing.T) *poet.FunSpec {
		return mustFun(t, poet.NewFunBuilder("f").AddModifiers(poet.Abstract))
	}
	tests := []struct {
		name    string
		builder func(t *testing.T) *poet.TypeSpecBuilder
		message string
	}{
		{
			name: "abstract function in concrete class",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("A").AddFunction(abstractFun(t))
			},
			message: "non-abstract type A cannot declare abstract function f",
		},
		{
			name: "object primary constructor",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewObjectBuilder("O").PrimaryConstructor(mustFun(t, poet.NewConstructorBuilder()))
			},
			message: "object can't have a primary constructor",
		},
		{
			name: "reserved enum constant",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewEnumBuilder("E").AddEnumConstant("name", nil)
			},
			message: "conflicts with a supertype member",
		},
		{
			name: "constant outside enum",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("A").AddEnumConstant("X", nil)
			},
			message: "A is not an enum",
		},
		{
			name: "two companions",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewClassBuilder("A").
					AddType(mustType(t, poet.NewCompanionObjectBuilder(""))).
					AddType(mustType(t, poet.NewCompanionObjectBuilder("Named")))
			},
			message: "multiple companion objects",
		},
		{
			name: "companion in object",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewObjectBuilder("O").AddType(mustType(t, poet.NewCompanionObjectBuilder("")))
			},
			message: "object types can't have a companion object",
		},
		{
			name: "fun interface without abstract function",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewFunInterfaceBuilder("F")
			},
			message: "functional interfaces must have exactly one abstract function",
		},
		{
			name: "modifiers on anonymous type",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewAnonymousClassBuilder().AddModifiers(poet.Public)
			},
			message: "forbidden on anonymous types.",
		},
		{
			name: "annotation class function",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewAnnotationClassBuilder("Marker").AddFunction(mustFun(t, poet.NewFunBuilder("f")))
			},
			message: "annotation class Marker cannot declare member function f",
		},
		{
			name: "interface superclass",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewInterfaceBuilder("I").Superclass(poet.NewClassName("com.example", "Base"))
			},
			message: "only classes can have super classes",
		},
		{
			name: "missing name",
			builder: func(t *testing.T) *poet.TypeSpecBuilder {
				return poet.NewInterfaceBuilder("")
			},
			message: "interface name must not be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder(t).Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, poet.ErrSpec)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
