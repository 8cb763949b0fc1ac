package poet_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/kotlinpoet/poet"
)

func TestFileSpec_NameResolution(t *testing.T) {
	const pkg = "com.squareup.tacos"
	tests := []struct {
		name    string
		builder func(t *testing.T) *poet.FileSpecBuilder
		expect  string
	}{
		{
			name: "nested twins",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				nested := poet.NewClassBuilder("Nested").
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("a", poet.NewClassName(pkg, "Gen", "Nested", "Twin")))).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("b", poet.NewClassName(pkg, "Gen", "Twin")))).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("c", poet.NewClassName("com.other", "Twin")))).
					AddType(mustType(t, poet.NewClassBuilder("Twin")))
				gen := poet.NewClassBuilder("Gen").
					AddType(mustType(t, poet.NewClassBuilder("Twin"))).
					AddType(mustType(t, nested))
				return poet.NewFileBuilder(pkg, "Gen").AddType(mustType(t, gen))
			},
			expect: "package com.squareup.tacos\n\nclass Gen {\n  class Twin\n\n  class Nested {\n    val a: Twin\n\n    val b: Gen.Twin\n\n    val c: com.other.Twin\n\n    class Twin\n  }\n}\n",
		},
		{
			name: "shortest unambiguous suffix",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				nested := poet.NewClassBuilder("Nested").
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("d", poet.NewClassName(pkg, "Gen", "Other", "Twin")))).
					AddType(mustType(t, poet.NewClassBuilder("Twin")))
				other := poet.NewClassBuilder("Other").AddType(mustType(t, poet.NewClassBuilder("Twin")))
				gen := poet.NewClassBuilder("Gen").AddType(mustType(t, nested)).AddType(mustType(t, other))
				return poet.NewFileBuilder(pkg, "Gen").AddType(mustType(t, gen))
			},
			expect: "package com.squareup.tacos\n\nclass Gen {\n  class Nested {\n    val d: Other.Twin\n\n    class Twin\n  }\n\n  class Other {\n    class Twin\n  }\n}\n",
		},
		{
			name: "same package and conflicting import",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				return poet.NewFileBuilder(pkg, "Locals").
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("x", poet.NewClassName(pkg, "Local")))).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("y", poet.NewClassName("com.other", "Local"))))
			},
			expect: "package com.squareup.tacos\n\nval x: Local\n\nval y: com.other.Local\n",
		},
		{
			name: "first of two simple names is imported",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				return poet.NewFileBuilder(pkg, "Tacos").
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("a", poet.NewClassName("com.one", "Taco")))).
					AddProperty(mustProperty(t, poet.NewPropertyBuilder("b", poet.NewClassName("com.two", "Taco"))))
			},
			expect: "package com.squareup.tacos\n\nimport com.one.Taco\n\nval a: Taco\n\nval b: com.two.Taco\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := tt.builder(t).Build()
			require.NoError(t, err)
			actual, err := file.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, actual)
		})
	}
}

func TestFileSpec_Imports(t *testing.T) {
	twin := poet.NewClassName("com.other", "Twin")
	tests := []struct {
		name    string
		builder func(t *testing.T) *poet.FileSpecBuilder
		expect  string
	}{
		{
			name: "kotlin types are imported",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				build := poet.NewFunBuilder("build").Returns(poet.List.ParameterizedBy(poet.String)).AddStatement("return emptyList()")
				return poet.NewFileBuilder("com.example", "Build").AddFunction(mustFun(t, build))
			},
			expect: "package com.example\n\nimport kotlin.String\nimport kotlin.collections.List\n\nfun build(): List<String> = emptyList()\n",
		},
		{
			name: "aliased import",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				property := poet.NewPropertyBuilder("twin", twin).Initializer("%T()", twin)
				return poet.NewFileBuilder("com.example", "Twins").
					AddAliasedImport(twin, "OtherTwin").
					AddProperty(mustProperty(t, property))
			},
			expect: "package com.example\n\nimport com.other.Twin as OtherTwin\n\nval twin: OtherTwin = OtherTwin()\n",
		},
		{
			name: "member import",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				top := poet.NewFunBuilder("top").Returns(poet.Int).AddStatement("return %M(1, 2)", poet.NewMemberName("kotlin.math", "max"))
				return poet.NewFileBuilder("com.example", "Top").AddFunction(mustFun(t, top))
			},
			expect: "package com.example\n\nimport kotlin.Int\nimport kotlin.math.max\n\nfun top(): Int = max(1, 2)\n",
		},
		{
			name: "comment and file annotation",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				jvmName, err := poet.NewAnnotationBuilder(poet.NewClassName("kotlin.jvm", "JvmName")).AddMember("%S", "TacoUtils").Build()
				require.NoError(t, err)
				alias, err := poet.NewTypeAliasBuilder("Name", poet.String).Build()
				require.NoError(t, err)
				return poet.NewFileBuilder("com.example", "Tacos").
					AddComment("Generated code.").
					AddAnnotation(jvmName).
					AddTypeAlias(alias)
			},
			expect: "// Generated code.\n@file:JvmName(\"TacoUtils\")\n\npackage com.example\n\nimport kotlin.String\nimport kotlin.jvm.JvmName\n\ntypealias Name = String\n",
		},
		{
			name: "default package",
			builder: func(t *testing.T) *poet.FileSpecBuilder {
				main := poet.NewFunBuilder("main").AddStatement("println(%S)", "hi")
				return poet.NewFileBuilder("", "Main").AddFunction(mustFun(t, main))
			},
			expect: "fun main() {\n  println(\"hi\")\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := tt.builder(t).Build()
			require.NoError(t, err)
			actual, err := file.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, actual)
		})
	}
}

func TestFileSpec_ExplicitImports(t *testing.T) {
	mathKt := poet.NewClassName("kotlin.math", "MathKt")
	random := poet.NewClassName("java.util", "Random")
	root := poet.NewPropertyBuilder("root", poet.Double).Initializer("%T.sqrt(2.0) + %T.PI", mathKt, mathKt)
	file, err := poet.NewFileBuilder("com.example", "Roots").
		AddImport(mathKt, "sqrt").
		AddImport(random).
		AddProperty(mustProperty(t, root)).
		Build()
	require.NoError(t, err)
	actual, err := file.Render()
	require.NoError(t, err)

	assert.Contains(t, actual, "import kotlin.math.MathKt.sqrt\n")
	assert.Equal(t, 1, strings.Count(actual, "import kotlin.math.MathKt.sqrt\n"))
	assert.Contains(t, actual, "import java.util.Random\n")
	assert.Contains(t, actual, "val root: Double = sqrt(2.0) + MathKt.PI\n")
	assert.NotContains(t, actual, "MathKt.sqrt(")
}

func TestFileSpecBuilder_Errors(t *testing.T) {
	getter := mustFun(t, poet.NewGetterBuilder().AddStatement("return 1"))
	field, err := poet.NewAnnotationBuilder(poet.NewClassName("kotlin.jvm", "JvmField")).UseSiteTarget(poet.UseSiteField).Build()
	require.NoError(t, err)
	tests := []struct {
		name    string
		builder *poet.FileSpecBuilder
		message string
	}{
		{name: "wildcard import", builder: poet.NewFileBuilder("com.example", "A").AddPackageImport("com.other", "*"), message: "wildcard imports are not allowed"},
		{name: "path in name", builder: poet.NewFileBuilder("com.example", "a/b"), message: "invalid file name"},
		{name: "empty name", builder: poet.NewFileBuilder("com.example", ""), message: "invalid file name"},
		{name: "accessor member", builder: poet.NewFileBuilder("com.example", "A").AddFunction(getter), message: "cannot add get()"},
		{name: "annotation target", builder: poet.NewFileBuilder("com.example", "A").AddAnnotation(field), message: "use-site target field not supported"},
		{name: "column limit", builder: poet.NewFileBuilder("com.example", "A").ColumnLimit(0), message: "column limit must be positive"},
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

func TestFileSpec_Write(t *testing.T) {
	main := mustFun(t, poet.NewFunBuilder("main").AddStatement("println(%S)", "hi"))
	file, err := poet.NewFileBuilder("com.example", "Main").AddFunction(main).Build()
	require.NoError(t, err)
	expect := "package com.example\n\nfun main() {\n  println(\"hi\")\n}\n"
	assert.Equal(t, "com/example/Main.kt", file.RelativePath())

	buffer := &bytes.Buffer{}
	n, err := file.WriteTo(buffer)
	require.NoError(t, err)
	assert.EqualValues(t, len(expect), n)
	assert.Equal(t, expect, buffer.String())

	ctx := context.Background()
	fs := afs.New()
	URL, err := file.WriteToDir(ctx, fs, "mem://localhost/poet/out")
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/poet/out/com/example/Main.kt", URL)
	content, err := fs.DownloadWithURL(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, expect, string(content))
}

func TestFileSpec_RenderFailureWritesNothing(t *testing.T) {
	body := poet.MustCodeBlockOf("println()%]\n")
	broken := mustFun(t, poet.NewFunBuilder("broken").AddCodeBlock(body))
	file, err := poet.NewFileBuilder("com.example", "Broken").AddFunction(broken).Build()
	require.NoError(t, err)
	buffer := &bytes.Buffer{}
	n, err := file.WriteTo(buffer)
	require.Error(t, err)
	assert.ErrorIs(t, err, poet.ErrRender)
	assert.Zero(t, n)
	assert.Zero(t, buffer.Len())
}
