package stub_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/kotlinpoet/poet"
	"github.com/viant/kotlinpoet/stub"
)

func TestConfig_Init(t *testing.T) {
	config := &stub.Config{Source: "src"}
	config.Init()
	assert.Equal(t, stub.DefaultOutput, config.Output)
	assert.Equal(t, stub.DefaultKotlinVersion, config.KotlinVersion)
	assert.Equal(t, poet.DefaultIndent, config.Indent)
	assert.Equal(t, poet.DefaultColumnLimit, config.ColumnLimit)
	require.NotNil(t, config.JvmStatic)
	assert.True(t, *config.JvmStatic)
	require.NotNil(t, config.FileComment)
	assert.Equal(t, stub.DefaultFileComment, *config.FileComment)

	disabled, comment := false, ""
	config = &stub.Config{Source: "src", JvmStatic: &disabled, FileComment: &comment}
	config.Init()
	assert.False(t, *config.JvmStatic)
	assert.Equal(t, "", *config.FileComment)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    stub.Config
		expectErr string
	}{
		{name: "valid", config: stub.Config{Source: "src", KotlinVersion: "1.8.20"}},
		{name: "prefixed version", config: stub.Config{Source: "src", KotlinVersion: "v2.0"}},
		{name: "empty source", config: stub.Config{}, expectErr: "source was empty"},
		{name: "bad version", config: stub.Config{Source: "src", KotlinVersion: "one"}, expectErr: `invalid kotlinVersion: "one"`},
		{name: "negative column limit", config: stub.Config{Source: "src", ColumnLimit: -1}, expectErr: "invalid columnLimit: -1"},
		{name: "indent", config: stub.Config{Source: "src", Indent: "\tx"}, expectErr: `indent must be whitespace: "\tx"`},
		{name: "package mapping", config: stub.Config{Source: "src", Packages: map[string]string{"com.example": ""}}, expectErr: `invalid package mapping: "com.example" -> ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expectErr)
		})
	}
}

func TestConfig_Supports(t *testing.T) {
	tests := []struct {
		version string
		feature string
		expect  bool
	}{
		{version: "1.9.0", feature: "1.4", expect: true},
		{version: "1.4", feature: "1.4", expect: true},
		{version: "1.3.72", feature: "1.4", expect: false},
		{version: "", feature: "1.4", expect: true},
		{version: "2.0.0", feature: "v1.5", expect: true},
	}
	for _, tt := range tests {
		t.Run(tt.version+">="+tt.feature, func(t *testing.T) {
			config := &stub.Config{KotlinVersion: tt.version}
			assert.Equal(t, tt.expect, config.Supports(tt.feature))
		})
	}
}

func TestConfig_KotlinPackage(t *testing.T) {
	config := &stub.Config{Packages: map[string]string{
		"com.example":     "com.example.kt",
		"com.example.api": "api",
	}}
	tests := []struct {
		javaPackage string
		expect      string
	}{
		{javaPackage: "com.example", expect: "com.example.kt"},
		{javaPackage: "com.example.model", expect: "com.example.kt.model"},
		{javaPackage: "com.example.api.v1", expect: "api.v1"},
		{javaPackage: "com.examples", expect: "com.examples"},
		{javaPackage: "", expect: ""},
	}
	for _, tt := range tests {
		t.Run(tt.javaPackage, func(t *testing.T) {
			assert.Equal(t, tt.expect, config.KotlinPackage(tt.javaPackage))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/config/stubgen.yaml"
	content := `source: src/main/java
output: build/kotlin
kotlinVersion: 1.7.0
columnLimit: 120
packages:
  com.example: com.example.kt
jvmStatic: false
`
	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(content)))
	config, err := stub.LoadConfig(ctx, fs, URL)
	require.NoError(t, err)
	assert.Equal(t, "src/main/java", config.Source)
	assert.Equal(t, "build/kotlin", config.Output)
	assert.Equal(t, "1.7.0", config.KotlinVersion)
	assert.Equal(t, 120, config.ColumnLimit)
	assert.Equal(t, map[string]string{"com.example": "com.example.kt"}, config.Packages)
	require.NotNil(t, config.JvmStatic)
	assert.False(t, *config.JvmStatic)
	assert.Nil(t, config.FileComment)

	_, err = stub.LoadConfig(ctx, fs, "mem://localhost/config/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, fs.Upload(ctx, "mem://localhost/config/broken.yaml", file.DefaultFileOsMode, strings.NewReader("source: [")))
	_, err = stub.LoadConfig(ctx, fs, "mem://localhost/config/broken.yaml")
	assert.Error(t, err)
}
