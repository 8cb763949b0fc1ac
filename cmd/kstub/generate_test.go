package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kotlinpoet/stub"
)

func TestGenerateCmd(t *testing.T) {
	dir := t.TempDir()
	sourceDir := filepath.Join(dir, "src", "com", "example")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	source := "package com.example;\n\npublic interface Clock {\n    long now();\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "Clock.java"), []byte(source), 0o644))

	rootCmd.SetArgs([]string{"generate",
		"--source", filepath.Join(dir, "src"),
		"--output", filepath.Join(dir, "out"),
		"--package", "com.example=com.example.kt",
	})
	require.NoError(t, rootCmd.Execute())

	content, err := os.ReadFile(filepath.Join(dir, "out", "com", "example", "kt", "Clock.kt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package com.example.kt\n")
	assert.Contains(t, string(content), "fun now(): Long\n")
}

func TestApplyFlags_InvalidPackage(t *testing.T) {
	packages = []string{"com.example"}
	defer func() { packages = nil }()
	err := applyFlags(generateCmd, &stub.Config{})
	assert.EqualError(t, err, `invalid package mapping "com.example", expected java=kotlin`)
}
