package poet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeIfNecessary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		expect  string
		wantErr bool
	}{
		{name: "plain", input: "taco", expect: "taco"},
		{name: "keyword", input: "fun", expect: "`fun`"},
		{name: "soft keyword", input: "value", expect: "value"},
		{name: "space", input: "with space", expect: "`with space`"},
		{name: "dollar", input: "a$b", expect: "`a$b`"},
		{name: "leading digit", input: "1st", expect: "`1st`"},
		{name: "already escaped", input: "`when`", expect: "`when`"},
		{name: "dot", input: "a.b", wantErr: true},
		{name: "angle bracket", input: "List<T>", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := escapeIfNecessary(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrSpec)
				assert.Contains(t, err.Error(), "can't escape identifier "+tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, actual)
		})
	}
}

func TestEscapeSegmentsIfNecessary(t *testing.T) {
	actual, err := escapeSegmentsIfNecessary("com.example.in.when")
	require.NoError(t, err)
	assert.Equal(t, "com.example.`in`.`when`", actual)
}

func TestStringLiteralWithQuotes(t *testing.T) {
	tests := []struct {
		name            string
		value           string
		escapeDollar    bool
		constantContext bool
		expect          string
	}{
		{name: "plain", value: "taco", escapeDollar: true, expect: `"taco"`},
		{name: "quotes and backslash", value: `a"b\c`, escapeDollar: true, expect: `"a\"b\\c"`},
		{name: "single quote", value: "it's", escapeDollar: true, expect: `"it's"`},
		{name: "dollar escaped", value: "$5", escapeDollar: true, expect: `"\$5"`},
		{name: "dollar template", value: "$name", expect: `"$name"`},
		{name: "control character", value: "\x01", escapeDollar: true, expect: `"\u0001"`},
		{
			name:         "multi-line raw string",
			value:        "first\nsecond",
			escapeDollar: true,
			expect:       "\"\"\"\n|first\n|second\n\"\"\".trimMargin()",
		},
		{
			name:         "raw string dollar",
			value:        "cost $\n",
			escapeDollar: true,
			expect:       "\"\"\"\n|cost ${'$'}\n|\"\"\".trimMargin()",
		},
		{
			name:            "constant context keeps escapes",
			value:           "first\nsecond",
			escapeDollar:    true,
			constantContext: true,
			expect:          `"first\nsecond"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, stringLiteralWithQuotes(tt.value, tt.escapeDollar, tt.constantContext))
		})
	}
}

func TestModifierSet(t *testing.T) {
	set := newModifierSet(Override, Public, Open)
	assert.Equal(t, []Modifier{Public, Open, Override}, set.list())
	assert.True(t, set.hasVisibility())
	assert.False(t, set.without(Public).hasVisibility())
	assert.True(t, set.hasAny(Abstract, Open))
	assert.Equal(t, "OVERRIDE", Override.String())
	assert.Equal(t, "override", Override.Keyword())
	require.NoError(t, Companion.checkTarget(targetObject))
	err := Companion.checkTarget(targetClass)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected modifier COMPANION for CLASS")
	require.NoError(t, Expect.checkTarget(targetProperty))
}
