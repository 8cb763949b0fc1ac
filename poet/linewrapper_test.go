package poet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kotlinpoet/poet"
)

type wrapStep struct {
	text  string
	level int
	space bool
}

func TestLineWrapper(t *testing.T) {
	tests := []struct {
		name        string
		columnLimit int
		steps       []wrapStep
		expect      string
	}{
		{
			name:        "break taken when the line overflows",
			columnLimit: 10,
			steps:       []wrapStep{{text: "abcde"}, {space: true, level: 2}, {text: "fghij"}},
			expect:      "abcde\n    fghij",
		},
		{
			name:        "space kept when the line fits",
			columnLimit: 11,
			steps:       []wrapStep{{text: "abcde"}, {space: true, level: 2}, {text: "fghij"}},
			expect:      "abcde fghij",
		},
		{
			name:        "consecutive spaces do not stack",
			columnLimit: 10,
			steps:       []wrapStep{{text: "abcde"}, {space: true, level: 1}, {space: true, level: 2}, {text: "fghij"}},
			expect:      "abcde\n    fghij",
		},
		{
			name:        "newline resolves the pending space",
			columnLimit: 10,
			steps:       []wrapStep{{text: "abc"}, {space: true, level: 1}, {text: "de\nfghijklmnop"}},
			expect:      "abc de\nfghijklmnop",
		},
		{
			name:        "multiple breaks",
			columnLimit: 6,
			steps: []wrapStep{
				{text: "abc"}, {space: true, level: 1}, {text: "def"},
				{space: true, level: 1}, {text: "ghi"},
			},
			expect: "abc\n  def\n  ghi",
		},
		{
			name:        "trailing space flushed on close",
			columnLimit: 10,
			steps:       []wrapStep{{text: "abc"}, {space: true, level: 1}},
			expect:      "abc ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &strings.Builder{}
			wrapper := poet.NewLineWrapper(out, "  ", tt.columnLimit)
			for _, step := range tt.steps {
				if step.space {
					require.NoError(t, wrapper.WrappingSpace(step.level))
					continue
				}
				require.NoError(t, wrapper.Append(step.text))
			}
			require.NoError(t, wrapper.Close())
			assert.Equal(t, tt.expect, out.String())
		})
	}
}

func TestLineWrapper_Closed(t *testing.T) {
	wrapper := poet.NewLineWrapper(&strings.Builder{}, "  ", 10)
	require.NoError(t, wrapper.Close())
	err := wrapper.Append("x")
	assert.ErrorIs(t, err, poet.ErrRender)
}
