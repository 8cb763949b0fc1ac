package poet

import (
	"reflect"
	"strings"
)

// CodeBlock is an immutable fragment of templated Kotlin code.
//
// Format parts are literal text or one of the directives:
//
//	%L literal, %S string literal, %P string template, %T type, %N name, %M member,
//	%% percent sign, %> indent, %< unindent, %[ statement begin, %] statement end, %W wrapping space
type CodeBlock struct {
	parts []string
	args  []interface{}
}

// CodeBlockOf creates a code block from format and positional args
func CodeBlockOf(format string, args ...interface{}) (CodeBlock, error) {
	return NewCodeBlockBuilder().Add(format, args...).Build()
}

// MustCodeBlockOf is like CodeBlockOf but panics on a format error
func MustCodeBlockOf(format string, args ...interface{}) CodeBlock {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		panic(err)
	}
	return block
}

// IsEmpty returns true if block has no format parts
func (c CodeBlock) IsEmpty() bool {
	return len(c.parts) == 0
}

// HasStatements returns true if block contains a statement marker
func (c CodeBlock) HasStatements() bool {
	for _, part := range c.parts {
		if part == "%[" {
			return true
		}
	}
	return false
}

// Trim returns a block without leading and trailing control markers
func (c CodeBlock) Trim() CodeBlock {
	start := 0
	end := len(c.parts)
	for start < end && markerPlaceholders[c.parts[start]] {
		start++
	}
	for end > start && markerPlaceholders[c.parts[end-1]] {
		end--
	}
	if start == 0 && end == len(c.parts) {
		return c
	}
	return CodeBlock{parts: c.parts[start:end:end], args: c.args}
}

// WithoutPrefix returns the remainder of block after prefix, or false when prefix does not match
func (c CodeBlock) WithoutPrefix(prefix CodeBlock) (CodeBlock, bool) {
	if len(c.parts) < len(prefix.parts) || len(c.args) < len(prefix.args) {
		return CodeBlock{}, false
	}
	argIndex := 0
	firstPart := ""
	for i, part := range prefix.parts {
		if c.parts[i] != part {
			// only the last prefix part may match partially
			if i == len(prefix.parts)-1 && !isPlaceholder(part) && !isPlaceholder(c.parts[i]) && strings.HasPrefix(c.parts[i], part) {
				firstPart = c.parts[i][len(part):]
			} else {
				return CodeBlock{}, false
			}
		}
		if isPlaceholder(part) && isArgPlaceholder(part[1]) {
			if !argEqual(c.args[argIndex], prefix.args[argIndex]) {
				return CodeBlock{}, false
			}
			argIndex++
		}
	}
	var parts []string
	if firstPart != "" {
		parts = append(parts, firstPart)
	}
	parts = append(parts, c.parts[len(prefix.parts):]...)
	args := append([]interface{}{}, c.args[len(prefix.args):]...)
	return CodeBlock{parts: parts, args: args}, true
}

// Concat returns a block with the parts of c followed by others
func (c CodeBlock) Concat(others ...CodeBlock) CodeBlock {
	builder := c.ToBuilder()
	for _, other := range others {
		builder.AddCode(other)
	}
	return builder.mustBuild()
}

// ToBuilder returns a builder initialised with block content
func (c CodeBlock) ToBuilder() *CodeBlockBuilder {
	return &CodeBlockBuilder{
		parts: append([]string{}, c.parts...),
		args:  append([]interface{}{}, c.args...),
	}
}

// Render renders block without imports
func (c CodeBlock) Render() (string, error) {
	return renderStandalone(func(w *CodeWriter) {
		w.emitCode(c)
	})
}

// String renders block; it panics when block cannot be rendered
func (c CodeBlock) String() string {
	return mustRender(c.Render())
}

// Equal compares rendered code
func (c CodeBlock) Equal(other CodeBlock) bool {
	left, err := c.Render()
	if err != nil {
		return false
	}
	right, err := other.Render()
	if err != nil {
		return false
	}
	return left == right
}

// JoinToCode joins blocks with separator, the separator, prefix and suffix are literal text
func JoinToCode(blocks []CodeBlock, separator, prefix, suffix string) CodeBlock {
	escape := func(text string) string {
		return strings.ReplaceAll(text, "%", "%%")
	}
	placeholders := make([]string, len(blocks))
	args := make([]interface{}, len(blocks))
	for i := range blocks {
		placeholders[i] = "%L"
		args[i] = blocks[i]
	}
	format := escape(prefix) + strings.Join(placeholders, escape(separator)) + escape(suffix)
	return MustCodeBlockOf(format, args...)
}

func (c CodeBlock) ensureEndsWithNewline() CodeBlock {
	if c.IsEmpty() || c.endsWithNewline() {
		return c
	}
	builder := c.ToBuilder()
	builder.parts = append(builder.parts, "\n")
	return CodeBlock{parts: builder.parts, args: builder.args}
}

// endsWithNewline reports whether the rendered block ends with a newline, nested %L blocks included
func (c CodeBlock) endsWithNewline() bool {
	argIndex := len(c.args)
	for i := len(c.parts) - 1; i >= 0; i-- {
		part := c.parts[i]
		switch part {
		case "%[", "%]", "%>", "%<", "":
			continue
		}
		if !isPlaceholder(part) {
			return strings.HasSuffix(part, "\n")
		}
		if !isArgPlaceholder(part[1]) {
			return false
		}
		argIndex--
		if part != "%L" || argIndex < 0 {
			return false
		}
		switch actual := c.args[argIndex].(type) {
		case CodeBlock:
			if actual.IsEmpty() {
				continue
			}
			return actual.endsWithNewline()
		case string:
			if actual == "" {
				continue
			}
			return strings.HasSuffix(actual, "\n")
		}
		return false
	}
	return false
}

func argEqual(left, right interface{}) bool {
	if leftType, ok := left.(TypeName); ok {
		rightType, ok := right.(TypeName)
		return ok && TypeNameEqual(leftType, rightType)
	}
	if leftBlock, ok := left.(CodeBlock); ok {
		rightBlock, ok := right.(CodeBlock)
		return ok && leftBlock.Equal(rightBlock)
	}
	return reflect.DeepEqual(left, right)
}

// CodeBlockBuilder accumulates format parts; the first error is kept and returned by Build
type CodeBlockBuilder struct {
	parts []string
	args  []interface{}
	err   error
}

// NewCodeBlockBuilder creates an empty builder
func NewCodeBlockBuilder() *CodeBlockBuilder {
	return &CodeBlockBuilder{}
}

// IsEmpty returns true if nothing was added
func (b *CodeBlockBuilder) IsEmpty() bool {
	return len(b.parts) == 0
}

// Err returns the first error recorded by the builder
func (b *CodeBlockBuilder) Err() error {
	return b.err
}

// Add appends format with positional or indexed args
func (b *CodeBlockBuilder) Add(format string, args ...interface{}) *CodeBlockBuilder {
	if b.err != nil {
		return b
	}
	result, err := parsePositional(format, args)
	if err != nil {
		b.err = err
		return b
	}
	b.parts = append(b.parts, result.parts...)
	b.args = append(b.args, result.args...)
	return b
}

// AddNamed appends format with %name:X directives bound from arguments
func (b *CodeBlockBuilder) AddNamed(format string, arguments map[string]interface{}) *CodeBlockBuilder {
	if b.err != nil {
		return b
	}
	result, err := parseNamed(format, arguments)
	if err != nil {
		b.err = err
		return b
	}
	b.parts = append(b.parts, result.parts...)
	b.args = append(b.args, result.args...)
	return b
}

// AddCode appends the parts of block
func (b *CodeBlockBuilder) AddCode(block CodeBlock) *CodeBlockBuilder {
	b.parts = append(b.parts, block.parts...)
	b.args = append(b.args, block.args...)
	return b
}

// AddStatement appends format as a single statement terminated by a line break
func (b *CodeBlockBuilder) AddStatement(format string, args ...interface{}) *CodeBlockBuilder {
	b.Add("%[")
	b.Add(format, args...)
	return b.Add("\n%]")
}

// AddComment appends a line comment
func (b *CodeBlockBuilder) AddComment(format string, args ...interface{}) *CodeBlockBuilder {
	return b.Add("// "+format+"\n", args...)
}

// BeginControlFlow opens a block such as "if (x)" and indents
func (b *CodeBlockBuilder) BeginControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	b.Add(withOpeningBrace(controlFlow), args...)
	return b.Indent()
}

// NextControlFlow closes the current block and opens the next one, such as "else"
func (b *CodeBlockBuilder) NextControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	b.Unindent()
	b.Add("} "+withOpeningBrace(controlFlow), args...)
	return b.Indent()
}

// EndControlFlow closes the current block
func (b *CodeBlockBuilder) EndControlFlow() *CodeBlockBuilder {
	b.Unindent()
	return b.Add("}\n")
}

// Indent increases the indentation level
func (b *CodeBlockBuilder) Indent() *CodeBlockBuilder {
	b.parts = append(b.parts, "%>")
	return b
}

// Unindent decreases the indentation level
func (b *CodeBlockBuilder) Unindent() *CodeBlockBuilder {
	b.parts = append(b.parts, "%<")
	return b
}

// Clear removes all parts and the recorded error
func (b *CodeBlockBuilder) Clear() *CodeBlockBuilder {
	b.parts = nil
	b.args = nil
	b.err = nil
	return b
}

// Build returns the immutable block or the first recorded error
func (b *CodeBlockBuilder) Build() (CodeBlock, error) {
	if b.err != nil {
		return CodeBlock{}, b.err
	}
	return CodeBlock{
		parts: append([]string{}, b.parts...),
		args:  append([]interface{}{}, b.args...),
	}, nil
}

// mustBuild is like Build but panics on a format error
func (b *CodeBlockBuilder) mustBuild() CodeBlock {
	block, err := b.Build()
	if err != nil {
		panic(err)
	}
	return block
}

func withOpeningBrace(controlFlow string) string {
	for i := len(controlFlow) - 1; i >= 0; i-- {
		if controlFlow[i] == '{' {
			return controlFlow + "\n"
		}
		if controlFlow[i] == '}' {
			break
		}
	}
	return controlFlow + " {\n"
}
