package poet

// ParameterSpec is a function, constructor or lambda parameter
type ParameterSpec struct {
	name         string
	typeName     TypeName
	kdoc         CodeBlock
	annotations  []*AnnotationSpec
	modifiers    modifierSet
	defaultValue *CodeBlock
}

// UnnamedParameter returns a parameter of a function type that has only a type
func UnnamedParameter(typeName TypeName) *ParameterSpec {
	return &ParameterSpec{typeName: typeName}
}

// Name returns the parameter name
func (p *ParameterSpec) Name() string {
	return p.name
}

// Type returns the parameter type
func (p *ParameterSpec) Type() TypeName {
	return p.typeName
}

// Kdoc returns the documentation rendered as a @param tag
func (p *ParameterSpec) Kdoc() CodeBlock {
	return p.kdoc
}

// Modifiers returns explicit modifiers in canonical order
func (p *ParameterSpec) Modifiers() []Modifier {
	return p.modifiers.list()
}

// Annotations returns the parameter annotations
func (p *ParameterSpec) Annotations() []*AnnotationSpec {
	return append([]*AnnotationSpec{}, p.annotations...)
}

// DefaultValue returns the default value and whether it is set
func (p *ParameterSpec) DefaultValue() (CodeBlock, bool) {
	if p.defaultValue == nil {
		return CodeBlock{}, false
	}
	return *p.defaultValue, true
}

// ToBuilder returns a builder initialised with the parameter
func (p *ParameterSpec) ToBuilder() *ParameterSpecBuilder {
	builder := NewParameterBuilder(p.name, p.typeName)
	builder.kdoc = p.kdoc.ToBuilder()
	builder.annotations = append(builder.annotations, p.annotations...)
	builder.modifiers = p.modifiers
	builder.defaultValue = p.defaultValue
	return builder
}

// Render renders the parameter without imports
func (p *ParameterSpec) Render() (string, error) {
	return renderStandalone(func(w *CodeWriter) {
		p.emit(w, true)
	})
}

func (p *ParameterSpec) String() string {
	return mustRender(p.Render())
}

func (p *ParameterSpec) emit(w *CodeWriter, includeType bool) {
	w.emitAnnotations(p.annotations, true)
	w.emitModifiers(p.modifiers, 0)
	if p.name != "" {
		w.emitCode(mustCode("%N", p.name))
	}
	if p.name != "" && includeType {
		w.emit(": ")
	}
	if includeType {
		w.emitCode(mustCode("%T", p.typeName))
	}
	p.emitDefaultValue(w)
}

func (p *ParameterSpec) emitDefaultValue(w *CodeWriter) {
	if p.defaultValue == nil {
		return
	}
	if p.defaultValue.HasStatements() {
		w.emitCode(mustCode(" = %L", *p.defaultValue))
		return
	}
	w.emitCode(mustCode(" = %[%L%]", *p.defaultValue))
}

// ParameterSpecBuilder builds a ParameterSpec
type ParameterSpecBuilder struct {
	name         string
	typeName     TypeName
	kdoc         *CodeBlockBuilder
	annotations  []*AnnotationSpec
	modifiers    modifierSet
	defaultValue *CodeBlock
	err          error
}

// NewParameterBuilder creates a builder for name: typeName
func NewParameterBuilder(name string, typeName TypeName, modifiers ...Modifier) *ParameterSpecBuilder {
	builder := &ParameterSpecBuilder{name: name, typeName: typeName, kdoc: NewCodeBlockBuilder()}
	return builder.AddModifiers(modifiers...)
}

// AddKdoc appends documentation
func (b *ParameterSpecBuilder) AddKdoc(format string, args ...interface{}) *ParameterSpecBuilder {
	b.kdoc.Add(format, args...)
	return b
}

// AddAnnotation adds an annotation
func (b *ParameterSpecBuilder) AddAnnotation(annotation *AnnotationSpec) *ParameterSpecBuilder {
	b.annotations = append(b.annotations, annotation)
	return b
}

// AddModifiers adds modifiers
func (b *ParameterSpecBuilder) AddModifiers(modifiers ...Modifier) *ParameterSpecBuilder {
	for _, modifier := range modifiers {
		b.modifiers = b.modifiers.with(modifier)
	}
	return b
}

// DefaultValue sets the default value expression
func (b *ParameterSpecBuilder) DefaultValue(format string, args ...interface{}) *ParameterSpecBuilder {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.DefaultValueCode(block)
}

// DefaultValueCode sets the default value block
func (b *ParameterSpecBuilder) DefaultValueCode(block CodeBlock) *ParameterSpecBuilder {
	if b.defaultValue != nil {
		b.setErr(specError("initializer was already set"))
		return b
	}
	b.defaultValue = &block
	return b
}

func (b *ParameterSpecBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build returns the parameter or the first recorded error
func (b *ParameterSpecBuilder) Build() (*ParameterSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if isNilTypeName(b.typeName) {
		return nil, specError("parameter %s has no type", b.name)
	}
	if _, err := escapeIfNecessary(b.name); err != nil {
		return nil, err
	}
	kdoc, err := b.kdoc.Build()
	if err != nil {
		return nil, err
	}
	for _, modifier := range b.modifiers.list() {
		if !isParameterModifier(modifier) {
			return nil, specError("unexpected parameter modifier %v", modifier)
		}
	}
	return b.build(kdoc), nil
}

func (b *ParameterSpecBuilder) build(kdoc CodeBlock) *ParameterSpec {
	return &ParameterSpec{
		name:         b.name,
		typeName:     b.typeName,
		kdoc:         kdoc,
		annotations:  append([]*AnnotationSpec{}, b.annotations...),
		modifiers:    b.modifiers,
		defaultValue: b.defaultValue,
	}
}

func isParameterModifier(modifier Modifier) bool {
	switch modifier {
	case Vararg, Noinline, Crossinline:
		return true
	}
	return false
}
