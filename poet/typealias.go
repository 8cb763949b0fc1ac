package poet

// TypeAliasSpec is a typealias declaration
type TypeAliasSpec struct {
	name          string
	typeName      TypeName
	kdoc          CodeBlock
	annotations   []*AnnotationSpec
	modifiers     modifierSet
	typeVariables []*TypeVariableName
}

// Name returns the alias name
func (t *TypeAliasSpec) Name() string {
	return t.name
}

// Type returns the aliased type
func (t *TypeAliasSpec) Type() TypeName {
	return t.typeName
}

// Modifiers returns explicit modifiers in canonical order
func (t *TypeAliasSpec) Modifiers() []Modifier {
	return t.modifiers.list()
}

// ToBuilder returns a builder initialised with the alias
func (t *TypeAliasSpec) ToBuilder() *TypeAliasSpecBuilder {
	builder := NewTypeAliasBuilder(t.name, t.typeName)
	builder.kdoc = t.kdoc.ToBuilder()
	builder.annotations = append(builder.annotations, t.annotations...)
	builder.modifiers = t.modifiers
	builder.typeVariables = append(builder.typeVariables, t.typeVariables...)
	return builder
}

// Render renders the alias without imports
func (t *TypeAliasSpec) Render() (string, error) {
	return renderStandalone(func(w *CodeWriter) {
		t.emit(w)
	})
}

func (t *TypeAliasSpec) String() string {
	return mustRender(t.Render())
}

func (t *TypeAliasSpec) emit(w *CodeWriter) {
	w.emitKdoc(t.kdoc.ensureEndsWithNewline())
	w.emitAnnotations(t.annotations, false)
	w.emitModifiers(t.modifiers, newModifierSet(Public))
	w.emitCode(mustCode("typealias %N", t.name))
	w.emitTypeVariables(t.typeVariables)
	w.emitCode(mustCode(" = %T", t.typeName))
	w.emit("\n")
}

// TypeAliasSpecBuilder builds a TypeAliasSpec
type TypeAliasSpecBuilder struct {
	name          string
	typeName      TypeName
	kdoc          *CodeBlockBuilder
	annotations   []*AnnotationSpec
	modifiers     modifierSet
	typeVariables []*TypeVariableName
}

// NewTypeAliasBuilder creates a builder for typealias name = typeName
func NewTypeAliasBuilder(name string, typeName TypeName) *TypeAliasSpecBuilder {
	return &TypeAliasSpecBuilder{name: name, typeName: typeName, kdoc: NewCodeBlockBuilder()}
}

// AddKdoc appends documentation
func (b *TypeAliasSpecBuilder) AddKdoc(format string, args ...interface{}) *TypeAliasSpecBuilder {
	b.kdoc.Add(format, args...)
	return b
}

// AddAnnotation adds an annotation
func (b *TypeAliasSpecBuilder) AddAnnotation(annotation *AnnotationSpec) *TypeAliasSpecBuilder {
	b.annotations = append(b.annotations, annotation)
	return b
}

// AddModifiers adds modifiers
func (b *TypeAliasSpecBuilder) AddModifiers(modifiers ...Modifier) *TypeAliasSpecBuilder {
	for _, modifier := range modifiers {
		b.modifiers = b.modifiers.with(modifier)
	}
	return b
}

// AddTypeVariable adds a type parameter
func (b *TypeAliasSpecBuilder) AddTypeVariable(typeVariable *TypeVariableName) *TypeAliasSpecBuilder {
	b.typeVariables = append(b.typeVariables, typeVariable)
	return b
}

// Build returns the alias or an error for an invalid name, type or modifier
func (b *TypeAliasSpecBuilder) Build() (*TypeAliasSpec, error) {
	if b.name == "" {
		return nil, specError("type alias name must not be empty")
	}
	if _, err := escapeIfNecessary(b.name); err != nil {
		return nil, err
	}
	if isNilTypeName(b.typeName) {
		return nil, specError("type alias %s has no type", b.name)
	}
	for _, modifier := range b.modifiers.list() {
		switch modifier {
		case Public, Internal, Private, Actual:
		default:
			return nil, specError("unexpected modifier %v for %v", modifier, targetTypeAlias)
		}
	}
	kdoc, err := b.kdoc.Build()
	if err != nil {
		return nil, err
	}
	return &TypeAliasSpec{
		name:          b.name,
		typeName:      b.typeName,
		kdoc:          kdoc,
		annotations:   append([]*AnnotationSpec{}, b.annotations...),
		modifiers:     b.modifiers,
		typeVariables: append([]*TypeVariableName{}, b.typeVariables...),
	}, nil
}
