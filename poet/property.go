package poet

// PropertySpec is a val or var declaration
type PropertySpec struct {
	mutable       bool
	name          string
	typeName      TypeName
	kdoc          CodeBlock
	annotations   []*AnnotationSpec
	modifiers     modifierSet
	typeVariables []*TypeVariableName
	initializer   *CodeBlock
	delegated     bool
	getter        *FunSpec
	setter        *FunSpec
	receiverType  TypeName
}

// Name returns the property name
func (p *PropertySpec) Name() string {
	return p.name
}

// Type returns the property type
func (p *PropertySpec) Type() TypeName {
	return p.typeName
}

// IsMutable returns true for var properties
func (p *PropertySpec) IsMutable() bool {
	return p.mutable
}

// Modifiers returns explicit modifiers in canonical order
func (p *PropertySpec) Modifiers() []Modifier {
	return p.modifiers.list()
}

// Initializer returns the initializer and whether it is set
func (p *PropertySpec) Initializer() (CodeBlock, bool) {
	if p.initializer == nil {
		return CodeBlock{}, false
	}
	return *p.initializer, true
}

// IsDelegated returns true when the initializer is a delegate expression
func (p *PropertySpec) IsDelegated() bool {
	return p.delegated
}

// Getter returns the custom getter or nil
func (p *PropertySpec) Getter() *FunSpec {
	return p.getter
}

// Setter returns the custom setter or nil
func (p *PropertySpec) Setter() *FunSpec {
	return p.setter
}

// ToBuilder returns a builder initialised with the property
func (p *PropertySpec) ToBuilder() *PropertySpecBuilder {
	builder := NewPropertyBuilder(p.name, p.typeName)
	builder.mutable = p.mutable
	builder.kdoc = p.kdoc.ToBuilder()
	builder.annotations = append(builder.annotations, p.annotations...)
	builder.modifiers = p.modifiers
	builder.typeVariables = append(builder.typeVariables, p.typeVariables...)
	builder.initializer = p.initializer
	builder.delegated = p.delegated
	builder.getter = p.getter
	builder.setter = p.setter
	builder.receiverType = p.receiverType
	return builder
}

// Render renders the property without imports
func (p *PropertySpec) Render() (string, error) {
	return renderStandalone(func(w *CodeWriter) {
		p.emit(w, 0, true, false)
	})
}

func (p *PropertySpec) String() string {
	return mustRender(p.Render())
}

func (p *PropertySpec) emit(w *CodeWriter, implicitModifiers modifierSet, withInitializer bool, inline bool) {
	if inline {
		w.emitAnnotations(p.annotations, true)
	} else {
		w.emitKdoc(p.kdoc.ensureEndsWithNewline())
		w.emitAnnotations(p.annotations, false)
	}
	w.emitModifiers(p.modifiers, implicitModifiers)
	if p.mutable {
		w.emit("var ")
	} else {
		w.emit("val ")
	}
	if len(p.typeVariables) > 0 {
		w.emitTypeVariables(p.typeVariables)
		w.emit(" ")
	}
	if p.receiverType != nil {
		if _, ok := p.receiverType.(*LambdaTypeName); ok {
			w.emitCode(mustCode("(%T).", p.receiverType))
		} else {
			w.emitCode(mustCode("%T.", p.receiverType))
		}
	}
	w.emitCode(mustCode("%N: %T", p.name, p.typeName))
	if withInitializer && p.initializer != nil {
		if p.delegated {
			w.emit(" by ")
		} else {
			w.emit(" = ")
		}
		constantContext := w.constantContext
		w.constantContext = p.modifiers.has(Const)
		if p.initializer.HasStatements() {
			w.emitCode(mustCode("%L", *p.initializer))
		} else {
			w.emitCode(mustCode("%[%L%]", *p.initializer))
		}
		w.constantContext = constantContext
	}
	w.emitWhereBlock(p.typeVariables)
	if inline {
		return
	}
	w.emit("\n")

	accessorModifiers := newModifierSet(Public)
	if implicitModifiers.has(Expect) {
		accessorModifiers = accessorModifiers.with(Expect)
	}
	if p.getter != nil {
		w.indentBy(1)
		p.getter.emit(w, "", accessorModifiers, false)
		w.unindentBy(1)
	}
	if p.setter != nil {
		w.indentBy(1)
		p.setter.emit(w, "", accessorModifiers, false)
		w.unindentBy(1)
	}
}

// PropertySpecBuilder builds a PropertySpec
type PropertySpecBuilder struct {
	mutable       bool
	name          string
	typeName      TypeName
	kdoc          *CodeBlockBuilder
	annotations   []*AnnotationSpec
	modifiers     modifierSet
	typeVariables []*TypeVariableName
	initializer   *CodeBlock
	delegated     bool
	getter        *FunSpec
	setter        *FunSpec
	receiverType  TypeName
	err           error
}

// NewPropertyBuilder creates a builder for val name: typeName
func NewPropertyBuilder(name string, typeName TypeName, modifiers ...Modifier) *PropertySpecBuilder {
	builder := &PropertySpecBuilder{name: name, typeName: typeName, kdoc: NewCodeBlockBuilder()}
	return builder.AddModifiers(modifiers...)
}

func (b *PropertySpecBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Mutable switches between var and val
func (b *PropertySpecBuilder) Mutable(mutable bool) *PropertySpecBuilder {
	b.mutable = mutable
	return b
}

// AddKdoc appends documentation
func (b *PropertySpecBuilder) AddKdoc(format string, args ...interface{}) *PropertySpecBuilder {
	b.kdoc.Add(format, args...)
	return b
}

// AddAnnotation adds an annotation
func (b *PropertySpecBuilder) AddAnnotation(annotation *AnnotationSpec) *PropertySpecBuilder {
	b.annotations = append(b.annotations, annotation)
	return b
}

// AddModifiers adds modifiers
func (b *PropertySpecBuilder) AddModifiers(modifiers ...Modifier) *PropertySpecBuilder {
	for _, modifier := range modifiers {
		b.modifiers = b.modifiers.with(modifier)
	}
	return b
}

// AddTypeVariable adds a type parameter of an extension property
func (b *PropertySpecBuilder) AddTypeVariable(typeVariable *TypeVariableName) *PropertySpecBuilder {
	b.typeVariables = append(b.typeVariables, typeVariable)
	return b
}

// Receiver sets the extension receiver type
func (b *PropertySpecBuilder) Receiver(receiverType TypeName) *PropertySpecBuilder {
	b.receiverType = receiverType
	return b
}

// Initializer sets the initializer expression
func (b *PropertySpecBuilder) Initializer(format string, args ...interface{}) *PropertySpecBuilder {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.InitializerCode(block)
}

// InitializerCode sets the initializer block
func (b *PropertySpecBuilder) InitializerCode(block CodeBlock) *PropertySpecBuilder {
	return b.setInitializer(block, false)
}

// Delegate sets a delegate expression rendered after by
func (b *PropertySpecBuilder) Delegate(format string, args ...interface{}) *PropertySpecBuilder {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.DelegateCode(block)
}

// DelegateCode sets a delegate block rendered after by
func (b *PropertySpecBuilder) DelegateCode(block CodeBlock) *PropertySpecBuilder {
	return b.setInitializer(block, true)
}

func (b *PropertySpecBuilder) setInitializer(block CodeBlock, delegated bool) *PropertySpecBuilder {
	if b.initializer != nil {
		b.setErr(specError("initializer was already set"))
		return b
	}
	b.initializer = &block
	b.delegated = delegated
	return b
}

// Getter sets the custom getter
func (b *PropertySpecBuilder) Getter(getter *FunSpec) *PropertySpecBuilder {
	if getter == nil || getter.name != getterName {
		b.setErr(specError("%v is not a getter", funName(getter)))
		return b
	}
	if b.getter != nil {
		b.setErr(specError("getter was already set"))
		return b
	}
	b.getter = getter
	return b
}

// Setter sets the custom setter
func (b *PropertySpecBuilder) Setter(setter *FunSpec) *PropertySpecBuilder {
	if setter == nil || setter.name != setterName {
		b.setErr(specError("%v is not a setter", funName(setter)))
		return b
	}
	if b.setter != nil {
		b.setErr(specError("setter was already set"))
		return b
	}
	b.setter = setter
	return b
}

func funName(funSpec *FunSpec) string {
	if funSpec == nil {
		return "<nil>"
	}
	return funSpec.name
}

// Build returns the property or the first recorded error
func (b *PropertySpecBuilder) Build() (*PropertySpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if isNilTypeName(b.typeName) {
		return nil, specError("property %s has no type", b.name)
	}
	if b.name == "" {
		return nil, specError("property name must not be empty")
	}
	if _, err := escapeIfNecessary(b.name); err != nil {
		return nil, err
	}
	for _, modifier := range b.modifiers.list() {
		if err := modifier.checkTarget(targetProperty); err != nil {
			return nil, err
		}
	}
	if b.setter != nil && !b.mutable {
		return nil, specError("only a mutable property can have a setter")
	}
	if b.modifiers.has(Const) && b.mutable {
		return nil, specError("const property %s must be immutable", b.name)
	}
	inlineAccessors := (b.getter != nil && b.getter.modifiers.has(Inline)) || (b.setter != nil && b.setter.modifiers.has(Inline))
	for _, typeVariable := range b.typeVariables {
		if typeVariable.reified && !inlineAccessors {
			return nil, specError("only type parameters of properties with inline getters and/or setters can be reified!")
		}
	}
	kdoc, err := b.kdoc.Build()
	if err != nil {
		return nil, err
	}
	return &PropertySpec{
		mutable:       b.mutable,
		name:          b.name,
		typeName:      b.typeName,
		kdoc:          kdoc,
		annotations:   append([]*AnnotationSpec{}, b.annotations...),
		modifiers:     b.modifiers,
		typeVariables: append([]*TypeVariableName{}, b.typeVariables...),
		initializer:   b.initializer,
		delegated:     b.delegated,
		getter:        b.getter,
		setter:        b.setter,
		receiverType:  b.receiverType,
	}, nil
}
