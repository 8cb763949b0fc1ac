package poet

const (
	constructorName = "constructor()"
	getterName      = "get()"
	setterName      = "set()"
)

var (
	returnPrefix = mustCode("return ")
	throwPrefix  = mustCode("throw ")
)

// FunSpec is a function, constructor or property accessor
type FunSpec struct {
	name                         string
	kdoc                         CodeBlock
	returnKdoc                   CodeBlock
	receiverKdoc                 CodeBlock
	annotations                  []*AnnotationSpec
	modifiers                    modifierSet
	typeVariables                []*TypeVariableName
	receiverType                 TypeName
	returnType                   TypeName
	parameters                   []*ParameterSpec
	delegateConstructor          string
	delegateConstructorArguments []CodeBlock
	body                         CodeBlock
}

// Name returns the function name; constructors and accessors use constructor(), get() and set()
func (f *FunSpec) Name() string {
	return f.name
}

// IsConstructor returns true for a constructor
func (f *FunSpec) IsConstructor() bool {
	return f.name == constructorName
}

// IsAccessor returns true for a property getter or setter
func (f *FunSpec) IsAccessor() bool {
	return f.name == getterName || f.name == setterName
}

// Modifiers returns explicit modifiers in canonical order
func (f *FunSpec) Modifiers() []Modifier {
	return f.modifiers.list()
}

// Parameters returns the parameters
func (f *FunSpec) Parameters() []*ParameterSpec {
	return append([]*ParameterSpec{}, f.parameters...)
}

// ReturnType returns the declared return type or nil
func (f *FunSpec) ReturnType() TypeName {
	return f.returnType
}

// Body returns the function body
func (f *FunSpec) Body() CodeBlock {
	return f.body
}

// Parameter returns the parameter called name or nil
func (f *FunSpec) Parameter(name string) *ParameterSpec {
	for _, parameter := range f.parameters {
		if parameter.name == name {
			return parameter
		}
	}
	return nil
}

// ToBuilder returns a builder initialised with the function
func (f *FunSpec) ToBuilder() *FunSpecBuilder {
	builder := NewFunBuilder(f.name)
	builder.kdoc = f.kdoc.ToBuilder()
	builder.returnKdoc = f.returnKdoc
	builder.receiverKdoc = f.receiverKdoc
	builder.annotations = append(builder.annotations, f.annotations...)
	builder.modifiers = f.modifiers
	builder.typeVariables = append(builder.typeVariables, f.typeVariables...)
	builder.receiverType = f.receiverType
	builder.returnType = f.returnType
	builder.parameters = append(builder.parameters, f.parameters...)
	builder.delegateConstructor = f.delegateConstructor
	builder.delegateConstructorArguments = append(builder.delegateConstructorArguments, f.delegateConstructorArguments...)
	builder.body = f.body.ToBuilder()
	return builder
}

// Render renders the function without imports
func (f *FunSpec) Render() (string, error) {
	return renderStandalone(func(w *CodeWriter) {
		f.emit(w, "Constructor", 0, true)
	})
}

func (f *FunSpec) String() string {
	return mustRender(f.Render())
}

func (f *FunSpec) emit(w *CodeWriter, enclosingName string, implicitModifiers modifierSet, includeKdocTags bool) {
	if includeKdocTags {
		w.emitKdoc(f.kdocWithTags())
	} else {
		w.emitKdoc(f.kdoc.ensureEndsWithNewline())
	}
	w.emitAnnotations(f.annotations, false)
	w.emitModifiers(f.modifiers, implicitModifiers)

	if !f.IsConstructor() && !f.IsAccessor() {
		w.emit("fun ")
	}
	if len(f.typeVariables) > 0 {
		w.emitTypeVariables(f.typeVariables)
		w.emit(" ")
	}
	f.emitSignature(w, enclosingName)
	w.emitWhereBlock(f.typeVariables)

	isEmptyConstructor := f.IsConstructor() && f.body.IsEmpty()
	if f.modifiers.hasAny(Abstract, External, Expect) || implicitModifiers.has(Expect) || implicitModifiers.has(External) || isEmptyConstructor {
		w.emit("\n")
		return
	}

	if expression, ok := f.expressionBody(); ok {
		w.emitCode(mustCode(" = %L", expression))
		if !w.trailingNewline {
			w.emit("\n")
		}
		return
	}
	w.emit(" {\n")
	w.indentBy(1)
	w.emitCode(f.body.ensureEndsWithNewline())
	w.unindentBy(1)
	w.emit("}\n")
}

// expressionBody returns the expression of a single return or throw statement
func (f *FunSpec) expressionBody() (CodeBlock, bool) {
	if f.IsConstructor() || f.body.IsEmpty() {
		return CodeBlock{}, false
	}
	statements := 0
	for _, part := range f.body.parts {
		if part == "%[" {
			statements++
		}
	}
	if statements > 1 {
		return CodeBlock{}, false
	}
	trimmed := f.body.Trim()
	if expression, ok := trimmed.WithoutPrefix(returnPrefix); ok {
		return expression, true
	}
	if _, ok := trimmed.WithoutPrefix(throwPrefix); ok {
		return trimmed, true
	}
	return CodeBlock{}, false
}

func (f *FunSpec) emitSignature(w *CodeWriter, enclosingName string) {
	switch f.name {
	case constructorName:
		w.emit("constructor")
	case getterName:
		w.emit("get")
	case setterName:
		w.emit("set")
	default:
		if f.receiverType != nil {
			if _, ok := f.receiverType.(*LambdaTypeName); ok {
				w.emitCode(mustCode("(%T).", f.receiverType))
			} else {
				w.emitCode(mustCode("%T.", f.receiverType))
			}
		}
		w.emitCode(mustCode("%N", f.name))
	}

	w.emit("(")
	for i, parameter := range f.parameters {
		if i > 0 {
			w.emitCode(mustCode(",%W"))
		}
		parameter.emit(w, f.name != setterName)
	}
	w.emit(")")

	if f.returnType != nil {
		w.emitCode(mustCode(": %T", f.returnType))
	}
	if f.delegateConstructor != "" {
		w.emitCode(JoinToCode(f.delegateConstructorArguments, ", ", " : "+f.delegateConstructor+"(", ")"))
	}
}

func (f *FunSpec) kdocWithTags() CodeBlock {
	builder := f.kdoc.ensureEndsWithNewline().ToBuilder()
	hasTags := !f.receiverKdoc.IsEmpty() || !f.returnKdoc.IsEmpty()
	for _, parameter := range f.parameters {
		hasTags = hasTags || !parameter.kdoc.IsEmpty()
	}
	if !hasTags {
		return builder.mustBuild()
	}
	if !builder.IsEmpty() {
		builder.Add("\n")
	}
	if !f.receiverKdoc.IsEmpty() {
		builder.Add("@receiver %L", f.receiverKdoc.ensureEndsWithNewline())
	}
	for _, parameter := range f.parameters {
		if !parameter.kdoc.IsEmpty() {
			builder.Add("@param %L %L", parameter.name, parameter.kdoc.ensureEndsWithNewline())
		}
	}
	if !f.returnKdoc.IsEmpty() {
		builder.Add("@return %L", f.returnKdoc.ensureEndsWithNewline())
	}
	return builder.mustBuild()
}

// FunSpecBuilder builds a FunSpec
type FunSpecBuilder struct {
	name                         string
	kdoc                         *CodeBlockBuilder
	returnKdoc                   CodeBlock
	receiverKdoc                 CodeBlock
	annotations                  []*AnnotationSpec
	modifiers                    modifierSet
	typeVariables                []*TypeVariableName
	receiverType                 TypeName
	returnType                   TypeName
	parameters                   []*ParameterSpec
	delegateConstructor          string
	delegateConstructorArguments []CodeBlock
	body                         *CodeBlockBuilder
	err                          error
}

// NewFunBuilder creates a builder for a function called name
func NewFunBuilder(name string) *FunSpecBuilder {
	return &FunSpecBuilder{name: name, kdoc: NewCodeBlockBuilder(), body: NewCodeBlockBuilder()}
}

// NewConstructorBuilder creates a builder for a secondary or primary constructor
func NewConstructorBuilder() *FunSpecBuilder {
	return NewFunBuilder(constructorName)
}

// NewGetterBuilder creates a builder for a property getter
func NewGetterBuilder() *FunSpecBuilder {
	return NewFunBuilder(getterName)
}

// NewSetterBuilder creates a builder for a property setter
func NewSetterBuilder() *FunSpecBuilder {
	return NewFunBuilder(setterName)
}

func (b *FunSpecBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddKdoc appends documentation
func (b *FunSpecBuilder) AddKdoc(format string, args ...interface{}) *FunSpecBuilder {
	b.kdoc.Add(format, args...)
	return b
}

// AddReturnKdoc sets the @return documentation
func (b *FunSpecBuilder) AddReturnKdoc(format string, args ...interface{}) *FunSpecBuilder {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		b.setErr(err)
		return b
	}
	b.returnKdoc = b.returnKdoc.Concat(block)
	return b
}

// AddReceiverKdoc sets the @receiver documentation
func (b *FunSpecBuilder) AddReceiverKdoc(format string, args ...interface{}) *FunSpecBuilder {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		b.setErr(err)
		return b
	}
	b.receiverKdoc = b.receiverKdoc.Concat(block)
	return b
}

// AddAnnotation adds an annotation
func (b *FunSpecBuilder) AddAnnotation(annotation *AnnotationSpec) *FunSpecBuilder {
	b.annotations = append(b.annotations, annotation)
	return b
}

// AddModifiers adds modifiers
func (b *FunSpecBuilder) AddModifiers(modifiers ...Modifier) *FunSpecBuilder {
	for _, modifier := range modifiers {
		b.modifiers = b.modifiers.with(modifier)
	}
	return b
}

// AddTypeVariable adds a type parameter
func (b *FunSpecBuilder) AddTypeVariable(typeVariable *TypeVariableName) *FunSpecBuilder {
	b.typeVariables = append(b.typeVariables, typeVariable)
	return b
}

// Receiver sets the extension receiver type
func (b *FunSpecBuilder) Receiver(receiverType TypeName) *FunSpecBuilder {
	b.receiverType = receiverType
	return b
}

// Returns sets the return type
func (b *FunSpecBuilder) Returns(returnType TypeName) *FunSpecBuilder {
	b.returnType = returnType
	return b
}

// AddParameter adds a built parameter
func (b *FunSpecBuilder) AddParameter(parameter *ParameterSpec) *FunSpecBuilder {
	b.parameters = append(b.parameters, parameter)
	return b
}

// AddParameterOf adds name: typeName
func (b *FunSpecBuilder) AddParameterOf(name string, typeName TypeName, modifiers ...Modifier) *FunSpecBuilder {
	parameter, err := NewParameterBuilder(name, typeName, modifiers...).Build()
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.AddParameter(parameter)
}

// CallThisConstructor delegates a secondary constructor to another constructor of the class
func (b *FunSpecBuilder) CallThisConstructor(args ...CodeBlock) *FunSpecBuilder {
	return b.callConstructor("this", args)
}

// CallSuperConstructor delegates a secondary constructor to a superclass constructor
func (b *FunSpecBuilder) CallSuperConstructor(args ...CodeBlock) *FunSpecBuilder {
	return b.callConstructor("super", args)
}

func (b *FunSpecBuilder) callConstructor(delegate string, args []CodeBlock) *FunSpecBuilder {
	if b.name != constructorName {
		b.setErr(specError("only constructors can delegate to other constructors!"))
		return b
	}
	b.delegateConstructor = delegate
	b.delegateConstructorArguments = append([]CodeBlock{}, args...)
	return b
}

// AddCode appends code to the body
func (b *FunSpecBuilder) AddCode(format string, args ...interface{}) *FunSpecBuilder {
	b.body.Add(format, args...)
	return b
}

// AddNamedCode appends code with named arguments to the body
func (b *FunSpecBuilder) AddNamedCode(format string, arguments map[string]interface{}) *FunSpecBuilder {
	b.body.AddNamed(format, arguments)
	return b
}

// AddCodeBlock appends block to the body
func (b *FunSpecBuilder) AddCodeBlock(block CodeBlock) *FunSpecBuilder {
	b.body.AddCode(block)
	return b
}

// AddStatement appends a statement to the body
func (b *FunSpecBuilder) AddStatement(format string, args ...interface{}) *FunSpecBuilder {
	b.body.AddStatement(format, args...)
	return b
}

// AddComment appends a line comment to the body
func (b *FunSpecBuilder) AddComment(format string, args ...interface{}) *FunSpecBuilder {
	b.body.AddComment(format, args...)
	return b
}

// BeginControlFlow opens a control flow block in the body
func (b *FunSpecBuilder) BeginControlFlow(controlFlow string, args ...interface{}) *FunSpecBuilder {
	b.body.BeginControlFlow(controlFlow, args...)
	return b
}

// NextControlFlow continues a control flow block in the body
func (b *FunSpecBuilder) NextControlFlow(controlFlow string, args ...interface{}) *FunSpecBuilder {
	b.body.NextControlFlow(controlFlow, args...)
	return b
}

// EndControlFlow closes a control flow block in the body
func (b *FunSpecBuilder) EndControlFlow() *FunSpecBuilder {
	b.body.EndControlFlow()
	return b
}

// Build returns the function or the first recorded error
func (b *FunSpecBuilder) Build() (*FunSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	kdoc, err := b.kdoc.Build()
	if err != nil {
		return nil, err
	}
	body, err := b.body.Build()
	if err != nil {
		return nil, err
	}
	if err := b.validate(body); err != nil {
		return nil, err
	}
	return &FunSpec{
		name:                         b.name,
		kdoc:                         kdoc,
		returnKdoc:                   b.returnKdoc,
		receiverKdoc:                 b.receiverKdoc,
		annotations:                  append([]*AnnotationSpec{}, b.annotations...),
		modifiers:                    b.modifiers,
		typeVariables:                append([]*TypeVariableName{}, b.typeVariables...),
		receiverType:                 b.receiverType,
		returnType:                   b.returnType,
		parameters:                   append([]*ParameterSpec{}, b.parameters...),
		delegateConstructor:          b.delegateConstructor,
		delegateConstructorArguments: append([]CodeBlock{}, b.delegateConstructorArguments...),
		body:                         body,
	}, nil
}

func (b *FunSpecBuilder) validate(body CodeBlock) error {
	isConstructor := b.name == constructorName
	isAccessor := b.name == getterName || b.name == setterName
	if !isConstructor && !isAccessor {
		if b.name == "" {
			return specError("function name must not be empty")
		}
		if _, err := escapeIfNecessary(b.name); err != nil {
			return err
		}
	}
	if b.modifiers.has(Abstract) && !body.IsEmpty() {
		return specError("abstract function %s cannot have code", b.name)
	}
	switch b.name {
	case getterName:
		if len(b.parameters) > 0 {
			return specError("%s cannot have parameters", b.name)
		}
	case setterName:
		if len(b.parameters) > 1 {
			return specError("%s can have at most one parameter", b.name)
		}
		if len(b.parameters) == 0 && !body.IsEmpty() {
			return specError("parameterless setter cannot have code")
		}
	}
	if (isConstructor || isAccessor) && len(b.typeVariables) > 0 {
		return specError("%s cannot have type variables", b.name)
	}
	if (isConstructor || isAccessor) && !isNilTypeName(b.receiverType) {
		return specError("%s cannot have receiver type", b.name)
	}
	if (isConstructor || b.name == setterName) && !isNilTypeName(b.returnType) {
		return specError("%s cannot have a return type", b.name)
	}
	for _, typeVariable := range b.typeVariables {
		if typeVariable.reified && !b.modifiers.has(Inline) {
			return specError("only type parameters of inline functions can be reified!")
		}
	}
	if !isAccessor {
		functionTarget := targetFunction
		if isConstructor {
			functionTarget = targetConstructor
		}
		for _, modifier := range b.modifiers.list() {
			if err := modifier.checkTarget(functionTarget); err != nil {
				return err
			}
		}
	}
	varargs := 0
	for _, parameter := range b.parameters {
		if parameter.modifiers.has(Vararg) {
			varargs++
		}
	}
	if varargs > 1 {
		return specError("%s can have at most one vararg parameter", b.name)
	}
	return nil
}
