package poet

// TypeKind is the declaration keyword family of a type
type TypeKind int

const (
	KindClass TypeKind = iota
	KindObject
	KindInterface
)

var typeKindKeywords = [...]string{
	KindClass:     "class",
	KindObject:    "object",
	KindInterface: "interface",
}

func (k TypeKind) String() string {
	return typeKindKeywords[k]
}

func (k TypeKind) target() target {
	switch k {
	case KindObject:
		return targetObject
	case KindInterface:
		return targetInterface
	}
	return targetClass
}

// implicitMemberModifiers returns the modifiers members of a type of kind k do not print
func (k TypeKind) implicitMemberModifiers(modifiers modifierSet, property bool) modifierSet {
	result := newModifierSet(Public)
	if k == KindInterface {
		result = result.with(Abstract)
	}
	switch {
	case property && modifiers.has(Annotation):
	case modifiers.has(Expect):
		result = result.with(Expect)
	case modifiers.has(External):
		result = result.with(External)
	}
	return result
}

// withImplicitFinal adds final to the implicit modifiers of a non overriding member of a class kind
func (k TypeKind) withImplicitFinal(implicit, member modifierSet) modifierSet {
	if k == KindInterface || member.has(Override) {
		return implicit
	}
	return implicit.with(Final)
}

func implicitTypeModifiers(modifiers modifierSet) modifierSet {
	switch {
	case modifiers.has(Expect):
		return newModifierSet(Expect)
	case modifiers.has(External):
		return newModifierSet(External)
	}
	return 0
}

type superinterface struct {
	typeName TypeName
	delegate *CodeBlock
}

type enumConstant struct {
	name     string
	typeSpec *TypeSpec
}

// TypeSpec is a class, object, interface, enum, annotation class, companion or anonymous object
type TypeSpec struct {
	kind                            TypeKind
	name                            string
	kdoc                            CodeBlock
	annotations                     []*AnnotationSpec
	modifiers                       modifierSet
	typeVariables                   []*TypeVariableName
	primaryConstructor              *FunSpec
	superclass                      TypeName
	superclassConstructorParameters []CodeBlock
	superinterfaces                 []superinterface
	enumConstants                   []enumConstant
	propertySpecs                   []*PropertySpec
	initializerBlock                CodeBlock
	initializerIndex                int
	funSpecs                        []*FunSpec
	typeSpecs                       []*TypeSpec
	typeAliasSpecs                  []*TypeAliasSpec
}

// Kind returns the declaration kind
func (t *TypeSpec) Kind() TypeKind {
	return t.kind
}

// Name returns the type name, empty for anonymous objects and unnamed companions
func (t *TypeSpec) Name() string {
	return t.name
}

// Modifiers returns explicit modifiers in canonical order
func (t *TypeSpec) Modifiers() []Modifier {
	return t.modifiers.list()
}

// IsAnonymous returns true for an object expression
func (t *TypeSpec) IsAnonymous() bool {
	return t.name == "" && t.kind == KindClass
}

// IsEnum returns true for an enum class
func (t *TypeSpec) IsEnum() bool {
	return t.kind == KindClass && t.modifiers.has(Enum)
}

// IsAnnotation returns true for an annotation class
func (t *TypeSpec) IsAnnotation() bool {
	return t.kind == KindClass && t.modifiers.has(Annotation)
}

// IsCompanion returns true for a companion object
func (t *TypeSpec) IsCompanion() bool {
	return t.kind == KindObject && t.modifiers.has(Companion)
}

// PropertySpecs returns the declared properties
func (t *TypeSpec) PropertySpecs() []*PropertySpec {
	return append([]*PropertySpec{}, t.propertySpecs...)
}

// FunSpecs returns the declared functions and secondary constructors
func (t *TypeSpec) FunSpecs() []*FunSpec {
	return append([]*FunSpec{}, t.funSpecs...)
}

// TypeSpecs returns the nested types
func (t *TypeSpec) TypeSpecs() []*TypeSpec {
	return append([]*TypeSpec{}, t.typeSpecs...)
}

// EnumConstantNames returns the enum constant names in declaration order
func (t *TypeSpec) EnumConstantNames() []string {
	var result []string
	for _, constant := range t.enumConstants {
		result = append(result, constant.name)
	}
	return result
}

// PrimaryConstructor returns the primary constructor or nil
func (t *TypeSpec) PrimaryConstructor() *FunSpec {
	return t.primaryConstructor
}

// Render renders the type without imports
func (t *TypeSpec) Render() (string, error) {
	return renderStandalone(func(w *CodeWriter) {
		t.emit(w, "", 0)
	})
}

func (t *TypeSpec) String() string {
	return mustRender(t.Render())
}

func (t *TypeSpec) emit(w *CodeWriter, enumName string, implicitModifiers modifierSet) {
	// nested types interrupt the wrapped statement indentation
	previousStatementLine := w.statementLine
	w.statementLine = -1
	defer func() {
		w.statementLine = previousStatementLine
	}()

	constructorProperties := t.constructorProperties()
	superclassArguments := JoinToCode(t.superclassConstructorParameters, ", ", "", "")
	hasNoBody := t.hasNoBody(constructorProperties)

	switch {
	case enumName != "":
		w.emitKdoc(t.kdocWithConstructorDocs())
		w.emitAnnotations(t.annotations, false)
		w.emitCode(mustCode("%N", enumName))
		if !superclassArguments.IsEmpty() {
			w.emit("(")
			w.emitCode(superclassArguments)
			w.emit(")")
		}
		if hasNoBody {
			return
		}
		w.emit(" {\n")
	case t.IsAnonymous():
		w.emit("object")
		var superTypes []CodeBlock
		if !isNilTypeName(t.superclass) {
			superTypes = append(superTypes, mustCode("%T(%L)", t.superclass, superclassArguments))
		}
		superTypes = append(superTypes, t.superinterfaceBlocks()...)
		if len(superTypes) > 0 {
			w.emitCode(JoinToCode(superTypes, ", ", " : ", ""))
		}
		if hasNoBody {
			w.emit(" {\n}")
			return
		}
		w.emit(" {\n")
	default:
		w.emitKdoc(t.kdocWithConstructorDocs())
		w.emitAnnotations(t.annotations, false)
		w.emitModifiers(t.modifiers, implicitModifiers.with(Public))
		w.emit(t.kind.String())
		if t.name != "" {
			w.emitCode(mustCode(" %N", t.name))
		}
		w.emitTypeVariables(t.typeVariables)

		if t.primaryConstructor != nil {
			// constructor parameters resolve names in the scope of the type
			w.pushType(t)
			t.emitPrimaryConstructor(w, constructorProperties)
			w.popType()
		}

		var superTypes []CodeBlock
		if !isNilTypeName(t.superclass) {
			if (t.primaryConstructor != nil || !t.hasSecondaryConstructors()) && !t.modifiers.hasAny(Expect, External) && !implicitModifiers.hasAny(Expect, External) {
				superTypes = append(superTypes, mustCode("%T(%L)", t.superclass, superclassArguments))
			} else {
				superTypes = append(superTypes, mustCode("%T", t.superclass))
			}
		}
		superTypes = append(superTypes, t.superinterfaceBlocks()...)
		if len(superTypes) > 0 {
			w.emitCode(joinSupertypes(superTypes))
		}
		w.emitWhereBlock(t.typeVariables)
		if hasNoBody {
			w.emit("\n")
			return
		}
		w.emit(" {\n")
	}

	w.pushType(t)
	w.indentBy(1)
	t.emitMembers(w, implicitModifiers, constructorProperties)
	w.unindentBy(1)
	w.popType()

	w.emit("}")
	if enumName == "" && !t.IsAnonymous() {
		w.emit("\n")
	}
}

func (t *TypeSpec) emitPrimaryConstructor(w *CodeWriter, constructorProperties map[string]*PropertySpec) {
	constructor := t.primaryConstructor
	useKeyword := len(constructor.annotations) > 0 || constructor.modifiers != 0
	if len(constructor.annotations) > 0 {
		w.emit(" ")
		w.emitAnnotations(constructor.annotations, true)
	}
	if constructor.modifiers != 0 {
		if len(constructor.annotations) == 0 {
			w.emit(" ")
		}
		w.emitModifiers(constructor.modifiers, 0)
	}
	if useKeyword {
		w.emit("constructor")
	}
	w.emit("(")
	if len(constructor.parameters) > 0 {
		w.emit("\n")
		w.indentBy(1)
		for _, parameter := range constructor.parameters {
			if property, ok := constructorProperties[parameter.name]; ok {
				property.emit(w, t.kind.withImplicitFinal(newModifierSet(Public), property.modifiers), false, true)
				parameter.emitDefaultValue(w)
			} else {
				parameter.emit(w, true)
			}
			w.emit(",\n")
		}
		w.unindentBy(1)
	}
	w.emit(")")
}

func (t *TypeSpec) emitMembers(w *CodeWriter, implicitModifiers modifierSet, constructorProperties map[string]*PropertySpec) {
	firstMember := true
	separate := func() {
		if !firstMember {
			w.emit("\n")
		}
		firstMember = false
	}

	for _, constant := range t.enumConstants {
		separate()
		constant.typeSpec.emit(w, constant.name, 0)
		w.emit(",")
	}
	if t.IsEnum() {
		if !firstMember {
			w.emit("\n")
		}
		if len(t.propertySpecs) > 0 || len(t.funSpecs) > 0 || len(t.typeSpecs) > 0 || !t.initializerBlock.IsEmpty() {
			w.emit(";\n")
		}
	}

	initializerEmitted := false
	emitInitializer := func() {
		if initializerEmitted {
			return
		}
		initializerEmitted = true
		if t.hasInitializer() {
			separate()
			w.emitCode(t.initializerBlock)
		}
	}

	enclosing := t.modifiers.union(implicitModifiers)
	propertyModifiers := t.kind.implicitMemberModifiers(enclosing, false)
	if t.IsAnnotation() {
		propertyModifiers = t.kind.implicitMemberModifiers(t.modifiers, true)
	}
	for i, property := range t.propertySpecs {
		if i == t.initializerIndex {
			emitInitializer()
		}
		if _, ok := constructorProperties[property.name]; ok {
			continue
		}
		separate()
		property.emit(w, t.kind.withImplicitFinal(propertyModifiers, property.modifiers), true, false)
	}
	emitInitializer()

	if t.primaryConstructor != nil && !t.primaryConstructor.body.IsEmpty() {
		separate()
		w.emit("init {\n")
		w.indentBy(1)
		w.emitCode(t.primaryConstructor.body.ensureEndsWithNewline())
		w.unindentBy(1)
		w.emit("}\n")
	}

	functionModifiers := t.kind.implicitMemberModifiers(enclosing, false)
	for _, funSpec := range t.funSpecs {
		if !funSpec.IsConstructor() {
			continue
		}
		separate()
		funSpec.emit(w, t.name, functionModifiers, false)
	}
	for _, funSpec := range t.funSpecs {
		if funSpec.IsConstructor() {
			continue
		}
		separate()
		funSpec.emit(w, t.name, t.kind.withImplicitFinal(functionModifiers, funSpec.modifiers), true)
	}

	nestedModifiers := implicitTypeModifiers(enclosing)
	for _, typeSpec := range t.typeSpecs {
		separate()
		typeSpec.emit(w, "", nestedModifiers)
	}
	for _, typeAlias := range t.typeAliasSpecs {
		separate()
		typeAlias.emit(w)
	}
}

// joinSupertypes joins supertypes with wrapping separators, JoinToCode would escape the %W
func joinSupertypes(superTypes []CodeBlock) CodeBlock {
	builder := NewCodeBlockBuilder().Add(" : ")
	for i, superType := range superTypes {
		if i > 0 {
			builder.Add(",%W")
		}
		builder.Add("%L", superType)
	}
	return builder.mustBuild()
}

func (t *TypeSpec) superinterfaceBlocks() []CodeBlock {
	var result []CodeBlock
	for _, candidate := range t.superinterfaces {
		if candidate.delegate == nil {
			result = append(result, mustCode("%T", candidate.typeName))
			continue
		}
		result = append(result, mustCode("%T by %L", candidate.typeName, *candidate.delegate))
	}
	return result
}

func (t *TypeSpec) hasSecondaryConstructors() bool {
	for _, funSpec := range t.funSpecs {
		if funSpec.IsConstructor() {
			return true
		}
	}
	return false
}

func (t *TypeSpec) hasInitializer() bool {
	return t.initializerIndex != -1 && !t.initializerBlock.IsEmpty()
}

func (t *TypeSpec) hasNoBody(constructorProperties map[string]*PropertySpec) bool {
	for _, property := range t.propertySpecs {
		if _, ok := constructorProperties[property.name]; !ok {
			return false
		}
	}
	return len(t.enumConstants) == 0 &&
		t.initializerBlock.IsEmpty() &&
		(t.primaryConstructor == nil || t.primaryConstructor.body.IsEmpty()) &&
		len(t.funSpecs) == 0 &&
		len(t.typeSpecs) == 0 &&
		len(t.typeAliasSpecs) == 0
}

// constructorProperties returns properties declared inline as primary constructor parameters
func (t *TypeSpec) constructorProperties() map[string]*PropertySpec {
	result := map[string]*PropertySpec{}
	if t.primaryConstructor == nil {
		return result
	}
	limit := len(t.propertySpecs)
	if t.hasInitializer() {
		limit = t.initializerIndex
	}
	for _, property := range t.propertySpecs[:limit] {
		if property.getter != nil || property.setter != nil || property.initializer == nil || property.delegated {
			continue
		}
		parameter := t.primaryConstructor.Parameter(property.name)
		if parameter == nil || !TypeNameEqual(parameter.typeName, property.typeName) {
			continue
		}
		if !isParameterReference(*property.initializer, parameter.name) {
			continue
		}
		result[property.name] = property
	}
	return result
}

func isParameterReference(initializer CodeBlock, parameterName string) bool {
	rendered, err := initializer.Render()
	if err != nil {
		return false
	}
	escaped, err := escapeIfNecessary(parameterName)
	if err != nil {
		return false
	}
	return rendered == escaped || rendered == parameterName
}

func (t *TypeSpec) kdocWithConstructorDocs() CodeBlock {
	classKdoc := t.kdoc.ensureEndsWithNewline()
	constructorKdoc := NewCodeBlockBuilder()
	if t.primaryConstructor != nil {
		if !t.primaryConstructor.kdoc.IsEmpty() {
			constructorKdoc.Add("@constructor %L", t.primaryConstructor.kdoc.ensureEndsWithNewline())
		}
		for _, parameter := range t.primaryConstructor.parameters {
			if !parameter.kdoc.IsEmpty() {
				constructorKdoc.Add("@param %L %L", parameter.name, parameter.kdoc.ensureEndsWithNewline())
			}
		}
	}
	var blocks []CodeBlock
	if !classKdoc.IsEmpty() {
		blocks = append(blocks, classKdoc)
	}
	if block, err := constructorKdoc.Build(); err == nil && !block.IsEmpty() {
		blocks = append(blocks, block)
	}
	return JoinToCode(blocks, "\n", "", "")
}

// ToBuilder returns a builder initialised with the type
func (t *TypeSpec) ToBuilder() *TypeSpecBuilder {
	builder := newTypeSpecBuilder(t.kind, t.name)
	builder.kdoc = t.kdoc.ToBuilder()
	builder.annotations = append(builder.annotations, t.annotations...)
	builder.modifiers = t.modifiers
	builder.typeVariables = append(builder.typeVariables, t.typeVariables...)
	builder.primaryConstructor = t.primaryConstructor
	builder.superclass = t.superclass
	builder.superclassConstructorParameters = append(builder.superclassConstructorParameters, t.superclassConstructorParameters...)
	builder.superinterfaces = append(builder.superinterfaces, t.superinterfaces...)
	builder.enumConstants = append(builder.enumConstants, t.enumConstants...)
	builder.propertySpecs = append(builder.propertySpecs, t.propertySpecs...)
	builder.initializerBlock = t.initializerBlock.ToBuilder()
	builder.initializerIndex = t.initializerIndex
	builder.funSpecs = append(builder.funSpecs, t.funSpecs...)
	builder.typeSpecs = append(builder.typeSpecs, t.typeSpecs...)
	builder.typeAliasSpecs = append(builder.typeAliasSpecs, t.typeAliasSpecs...)
	return builder
}

// TypeSpecBuilder builds a TypeSpec
type TypeSpecBuilder struct {
	kind                            TypeKind
	name                            string
	kdoc                            *CodeBlockBuilder
	annotations                     []*AnnotationSpec
	modifiers                       modifierSet
	typeVariables                   []*TypeVariableName
	primaryConstructor              *FunSpec
	superclass                      TypeName
	superclassConstructorParameters []CodeBlock
	superinterfaces                 []superinterface
	enumConstants                   []enumConstant
	propertySpecs                   []*PropertySpec
	initializerBlock                *CodeBlockBuilder
	initializerIndex                int
	funSpecs                        []*FunSpec
	typeSpecs                       []*TypeSpec
	typeAliasSpecs                  []*TypeAliasSpec
	err                             error
}

func newTypeSpecBuilder(kind TypeKind, name string, modifiers ...Modifier) *TypeSpecBuilder {
	return &TypeSpecBuilder{
		kind:             kind,
		name:             name,
		kdoc:             NewCodeBlockBuilder(),
		modifiers:        newModifierSet(modifiers...),
		initializerBlock: NewCodeBlockBuilder(),
		initializerIndex: -1,
	}
}

// NewClassBuilder creates a builder for class name
func NewClassBuilder(name string) *TypeSpecBuilder {
	return newTypeSpecBuilder(KindClass, name)
}

// NewObjectBuilder creates a builder for object name
func NewObjectBuilder(name string) *TypeSpecBuilder {
	return newTypeSpecBuilder(KindObject, name)
}

// NewCompanionObjectBuilder creates a builder for a companion object, name may be empty
func NewCompanionObjectBuilder(name string) *TypeSpecBuilder {
	return newTypeSpecBuilder(KindObject, name, Companion)
}

// NewInterfaceBuilder creates a builder for interface name
func NewInterfaceBuilder(name string) *TypeSpecBuilder {
	return newTypeSpecBuilder(KindInterface, name)
}

// NewFunInterfaceBuilder creates a builder for fun interface name
func NewFunInterfaceBuilder(name string) *TypeSpecBuilder {
	return newTypeSpecBuilder(KindInterface, name, Fun)
}

// NewEnumBuilder creates a builder for enum class name
func NewEnumBuilder(name string) *TypeSpecBuilder {
	return newTypeSpecBuilder(KindClass, name, Enum)
}

// NewAnnotationClassBuilder creates a builder for annotation class name
func NewAnnotationClassBuilder(name string) *TypeSpecBuilder {
	return newTypeSpecBuilder(KindClass, name, Annotation)
}

// NewAnonymousClassBuilder creates a builder for an object expression or an enum constant body
func NewAnonymousClassBuilder() *TypeSpecBuilder {
	return newTypeSpecBuilder(KindClass, "")
}

func (b *TypeSpecBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *TypeSpecBuilder) isAnonymous() bool {
	return b.name == "" && b.kind == KindClass
}

func (b *TypeSpecBuilder) isEnum() bool {
	return b.kind == KindClass && b.modifiers.has(Enum)
}

func (b *TypeSpecBuilder) isAnnotation() bool {
	return b.kind == KindClass && b.modifiers.has(Annotation)
}

func (b *TypeSpecBuilder) isSimpleClass() bool {
	return b.kind == KindClass && !b.isEnum() && !b.isAnnotation()
}

func (b *TypeSpecBuilder) isInlineClass() bool {
	return b.kind == KindClass && b.modifiers.has(Inline)
}

// AddKdoc appends documentation
func (b *TypeSpecBuilder) AddKdoc(format string, args ...interface{}) *TypeSpecBuilder {
	b.kdoc.Add(format, args...)
	return b
}

// AddAnnotation adds an annotation
func (b *TypeSpecBuilder) AddAnnotation(annotation *AnnotationSpec) *TypeSpecBuilder {
	b.annotations = append(b.annotations, annotation)
	return b
}

// AddModifiers adds modifiers
func (b *TypeSpecBuilder) AddModifiers(modifiers ...Modifier) *TypeSpecBuilder {
	if b.isAnonymous() {
		b.setErr(specError("forbidden on anonymous types."))
		return b
	}
	for _, modifier := range modifiers {
		b.modifiers = b.modifiers.with(modifier)
	}
	return b
}

// AddTypeVariable adds a type parameter
func (b *TypeSpecBuilder) AddTypeVariable(typeVariable *TypeVariableName) *TypeSpecBuilder {
	b.typeVariables = append(b.typeVariables, typeVariable)
	return b
}

// PrimaryConstructor sets the primary constructor
func (b *TypeSpecBuilder) PrimaryConstructor(constructor *FunSpec) *TypeSpecBuilder {
	if b.kind != KindClass {
		b.setErr(specError("%v can't have a primary constructor", b.kind))
		return b
	}
	if constructor != nil {
		if !constructor.IsConstructor() {
			b.setErr(specError("expected a constructor but was %s", constructor.name))
			return b
		}
		if b.isInlineClass() && len(constructor.parameters) != 1 {
			b.setErr(specError("inline classes must have 1 parameter in constructor"))
			return b
		}
		if constructor.delegateConstructor != "" {
			b.setErr(specError("primary constructor can't delegate to other constructors"))
			return b
		}
	}
	b.primaryConstructor = constructor
	return b
}

func (b *TypeSpecBuilder) checkCanHaveSuperclass() error {
	if !b.isSimpleClass() && b.kind != KindObject {
		return specError("only classes can have super classes, not %v", b.kind)
	}
	if b.isInlineClass() {
		return specError("inline classes cannot have super classes")
	}
	return nil
}

// Superclass sets the superclass
func (b *TypeSpecBuilder) Superclass(superclass TypeName) *TypeSpecBuilder {
	if err := b.checkCanHaveSuperclass(); err != nil {
		b.setErr(err)
		return b
	}
	if !isNilTypeName(b.superclass) {
		b.setErr(specError("superclass already set to %v", b.superclass))
		return b
	}
	if TypeNameEqual(superclass, Any) {
		return b
	}
	b.superclass = superclass
	return b
}

// AddSuperclassConstructorParameter adds an argument of the superclass constructor call
func (b *TypeSpecBuilder) AddSuperclassConstructorParameter(format string, args ...interface{}) *TypeSpecBuilder {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		b.setErr(err)
		return b
	}
	if err := b.checkCanHaveSuperclass(); err != nil {
		b.setErr(err)
		return b
	}
	b.superclassConstructorParameters = append(b.superclassConstructorParameters, block)
	return b
}

// AddSuperinterface adds an implemented interface
func (b *TypeSpecBuilder) AddSuperinterface(typeName TypeName) *TypeSpecBuilder {
	for _, candidate := range b.superinterfaces {
		if TypeNameEqual(candidate.typeName, typeName) {
			return b
		}
	}
	b.superinterfaces = append(b.superinterfaces, superinterface{typeName: typeName})
	return b
}

// AddSuperinterfaceDelegate adds an interface implemented by delegation to delegate
func (b *TypeSpecBuilder) AddSuperinterfaceDelegate(typeName TypeName, delegate CodeBlock) *TypeSpecBuilder {
	if delegate.IsEmpty() {
		return b.AddSuperinterface(typeName)
	}
	if !b.isSimpleClass() && b.kind != KindObject {
		b.setErr(specError("delegation only allowed for classes and objects (found %v '%s')", b.kind, b.name))
		return b
	}
	if typeName.IsNullable() {
		b.setErr(specError("expected non-nullable type but was '%v'", NonNull(typeName)))
		return b
	}
	for i, candidate := range b.superinterfaces {
		if !TypeNameEqual(candidate.typeName, typeName) {
			continue
		}
		if candidate.delegate != nil {
			b.setErr(specError("'%s' can not delegate to %v by %v with existing declaration by %v", b.name, typeName, delegate, *candidate.delegate))
			return b
		}
		b.superinterfaces[i].delegate = &delegate
		return b
	}
	b.superinterfaces = append(b.superinterfaces, superinterface{typeName: typeName, delegate: &delegate})
	return b
}

// AddEnumConstant adds an enum constant; typeSpec may be nil or an anonymous class carrying arguments and a body
func (b *TypeSpecBuilder) AddEnumConstant(name string, typeSpec *TypeSpec) *TypeSpecBuilder {
	if name == "name" || name == "ordinal" {
		b.setErr(specError("constant with name %q conflicts with a supertype member with the same name", name))
		return b
	}
	if typeSpec == nil {
		typeSpec = &TypeSpec{kind: KindClass, initializerIndex: -1}
	}
	for i, constant := range b.enumConstants {
		if constant.name == name {
			b.enumConstants[i].typeSpec = typeSpec
			return b
		}
	}
	b.enumConstants = append(b.enumConstants, enumConstant{name: name, typeSpec: typeSpec})
	return b
}

// AddProperty adds a property
func (b *TypeSpecBuilder) AddProperty(property *PropertySpec) *TypeSpecBuilder {
	if b.modifiers.has(Expect) {
		if property.initializer != nil {
			b.setErr(specError("properties in expect classes can't have initializers"))
			return b
		}
		if property.getter != nil || property.setter != nil {
			b.setErr(specError("properties in expect classes can't have getters and setters"))
			return b
		}
	}
	if b.isEnum() && (property.name == "name" || property.name == "ordinal") {
		b.setErr(specError("%s is a final supertype member and can't be redeclared or overridden", property.name))
		return b
	}
	b.propertySpecs = append(b.propertySpecs, property)
	return b
}

// AddPropertyOf adds val name: typeName
func (b *TypeSpecBuilder) AddPropertyOf(name string, typeName TypeName, modifiers ...Modifier) *TypeSpecBuilder {
	property, err := NewPropertyBuilder(name, typeName, modifiers...).Build()
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.AddProperty(property)
}

// AddInitializerBlock adds an init block after the properties added so far
func (b *TypeSpecBuilder) AddInitializerBlock(block CodeBlock) *TypeSpecBuilder {
	if !b.isSimpleClass() && !b.isEnum() && b.kind != KindObject {
		b.setErr(specError("%v can't have initializer blocks", b.kind))
		return b
	}
	if b.modifiers.has(Expect) {
		b.setErr(specError("expect %v can't have initializer blocks", b.kind))
		return b
	}
	b.initializerIndex = len(b.propertySpecs)
	b.initializerBlock.Add("init {\n").Indent().AddCode(block.ensureEndsWithNewline()).Unindent().Add("}\n")
	return b
}

// AddFunction adds a function or secondary constructor
func (b *TypeSpecBuilder) AddFunction(funSpec *FunSpec) *TypeSpecBuilder {
	b.funSpecs = append(b.funSpecs, funSpec)
	return b
}

// AddType adds a nested type
func (b *TypeSpecBuilder) AddType(typeSpec *TypeSpec) *TypeSpecBuilder {
	b.typeSpecs = append(b.typeSpecs, typeSpec)
	return b
}

// AddTypeAlias adds a nested type alias
func (b *TypeSpecBuilder) AddTypeAlias(typeAlias *TypeAliasSpec) *TypeSpecBuilder {
	b.typeAliasSpecs = append(b.typeAliasSpecs, typeAlias)
	return b
}

// Build returns the type or the first structural error
func (b *TypeSpecBuilder) Build() (*TypeSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	kdoc, err := b.kdoc.Build()
	if err != nil {
		return nil, err
	}
	initializerBlock, err := b.initializerBlock.Build()
	if err != nil {
		return nil, err
	}
	return &TypeSpec{
		kind:                            b.kind,
		name:                            b.name,
		kdoc:                            kdoc,
		annotations:                     append([]*AnnotationSpec{}, b.annotations...),
		modifiers:                       b.modifiers,
		typeVariables:                   append([]*TypeVariableName{}, b.typeVariables...),
		primaryConstructor:              b.primaryConstructor,
		superclass:                      b.superclass,
		superclassConstructorParameters: append([]CodeBlock{}, b.superclassConstructorParameters...),
		superinterfaces:                 append([]superinterface{}, b.superinterfaces...),
		enumConstants:                   append([]enumConstant{}, b.enumConstants...),
		propertySpecs:                   append([]*PropertySpec{}, b.propertySpecs...),
		initializerBlock:                initializerBlock,
		initializerIndex:                b.initializerIndex,
		funSpecs:                        append([]*FunSpec{}, b.funSpecs...),
		typeSpecs:                       append([]*TypeSpec{}, b.typeSpecs...),
		typeAliasSpecs:                  append([]*TypeAliasSpec{}, b.typeAliasSpecs...),
	}, nil
}

func (b *TypeSpecBuilder) validate() error {
	if !b.isAnonymous() && !(b.kind == KindObject && b.modifiers.has(Companion)) {
		if b.name == "" {
			return specError("%v name must not be empty", b.kind)
		}
	}
	if b.name != "" {
		if _, err := escapeIfNecessary(b.name); err != nil {
			return err
		}
	}
	for _, modifier := range b.modifiers.list() {
		if err := modifier.checkTarget(b.kind.target()); err != nil {
			return err
		}
	}
	if len(b.enumConstants) > 0 && !b.isEnum() {
		return specError("%s is not an enum and cannot have enum constants", b.name)
	}
	isExternal := b.modifiers.has(External)
	if len(b.superclassConstructorParameters) > 0 && isExternal {
		return specError("delegated constructor call in external class is not allowed")
	}
	if b.isAnonymous() && len(b.typeVariables) > 0 {
		return specError("typevariables are forbidden on anonymous types")
	}

	isAbstract := b.modifiers.hasAny(Abstract, Sealed) || b.kind == KindInterface || b.isEnum()
	for _, funSpec := range b.funSpecs {
		if isExternal && funSpec.delegateConstructor != "" {
			return specError("delegated constructor call in external class is not allowed")
		}
		if !isAbstract && funSpec.modifiers.has(Abstract) {
			return specError("non-abstract type %s cannot declare abstract function %s", b.name, funSpec.name)
		}
		switch {
		case b.kind == KindInterface:
			if funSpec.modifiers.hasAny(Internal, Protected) {
				return specError("interface %s cannot declare internal or protected function %s", b.name, funSpec.name)
			}
			if funSpec.modifiers.has(Abstract) && funSpec.modifiers.has(Private) {
				return specError("function %s of interface %s cannot be both abstract and private", funSpec.name, b.name)
			}
		case b.isAnnotation():
			return specError("annotation class %s cannot declare member function %s", b.name, funSpec.name)
		case b.modifiers.has(Expect):
			if !funSpec.body.IsEmpty() {
				return specError("functions in expect classes can't have bodies")
			}
		}
	}
	for _, property := range b.propertySpecs {
		if !isAbstract && property.modifiers.has(Abstract) {
			return specError("non-abstract type %s cannot declare abstract property %s", b.name, property.name)
		}
	}
	if b.isAnnotation() && b.primaryConstructor != nil {
		if b.primaryConstructor.modifiers.hasAny(Internal, Protected, Private, Abstract) {
			return specError("annotation class %s has an invalid primary constructor modifier", b.name)
		}
	}
	if b.primaryConstructor == nil && len(b.superclassConstructorParameters) > 0 {
		for _, funSpec := range b.funSpecs {
			if funSpec.IsConstructor() {
				return specError("types without a primary constructor cannot specify secondary constructors and superclass constructor parameters")
			}
		}
	}
	if b.isInlineClass() {
		if err := b.validateInlineClass(); err != nil {
			return err
		}
	}
	if b.kind == KindInterface && b.modifiers.has(Fun) && len(b.superinterfaces) == 0 {
		var abstractFunctions []string
		for _, funSpec := range b.funSpecs {
			if funSpec.modifiers.has(Abstract) {
				abstractFunctions = append(abstractFunctions, funSpec.name)
			}
		}
		if len(abstractFunctions) != 1 {
			return specError("functional interfaces must have exactly one abstract function. Contained %d: %v", len(abstractFunctions), abstractFunctions)
		}
	}
	companions := 0
	for _, typeSpec := range b.typeSpecs {
		if typeSpec.IsCompanion() {
			companions++
		}
	}
	switch {
	case companions > 1:
		return specError("multiple companion objects are present but only one is allowed")
	case companions == 1 && !(b.kind == KindClass || b.kind == KindInterface) || companions == 1 && b.isAnonymous():
		return specError("%v types can't have a companion object", b.kind)
	}
	return nil
}

func (b *TypeSpecBuilder) validateInlineClass() error {
	if len(b.propertySpecs) == 0 {
		return specError("inline classes must have at least 1 property")
	}
	if b.primaryConstructor == nil {
		return nil
	}
	if len(b.primaryConstructor.parameters) != 1 {
		return specError("inline classes must have 1 parameter in constructor")
	}
	parameterName := b.primaryConstructor.parameters[0].name
	for _, property := range b.propertySpecs {
		if property.name == parameterName {
			if property.mutable {
				return specError("inline classes must have a single read-only (val) property parameter")
			}
			return nil
		}
	}
	return specError("inline classes must have a single read-only (val) property parameter")
}
