package stub

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/kotlinpoet/inspector/graph"
	"github.com/viant/kotlinpoet/poet"
)

// ErrEmpty reports a Java file without types to stub
var ErrEmpty = errors.New("no types to stub")

const stubMessage = "Stub!"

var (
	notImplementedError = poet.NewClassName("kotlin", "NotImplementedError")
	throwsAnnotation    = poet.NewClassName("kotlin", "Throws")
	deprecated          = poet.NewClassName("kotlin", "Deprecated")
	jvmStatic           = poet.NewClassName("kotlin.jvm", "JvmStatic")
	jvmField            = poet.NewClassName("kotlin.jvm", "JvmField")
	kClass              = poet.NewClassName("kotlin.reflect", "KClass")
)

// Builder maps inspected Java files to Kotlin stub files
type Builder struct {
	config *Config
}

// NewBuilder creates a stub builder
func NewBuilder(config *Config) *Builder {
	if config == nil {
		config = &Config{}
		config.Init()
	}
	return &Builder{config: config}
}

// Emit renders the stub of file
func (b *Builder) Emit(file *graph.File) ([]byte, error) {
	spec, err := b.Build(file)
	if err != nil {
		return nil, err
	}
	content, err := spec.Render()
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", spec.RelativePath(), err)
	}
	return []byte(content), nil
}

// Build creates one Kotlin file holding stubs of every top level type of file
func (b *Builder) Build(file *graph.File) (*poet.FileSpec, error) {
	if len(file.Types) == 0 {
		return nil, fmt.Errorf("%s: %w", file.Path, ErrEmpty)
	}
	r := newResolver(file, b.config)
	builder := poet.NewFileBuilder(r.kotlinPackage, fileName(file))
	if b.config.Indent != "" {
		builder.Indent(b.config.Indent)
	}
	if b.config.ColumnLimit > 0 {
		builder.ColumnLimit(b.config.ColumnLimit)
	}
	if comment := b.config.fileComment(); comment != "" {
		builder.AddComment("%L", comment)
	}
	for _, typ := range file.Types {
		spec, err := b.buildType(r, typ, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build stub for %s: %w", typ.Name, err)
		}
		builder.AddType(spec)
	}
	return builder.Build()
}

func (b *Builder) buildType(r *resolver, typ *graph.Type, outer *graph.Type) (*poet.TypeSpec, error) {
	r.push(typ)
	defer r.pop()

	builder := b.typeBuilder(typ)
	builder.AddModifiers(typeModifiers(typ, outer)...)
	if doc := kdoc(typ.Comment); doc != "" {
		builder.AddKdoc("%L\n", doc)
	}
	annotations, err := b.annotations(r, typ.Annotations, nil)
	if err != nil {
		return nil, err
	}
	for _, annotation := range annotations {
		builder.AddAnnotation(annotation)
	}
	typeVariables, err := b.typeVariables(r, typ.TypeParams)
	if err != nil {
		return nil, err
	}
	for _, typeVariable := range typeVariables {
		builder.AddTypeVariable(typeVariable)
	}
	if err = b.addSupertypes(r, builder, typ); err != nil {
		return nil, err
	}

	companion := &companion{builder: poet.NewCompanionObjectBuilder("")}
	for _, constant := range typ.EnumConstants {
		spec, err := enumConstant(constant)
		if err != nil {
			return nil, fmt.Errorf("failed to build enum constant %s: %w", constant.Name, err)
		}
		builder.AddEnumConstant(constant.Name, spec)
	}
	if typ.Kind == graph.KindAnnotation {
		if err = b.addAnnotationElements(r, builder, typ); err != nil {
			return nil, err
		}
	}
	for _, field := range typ.Fields {
		property, err := b.buildField(r, typ, field)
		if err != nil {
			return nil, fmt.Errorf("failed to build field %s: %w", field.Name, err)
		}
		if field.IsStatic(typ.Kind) {
			companion.addProperty(property)
			continue
		}
		builder.AddProperty(property)
	}
	for _, constructor := range typ.Constructors {
		if typ.Kind != graph.KindClass && typ.Kind != graph.KindEnum {
			break
		}
		funSpec, err := b.buildConstructor(r, typ, constructor)
		if err != nil {
			return nil, fmt.Errorf("failed to build constructor %s: %w", constructor.Signature(), err)
		}
		builder.AddFunction(funSpec)
	}
	if typ.Kind != graph.KindAnnotation {
		for _, method := range typ.Methods {
			funSpec, err := b.buildMethod(r, typ, method)
			if err != nil {
				return nil, fmt.Errorf("failed to build method %s: %w", method.Signature(), err)
			}
			if method.IsStatic() {
				companion.addFunction(funSpec)
				continue
			}
			builder.AddFunction(funSpec)
		}
	}
	for _, nested := range typ.Types {
		spec, err := b.buildType(r, nested, typ)
		if err != nil {
			return nil, fmt.Errorf("failed to build nested type %s: %w", nested.Name, err)
		}
		builder.AddType(spec)
	}
	if companion.used {
		spec, err := companion.builder.Build()
		if err != nil {
			return nil, err
		}
		builder.AddType(spec)
	}
	return builder.Build()
}

type companion struct {
	builder *poet.TypeSpecBuilder
	used    bool
}

func (c *companion) addProperty(property *poet.PropertySpec) {
	c.builder.AddProperty(property)
	c.used = true
}

func (c *companion) addFunction(funSpec *poet.FunSpec) {
	c.builder.AddFunction(funSpec)
	c.used = true
}

func (b *Builder) typeBuilder(typ *graph.Type) *poet.TypeSpecBuilder {
	switch typ.Kind {
	case graph.KindInterface:
		if b.isFunInterface(typ) {
			return poet.NewFunInterfaceBuilder(typ.Name)
		}
		return poet.NewInterfaceBuilder(typ.Name)
	case graph.KindEnum:
		return poet.NewEnumBuilder(typ.Name)
	case graph.KindAnnotation:
		return poet.NewAnnotationClassBuilder(typ.Name)
	}
	return poet.NewClassBuilder(typ.Name)
}

// isFunInterface returns true for a standalone interface with a single non generic abstract method
func (b *Builder) isFunInterface(typ *graph.Type) bool {
	if !b.config.Supports("1.4") || len(typ.Extends) > 0 {
		return false
	}
	abstract := typ.AbstractMethods()
	return len(abstract) == 1 && len(abstract[0].TypeParams) == 0
}

func typeModifiers(typ *graph.Type, outer *graph.Type) []poet.Modifier {
	modifiers := visibility(typ.Modifiers)
	if typ.Kind != graph.KindClass {
		return modifiers
	}
	switch {
	case typ.Modifiers.Has("abstract"):
		modifiers = append(modifiers, poet.Abstract)
	case !typ.Modifiers.Has("final"):
		modifiers = append(modifiers, poet.Open)
	}
	if outer != nil && !typ.IsStatic() && (outer.Kind == graph.KindClass || outer.Kind == graph.KindEnum) {
		modifiers = append(modifiers, poet.Inner)
	}
	return modifiers
}

// visibility maps Java access to Kotlin, package-private becomes internal
func visibility(modifiers graph.Modifiers) []poet.Modifier {
	switch modifiers.Visibility() {
	case "public":
		return nil
	case "protected":
		return []poet.Modifier{poet.Protected}
	case "private":
		return []poet.Modifier{poet.Private}
	}
	return []poet.Modifier{poet.Internal}
}

// isOpenable returns true if members of typ may be overridden
func isOpenable(typ *graph.Type) bool {
	return typ.Kind == graph.KindClass && !typ.Modifiers.Has("final")
}

func (b *Builder) addSupertypes(r *resolver, builder *poet.TypeSpecBuilder, typ *graph.Type) error {
	var superinterfaces []*graph.TypeRef
	switch typ.Kind {
	case graph.KindClass:
		for _, ref := range typ.Extends {
			if isObject(ref) {
				continue
			}
			superclass, err := r.typeName(ref, positionSupertype)
			if err != nil {
				return err
			}
			builder.Superclass(superclass)
		}
		superinterfaces = typ.Implements
	case graph.KindInterface:
		superinterfaces = typ.Extends
	case graph.KindEnum:
		superinterfaces = typ.Implements
	}
	for _, ref := range superinterfaces {
		superinterface, err := r.typeName(ref, positionSupertype)
		if err != nil {
			return err
		}
		builder.AddSuperinterface(superinterface)
	}
	return nil
}

func isObject(ref *graph.TypeRef) bool {
	return ref.QualifiedName() == "java.lang.Object" || (ref.Package == "" && ref.Name == "Object")
}

func (b *Builder) typeVariables(r *resolver, params []*graph.TypeParam) ([]*poet.TypeVariableName, error) {
	var result []*poet.TypeVariableName
	for _, param := range params {
		var bounds []poet.TypeName
		for _, ref := range param.Bounds {
			if isObject(ref) {
				continue
			}
			bound, err := r.typeName(ref, positionSupertype)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, bound)
		}
		result = append(result, poet.NewTypeVariable(param.Name, bounds...))
	}
	return result, nil
}

func enumConstant(constant *graph.EnumConstant) (*poet.TypeSpec, error) {
	if constant.Arguments == "" && !constant.HasBody && constant.Comment == "" {
		return nil, nil
	}
	builder := poet.NewAnonymousClassBuilder()
	if doc := kdoc(constant.Comment); doc != "" {
		builder.AddKdoc("%L\n", doc)
	}
	if constant.Arguments != "" {
		builder.AddSuperclassConstructorParameter("%L", constant.Arguments)
	}
	return builder.Build()
}

// addAnnotationElements declares annotation elements as primary constructor properties
func (b *Builder) addAnnotationElements(r *resolver, builder *poet.TypeSpecBuilder, typ *graph.Type) error {
	if len(typ.Methods) == 0 {
		return nil
	}
	constructor := poet.NewConstructorBuilder()
	for _, element := range typ.Methods {
		typeName, err := b.annotationTypeName(r, element.ReturnType)
		if err != nil {
			return fmt.Errorf("failed to build element %s: %w", element.Name, err)
		}
		parameter := poet.NewParameterBuilder(element.Name, typeName)
		if element.Default != "" {
			parameter.DefaultValue("%L", annotationDefault(element.ReturnType, element.Default))
		}
		parameterSpec, err := parameter.Build()
		if err != nil {
			return err
		}
		constructor.AddParameter(parameterSpec)
		property, err := poet.NewPropertyBuilder(element.Name, typeName).Initializer("%N", element.Name).Build()
		if err != nil {
			return err
		}
		builder.AddProperty(property)
	}
	primary, err := constructor.Build()
	if err != nil {
		return err
	}
	builder.PrimaryConstructor(primary)
	return nil
}

// annotationTypeName maps annotation element types, Class becomes KClass
func (b *Builder) annotationTypeName(r *resolver, ref *graph.TypeRef) (poet.TypeName, error) {
	if ref.Dimensions > 0 && !(ref.Primitive && ref.Dimensions == 1) {
		element, err := b.annotationTypeName(r, ref.Element())
		if err != nil {
			return nil, err
		}
		return poet.Array.ParameterizedBy(element), nil
	}
	if ref.Name == "Class" || ref.QualifiedName() == "java.lang.Class" {
		if len(ref.Args) == 0 {
			return kClass.ParameterizedBy(poet.Star), nil
		}
		arg, err := r.typeName(ref.Args[0], positionSupertype)
		if err != nil {
			return nil, err
		}
		return kClass.ParameterizedBy(arg), nil
	}
	return r.typeName(ref, positionSupertype)
}

func (b *Builder) buildField(r *resolver, owner *graph.Type, field *graph.Field) (*poet.PropertySpec, error) {
	static := field.IsStatic(owner.Kind)
	final := field.IsFinal(owner.Kind)
	typeName, err := r.typeName(field.Type, positionMember)
	if err != nil {
		return nil, err
	}
	modifiers := visibility(field.Modifiers)
	literal, isConst := "", false
	if static && final {
		literal, isConst = constLiteral(field.Type, field.Value)
	}
	if isConst {
		typeName = poet.NonNull(typeName)
		modifiers = append(modifiers, poet.Const)
	}
	builder := poet.NewPropertyBuilder(field.Name, typeName, modifiers...).Mutable(!final)
	if doc := kdoc(field.Comment); doc != "" {
		builder.AddKdoc("%L\n", doc)
	}
	if field.Annotations.Lookup("Deprecated") != nil {
		annotation, err := deprecatedInJava()
		if err != nil {
			return nil, err
		}
		builder.AddAnnotation(annotation)
	}
	if isConst {
		return builder.Initializer("%L", literal).Build()
	}

	hasField := true
	if zero, ok := zeroValue(field.Type); ok {
		builder.Initializer("%L", zero)
	} else if typeName.IsNullable() {
		builder.Initializer("null")
	} else {
		hasField = false
		if err = addStubAccessors(builder, typeName, !final); err != nil {
			return nil, err
		}
	}
	if static && b.config.isJvmStatic() {
		switch {
		case !hasField:
			builder.AddAnnotation(poet.AnnotationOf(jvmStatic))
		case field.Modifiers.Visibility() != "private" && owner.Kind != graph.KindInterface && owner.Kind != graph.KindAnnotation:
			builder.AddAnnotation(poet.AnnotationOf(jvmField))
		}
	}
	return builder.Build()
}

// addStubAccessors declares a throwing getter, and setter when mutable, for a property without a backing field
func addStubAccessors(builder *poet.PropertySpecBuilder, typeName poet.TypeName, mutable bool) error {
	getter, err := poet.NewGetterBuilder().AddStatement("throw %T(%S)", notImplementedError, stubMessage).Build()
	if err != nil {
		return err
	}
	builder.Getter(getter)
	if !mutable {
		return nil
	}
	setter, err := poet.NewSetterBuilder().
		AddParameterOf("value", typeName).
		AddStatement("throw %T(%S)", notImplementedError, stubMessage).
		Build()
	if err != nil {
		return err
	}
	builder.Setter(setter)
	return nil
}

func (b *Builder) buildConstructor(r *resolver, owner *graph.Type, constructor *graph.Method) (*poet.FunSpec, error) {
	builder := poet.NewConstructorBuilder()
	if owner.Kind != graph.KindEnum {
		builder.AddModifiers(visibility(constructor.Modifiers)...)
	}
	if err := b.addSignature(r, builder, constructor); err != nil {
		return nil, err
	}
	builder.AddStatement("throw %T(%S)", notImplementedError, stubMessage)
	return builder.Build()
}

func (b *Builder) buildMethod(r *resolver, owner *graph.Type, method *graph.Method) (*poet.FunSpec, error) {
	r.pushTypeParams(method.TypeParams)
	defer r.popTypeParams()

	builder := poet.NewFunBuilder(method.Name)
	builder.AddModifiers(b.methodModifiers(owner, method)...)
	typeVariables, err := b.typeVariables(r, method.TypeParams)
	if err != nil {
		return nil, err
	}
	for _, typeVariable := range typeVariables {
		builder.AddTypeVariable(typeVariable)
	}
	if err = b.addSignature(r, builder, method); err != nil {
		return nil, err
	}
	abstract := method.IsAbstract(owner.Kind)
	switch {
	case method.ReturnType != nil && !method.ReturnType.IsVoid():
		returnType, err := r.typeName(method.ReturnType, positionMember)
		if err != nil {
			return nil, err
		}
		builder.Returns(returnType)
	case !abstract:
		// a throwing expression body would otherwise infer Nothing
		builder.Returns(poet.Unit)
	}
	if method.IsStatic() && b.config.isJvmStatic() {
		builder.AddAnnotation(poet.AnnotationOf(jvmStatic))
	}
	if !abstract {
		builder.AddStatement("throw %T(%S)", notImplementedError, stubMessage)
	}
	return builder.Build()
}

func (b *Builder) methodModifiers(owner *graph.Type, method *graph.Method) []poet.Modifier {
	modifiers := visibility(method.Modifiers)
	if method.IsStatic() {
		return modifiers
	}
	override := method.Annotations.Lookup("Override") != nil
	switch {
	case method.IsAbstract(owner.Kind):
		modifiers = append(modifiers, poet.Abstract)
	case !isOpenable(owner) || method.Modifiers.Visibility() == "private":
	case method.Modifiers.Has("final"):
		if override {
			modifiers = append(modifiers, poet.Final)
		}
	case !override:
		modifiers = append(modifiers, poet.Open)
	}
	if override {
		modifiers = append(modifiers, poet.Override)
	}
	return modifiers
}

// addSignature adds documentation, annotations and parameters shared by methods and constructors
func (b *Builder) addSignature(r *resolver, builder *poet.FunSpecBuilder, method *graph.Method) error {
	if doc := kdoc(method.Comment); doc != "" {
		builder.AddKdoc("%L\n", doc)
	}
	annotations, err := b.annotations(r, method.Annotations, method.Throws)
	if err != nil {
		return err
	}
	for _, annotation := range annotations {
		builder.AddAnnotation(annotation)
	}
	for _, parameter := range method.Parameters {
		typeName, err := r.typeName(parameter.Type, positionMember)
		if err != nil {
			return fmt.Errorf("failed to build parameter %s: %w", parameter.Name, err)
		}
		var modifiers []poet.Modifier
		if parameter.Type.Variadic {
			modifiers = append(modifiers, poet.Vararg)
		}
		builder.AddParameterOf(parameter.Name, typeName, modifiers...)
	}
	return nil
}

// annotations maps the Java annotations with a Kotlin counterpart and declared exceptions
func (b *Builder) annotations(r *resolver, annotations graph.Annotations, throws []*graph.TypeRef) ([]*poet.AnnotationSpec, error) {
	var result []*poet.AnnotationSpec
	if annotations.Lookup("Deprecated") != nil {
		annotation, err := deprecatedInJava()
		if err != nil {
			return nil, err
		}
		result = append(result, annotation)
	}
	if len(throws) == 0 {
		return result, nil
	}
	builder := poet.NewAnnotationBuilder(throwsAnnotation)
	for _, ref := range throws {
		exception, err := r.typeName(ref, positionSupertype)
		if err != nil {
			return nil, err
		}
		builder.AddMember("%T::class", exception)
	}
	throwsSpec, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return append(result, throwsSpec), nil
}

func deprecatedInJava() (*poet.AnnotationSpec, error) {
	return poet.NewAnnotationBuilder(deprecated).AddMember("%S", "Deprecated in Java").Build()
}

func kdoc(comment string) string {
	return strings.TrimSpace(comment)
}

// RelativePath returns the stub location of file under the output root
func (b *Builder) RelativePath(file *graph.File) string {
	name := fileName(file) + ".kt"
	kotlinPackage := b.config.KotlinPackage(file.Package)
	if kotlinPackage == "" {
		return name
	}
	return path.Join(append(strings.Split(kotlinPackage, "."), name)...)
}

// fileName returns the Java file base name, or the first type name if no type matches it
func fileName(file *graph.File) string {
	name := strings.TrimSuffix(file.Name, ".java")
	if file.LookupType(name) == nil {
		name = file.Types[0].Name
	}
	return name
}
