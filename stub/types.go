package stub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/kotlinpoet/inspector/graph"
	"github.com/viant/kotlinpoet/poet"
)

// ErrUnresolved reports a Java type that cannot be mapped
var ErrUnresolved = errors.New("unresolvable type")

type position int

const (
	positionMember    position = iota // fields, parameters and return types
	positionSupertype                 // supertypes, their arguments and type parameter bounds
)

type builtin struct {
	className *poet.ClassName
	arity     int
}

var (
	iterator     = poet.NewClassName("kotlin.collections", "Iterator")
	listIterator = poet.NewClassName("kotlin.collections", "ListIterator")
	cloneable    = poet.NewClassName("kotlin", "Cloneable")

	primitives = map[string]*poet.ClassName{
		"boolean": poet.Boolean,
		"byte":    poet.Byte,
		"short":   poet.Short,
		"int":     poet.Int,
		"long":    poet.Long,
		"char":    poet.Char,
		"float":   poet.Float,
		"double":  poet.Double,
		"void":    poet.Unit,
	}

	primitiveArrays = map[string]*poet.ClassName{
		"boolean": poet.BooleanArray,
		"byte":    poet.ByteArray,
		"short":   poet.ShortArray,
		"int":     poet.IntArray,
		"long":    poet.LongArray,
		"char":    poet.CharArray,
		"float":   poet.FloatArray,
		"double":  poet.DoubleArray,
	}

	builtins = map[string]builtin{
		"java.lang.Object":                {poet.Any, 0},
		"java.lang.String":                {poet.String, 0},
		"java.lang.CharSequence":          {poet.CharSequence, 0},
		"java.lang.Number":                {poet.Number, 0},
		"java.lang.Throwable":             {poet.Throwable, 0},
		"java.lang.Comparable":            {poet.Comparable, 1},
		"java.lang.Iterable":              {poet.Iterable, 1},
		"java.lang.Enum":                  {poet.EnumClassName, 1},
		"java.lang.Cloneable":             {cloneable, 0},
		"java.lang.Boolean":               {poet.Boolean, 0},
		"java.lang.Byte":                  {poet.Byte, 0},
		"java.lang.Short":                 {poet.Short, 0},
		"java.lang.Integer":               {poet.Int, 0},
		"java.lang.Long":                  {poet.Long, 0},
		"java.lang.Character":             {poet.Char, 0},
		"java.lang.Float":                 {poet.Float, 0},
		"java.lang.Double":                {poet.Double, 0},
		"java.lang.annotation.Annotation": {poet.AnnotationClassName, 0},
		"java.util.Collection":            {poet.Collection, 1},
		"java.util.List":                  {poet.List, 1},
		"java.util.Set":                   {poet.Set, 1},
		"java.util.Map":                   {poet.Map, 2},
		"java.util.Map.Entry":             {poet.MapEntry, 2},
		"java.util.Iterator":              {iterator, 1},
		"java.util.ListIterator":          {listIterator, 1},
	}

	// javaLang lists implicitly imported java.lang names that are not builtins
	javaLang = map[string]bool{
		"AutoCloseable": true, "Runnable": true, "Thread": true, "Class": true, "Void": true,
		"Exception": true, "RuntimeException": true, "Error": true, "Process": true,
		"IllegalArgumentException": true, "IllegalStateException": true, "NullPointerException": true,
		"UnsupportedOperationException": true, "IndexOutOfBoundsException": true,
		"InterruptedException": true, "CloneNotSupportedException": true, "StringBuilder": true,
		"Math": true, "System": true, "Appendable": true, "Readable": true, "Record": true,
	}

	// enumerated packages are fully described by builtins for wildcard import resolution
	enumerated = map[string]bool{"java.lang": true, "java.util": true}
)

// resolver maps Java type references to Kotlin type names in the scope of one file
type resolver struct {
	file          *graph.File
	config        *Config
	kotlinPackage string
	enclosing     []*graph.Type
	typeParams    []map[string]bool
}

func newResolver(file *graph.File, config *Config) *resolver {
	return &resolver{file: file, config: config, kotlinPackage: config.KotlinPackage(file.Package)}
}

func (r *resolver) push(typ *graph.Type) {
	r.enclosing = append(r.enclosing, typ)
	r.pushTypeParams(typ.TypeParams)
}

func (r *resolver) pop() {
	r.enclosing = r.enclosing[:len(r.enclosing)-1]
	r.popTypeParams()
}

func (r *resolver) pushTypeParams(params []*graph.TypeParam) {
	scope := make(map[string]bool)
	for _, param := range params {
		scope[param.Name] = true
	}
	r.typeParams = append(r.typeParams, scope)
}

func (r *resolver) popTypeParams() {
	r.typeParams = r.typeParams[:len(r.typeParams)-1]
}

func (r *resolver) isTypeVariable(name string) bool {
	for i := len(r.typeParams) - 1; i >= 0; i-- {
		if r.typeParams[i][name] {
			return true
		}
	}
	return false
}

// declaredClassName returns the Kotlin class name of a type declared in the file being generated
func (r *resolver) declaredClassName(typ *graph.Type) *poet.ClassName {
	var names []string
	for _, enclosing := range r.enclosing {
		names = append(names, enclosing.Name)
	}
	if len(r.enclosing) == 0 || r.enclosing[len(r.enclosing)-1] != typ {
		names = append(names, typ.Name)
	}
	return poet.NewClassName(r.kotlinPackage, names...)
}

// typeName maps ref at the given position
func (r *resolver) typeName(ref *graph.TypeRef, at position) (poet.TypeName, error) {
	switch ref.Wildcard {
	case graph.WildcardUnbounded:
		return poet.Star, nil
	case graph.WildcardExtends:
		bound, err := r.typeName(ref.Bound, at)
		if err != nil {
			return nil, err
		}
		if poet.TypeNameEqual(poet.NonNull(bound), poet.Any) {
			return poet.Star, nil
		}
		return poet.ProducerOf(bound), nil
	case graph.WildcardSuper:
		bound, err := r.typeName(ref.Bound, at)
		if err != nil {
			return nil, err
		}
		return poet.ConsumerOf(bound), nil
	}

	if ref.Dimensions > 0 {
		return r.arrayTypeName(ref, at)
	}
	if ref.Primitive {
		className, ok := primitives[ref.Name]
		if !ok {
			return nil, fmt.Errorf("type %s is not resolvable: %w", ref.Name, ErrUnresolved)
		}
		return className, nil
	}
	if !strings.Contains(ref.Name, ".") && r.isTypeVariable(ref.Name) {
		return r.nullable(poet.NewTypeVariable(ref.Name), ref, at), nil
	}
	className, arity, err := r.className(ref)
	if err != nil {
		return nil, err
	}
	var result poet.TypeName = className
	args, err := r.typeArguments(ref, at, arity)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		result = className.ParameterizedBy(args...)
	}
	return r.nullable(result, ref, at), nil
}

func (r *resolver) typeArguments(ref *graph.TypeRef, at position, arity int) ([]poet.TypeName, error) {
	if len(ref.Args) == 0 {
		args := make([]poet.TypeName, arity)
		for i := range args {
			args[i] = poet.Star
		}
		return args, nil
	}
	args := make([]poet.TypeName, 0, len(ref.Args))
	for _, arg := range ref.Args {
		typeArg, err := r.typeName(arg, at)
		if err != nil {
			return nil, err
		}
		args = append(args, typeArg)
	}
	return args, nil
}

func (r *resolver) arrayTypeName(ref *graph.TypeRef, at position) (poet.TypeName, error) {
	if ref.Primitive && ref.Dimensions == 1 {
		className, ok := primitiveArrays[ref.Name]
		if !ok {
			return nil, fmt.Errorf("type %s[] is not resolvable: %w", ref.Name, ErrUnresolved)
		}
		return r.nullable(className, ref, at), nil
	}
	element := ref.Element()
	element.Nullable, element.NonNull = false, true
	elementType, err := r.typeName(element, at)
	if err != nil {
		return nil, err
	}
	return r.nullable(poet.Array.ParameterizedBy(elementType), ref, at), nil
}

// nullable applies platform nullability: member references are nullable unless annotated non-null
func (r *resolver) nullable(typeName poet.TypeName, ref *graph.TypeRef, at position) poet.TypeName {
	if at == positionSupertype || ref.NonNull || (ref.Primitive && ref.Dimensions == 0) {
		return typeName
	}
	return poet.Nullable(typeName)
}

// className resolves explicit imports, then declared types, then java.lang, then the same package
func (r *resolver) className(ref *graph.TypeRef) (*poet.ClassName, int, error) {
	segments := strings.Split(ref.Name, ".")
	if ref.Package != "" {
		return r.qualifiedClassName(ref.Package + "." + ref.Name)
	}
	if isPackageSegment(segments[0]) {
		return r.qualifiedClassName(ref.Name)
	}
	if declared, names := r.lookupDeclared(segments[0]); declared != nil {
		arity := len(declared.TypeParams)
		for _, segment := range segments[1:] {
			if declared = declared.LookupType(segment); declared == nil {
				arity = 0
				break
			}
			arity = len(declared.TypeParams)
		}
		return poet.NewClassName(r.kotlinPackage, append(names, segments[1:]...)...), arity, nil
	}
	if known, ok := builtins["java.lang."+ref.Name]; ok {
		return known.className, known.arity, nil
	}
	if javaLang[ref.Name] {
		return poet.NewClassName("java.lang", segments...), 0, nil
	}
	var ambiguous []string
	for _, anImport := range r.file.WildcardImports() {
		if known, ok := builtins[anImport.Package+"."+ref.Name]; ok {
			return known.className, known.arity, nil
		}
		if !enumerated[anImport.Package] {
			ambiguous = append(ambiguous, anImport.Package)
		}
	}
	if len(ambiguous) > 0 {
		return nil, 0, fmt.Errorf("type %s is not resolvable: imported on demand from %s: %w", ref.Name, strings.Join(ambiguous, ", "), ErrUnresolved)
	}
	return poet.NewClassName(r.kotlinPackage, segments...), 0, nil
}

func (r *resolver) qualifiedClassName(qualified string) (*poet.ClassName, int, error) {
	if known, ok := builtins[qualified]; ok {
		return known.className, known.arity, nil
	}
	guess, err := poet.ClassNameBestGuess(qualified)
	if err != nil {
		return nil, 0, fmt.Errorf("type %s is not resolvable: %w", qualified, ErrUnresolved)
	}
	return poet.NewClassName(r.config.KotlinPackage(guess.PackageName()), guess.SimpleNames()...), 0, nil
}

// lookupDeclared searches nested types innermost first, then top level types of the file
func (r *resolver) lookupDeclared(name string) (*graph.Type, []string) {
	for i := len(r.enclosing) - 1; i >= 0; i-- {
		if nested := r.enclosing[i].LookupType(name); nested != nil {
			var names []string
			for _, enclosing := range r.enclosing[:i+1] {
				names = append(names, enclosing.Name)
			}
			return nested, append(names, name)
		}
	}
	if typ := r.file.LookupType(name); typ != nil {
		return typ, []string{name}
	}
	return nil, nil
}

func isPackageSegment(segment string) bool {
	return segment != "" && strings.ToLower(segment[:1]) == segment[:1]
}
