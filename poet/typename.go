package poet

import "reflect"

// TypeName is a reference to a Kotlin type; implementations are immutable
type TypeName interface {
	// String returns the canonical rendering with annotations and nullability
	String() string
	// IsNullable returns true for a ? suffixed type
	IsNullable() bool
	// Annotations returns type use annotations
	Annotations() []*AnnotationSpec

	emit(w *CodeWriter)
	copyType(nullable bool, annotations []*AnnotationSpec) TypeName
}

// typeAttributes holds nullability and annotations shared by every type name
type typeAttributes struct {
	nullable    bool
	annotations []*AnnotationSpec
}

func (a typeAttributes) IsNullable() bool {
	return a.nullable
}

func (a typeAttributes) Annotations() []*AnnotationSpec {
	return a.annotations
}

func (a typeAttributes) isAnnotated() bool {
	return len(a.annotations) > 0
}

// Nullable returns t with a ? suffix
func Nullable(t TypeName) TypeName {
	return t.copyType(true, t.Annotations())
}

// NonNull returns t without a ? suffix
func NonNull(t TypeName) TypeName {
	return t.copyType(false, t.Annotations())
}

// Annotated returns t with additional type use annotations
func Annotated(t TypeName, annotations ...*AnnotationSpec) TypeName {
	merged := append(append([]*AnnotationSpec{}, t.Annotations()...), annotations...)
	return t.copyType(t.IsNullable(), merged)
}

// WithoutAnnotations returns t without type use annotations
func WithoutAnnotations(t TypeName) TypeName {
	return t.copyType(t.IsNullable(), nil)
}

// TypeNameEqual compares canonical renderings
func TypeNameEqual(left, right TypeName) bool {
	if isNilTypeName(left) || isNilTypeName(right) {
		return isNilTypeName(left) && isNilTypeName(right)
	}
	return left.String() == right.String()
}

func isNilTypeName(t TypeName) bool {
	if t == nil {
		return true
	}
	value := reflect.ValueOf(t)
	return value.Kind() == reflect.Ptr && value.IsNil()
}

func typeString(t TypeName) string {
	return mustRender(renderStandalone(func(w *CodeWriter) {
		w.emitType(t)
	}))
}

func copyAnnotations(annotations []*AnnotationSpec) []*AnnotationSpec {
	if len(annotations) == 0 {
		return nil
	}
	return append([]*AnnotationSpec{}, annotations...)
}

type dynamicTypeName struct{}

// Dynamic is the Kotlin/JS dynamic type; it cannot be nullable or annotated
var Dynamic TypeName = dynamicTypeName{}

func (dynamicTypeName) String() string                 { return "dynamic" }
func (dynamicTypeName) IsNullable() bool               { return false }
func (dynamicTypeName) Annotations() []*AnnotationSpec { return nil }
func (dynamicTypeName) emit(w *CodeWriter)             { w.emit("dynamic") }

func (d dynamicTypeName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	if nullable {
		panic("dynamic can't be nullable")
	}
	if len(annotations) > 0 {
		panic("dynamic can't have annotations")
	}
	return d
}

const kotlinPackage = "kotlin"

// Well-known Kotlin types
var (
	Any                 = NewClassName(kotlinPackage, "Any")
	NullableAny         = Any.Copy(true)
	Array               = NewClassName(kotlinPackage, "Array")
	Unit                = NewClassName(kotlinPackage, "Unit")
	Boolean             = NewClassName(kotlinPackage, "Boolean")
	Byte                = NewClassName(kotlinPackage, "Byte")
	Short               = NewClassName(kotlinPackage, "Short")
	Int                 = NewClassName(kotlinPackage, "Int")
	Long                = NewClassName(kotlinPackage, "Long")
	Char                = NewClassName(kotlinPackage, "Char")
	Float               = NewClassName(kotlinPackage, "Float")
	Double              = NewClassName(kotlinPackage, "Double")
	String              = NewClassName(kotlinPackage, "String")
	CharSequence        = NewClassName(kotlinPackage, "CharSequence")
	Comparable          = NewClassName(kotlinPackage, "Comparable")
	Throwable           = NewClassName(kotlinPackage, "Throwable")
	Nothing             = NewClassName(kotlinPackage, "Nothing")
	Number              = NewClassName(kotlinPackage, "Number")
	EnumClassName       = NewClassName(kotlinPackage, "Enum")
	AnnotationClassName = NewClassName(kotlinPackage, "Annotation")
	BooleanArray        = NewClassName(kotlinPackage, "BooleanArray")
	ByteArray           = NewClassName(kotlinPackage, "ByteArray")
	CharArray           = NewClassName(kotlinPackage, "CharArray")
	ShortArray          = NewClassName(kotlinPackage, "ShortArray")
	IntArray            = NewClassName(kotlinPackage, "IntArray")
	LongArray           = NewClassName(kotlinPackage, "LongArray")
	FloatArray          = NewClassName(kotlinPackage, "FloatArray")
	DoubleArray         = NewClassName(kotlinPackage, "DoubleArray")
	Iterable            = NewClassName(kotlinPackage+".collections", "Iterable")
	Collection          = NewClassName(kotlinPackage+".collections", "Collection")
	List                = NewClassName(kotlinPackage+".collections", "List")
	Set                 = NewClassName(kotlinPackage+".collections", "Set")
	Map                 = NewClassName(kotlinPackage+".collections", "Map")
	MapEntry            = Map.NestedClass("Entry")
	MutableIterable     = NewClassName(kotlinPackage+".collections", "MutableIterable")
	MutableCollection   = NewClassName(kotlinPackage+".collections", "MutableCollection")
	MutableList         = NewClassName(kotlinPackage+".collections", "MutableList")
	MutableSet          = NewClassName(kotlinPackage+".collections", "MutableSet")
	MutableMap          = NewClassName(kotlinPackage+".collections", "MutableMap")
	MutableMapEntry     = MutableMap.NestedClass("MutableEntry")
)
