package graph

import "strings"

// Kind represents a Java type declaration kind
type Kind string

const (
	KindClass      Kind = "class"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindAnnotation Kind = "annotation"
)

// Modifiers holds declaration modifier keywords in source order
type Modifiers []string

// Has returns true if modifier keyword is present
func (m Modifiers) Has(keyword string) bool {
	for _, candidate := range m {
		if candidate == keyword {
			return true
		}
	}
	return false
}

// Visibility returns public, protected, private or an empty string for package-private
func (m Modifiers) Visibility() string {
	for _, candidate := range m {
		switch candidate {
		case "public", "protected", "private":
			return candidate
		}
	}
	return ""
}

// Annotation represents an annotation applied to a declaration
type Annotation struct {
	Name      string // Name as written, e.g. Override or javax.annotation.Nullable
	Package   string // Package resolved from explicit imports
	Arguments string // Raw argument list without parentheses
}

// SimpleName returns the last segment of the annotation name
func (a *Annotation) SimpleName() string {
	return simpleName(a.Name)
}

// Annotations is a list of annotations
type Annotations []*Annotation

// Lookup returns an annotation by simple name
func (a Annotations) Lookup(name string) *Annotation {
	for _, candidate := range a {
		if candidate.SimpleName() == name {
			return candidate
		}
	}
	return nil
}

// Type represents a Java class, interface, enum or annotation type
type Type struct {
	Name          string          // Simple type name
	Kind          Kind            // Declaration kind
	Modifiers     Modifiers       // Declaration modifiers
	TypeParams    []*TypeParam    // Generic type parameters
	Extends       []*TypeRef      // Superclass of a class, super interfaces of an interface
	Implements    []*TypeRef      // Interfaces implemented by a class or enum
	Fields        []*Field        // Fields and interface constants
	Methods       []*Method       // Methods and annotation elements
	Constructors  []*Method       // Constructors
	EnumConstants []*EnumConstant // Enum constants in declaration order
	Types         []*Type         // Nested types
	Comment       string          // Javadoc without comment markers
	Annotations   Annotations     // Declaration annotations

	fieldMap       map[string]int
	methodMap      map[string][]int
	indexedMethods int
	typeMap        map[string]int
}

// IsStatic returns true for a static nested type
func (t *Type) IsStatic() bool {
	return t.Modifiers.Has("static")
}

// LookupField returns a field by name
func (t *Type) LookupField(name string) *Field {
	if len(t.fieldMap) != len(t.Fields) {
		t.indexFields()
	}
	if idx, ok := t.fieldMap[name]; ok {
		return t.Fields[idx]
	}
	return nil
}

// LookupMethods returns all overloads with the given name
func (t *Type) LookupMethods(name string) []*Method {
	if t.methodMap == nil || t.indexedMethods != len(t.Methods) {
		t.indexMethods()
	}
	var result []*Method
	for _, idx := range t.methodMap[name] {
		result = append(result, t.Methods[idx])
	}
	return result
}

// LookupType returns a nested type by simple name
func (t *Type) LookupType(name string) *Type {
	if len(t.typeMap) != len(t.Types) {
		t.typeMap = make(map[string]int)
		for i, nested := range t.Types {
			t.typeMap[nested.Name] = i
		}
	}
	if idx, ok := t.typeMap[name]; ok {
		return t.Types[idx]
	}
	return nil
}

// AddField adds a field to the type
func (t *Type) AddField(field *Field) {
	t.Fields = append(t.Fields, field)
	t.indexFields()
}

// AddMethod adds a method to the type
func (t *Type) AddMethod(method *Method) {
	t.Methods = append(t.Methods, method)
	t.indexMethods()
}

// AbstractMethods returns methods without a body that are neither static nor default
func (t *Type) AbstractMethods() []*Method {
	var result []*Method
	for _, method := range t.Methods {
		if method.IsAbstract(t.Kind) {
			result = append(result, method)
		}
	}
	return result
}

func (t *Type) indexFields() {
	t.fieldMap = make(map[string]int)
	for i, field := range t.Fields {
		if _, ok := t.fieldMap[field.Name]; !ok {
			t.fieldMap[field.Name] = i
		}
	}
}

func (t *Type) indexMethods() {
	t.methodMap = make(map[string][]int)
	for i, method := range t.Methods {
		t.methodMap[method.Name] = append(t.methodMap[method.Name], i)
	}
	t.indexedMethods = len(t.Methods)
}

// TypeParam represents a generic type parameter
type TypeParam struct {
	Name   string     // Type parameter name
	Bounds []*TypeRef // Upper bounds joined with &
}

// Field represents a field or interface constant
type Field struct {
	Name        string
	Type        *TypeRef
	Modifiers   Modifiers
	Value       string // Initializer expression as written
	Comment     string
	Annotations Annotations
}

// IsStatic returns true for a static field; interface fields are implicitly static
func (f *Field) IsStatic(kind Kind) bool {
	return f.Modifiers.Has("static") || kind == KindInterface || kind == KindAnnotation
}

// IsFinal returns true for a final field; interface fields are implicitly final
func (f *Field) IsFinal(kind Kind) bool {
	return f.Modifiers.Has("final") || kind == KindInterface || kind == KindAnnotation
}

// Method represents a method, constructor or annotation element
type Method struct {
	Name        string
	TypeParams  []*TypeParam
	ReturnType  *TypeRef // nil for constructors
	Parameters  []*Parameter
	Throws      []*TypeRef
	Modifiers   Modifiers
	Comment     string
	Annotations Annotations
	HasBody     bool
	Default     string // Annotation element default value
}

// IsStatic returns true for a static method
func (m *Method) IsStatic() bool {
	return m.Modifiers.Has("static")
}

// IsAbstract returns true if the method has no implementation in a type of the given kind
func (m *Method) IsAbstract(kind Kind) bool {
	if m.Modifiers.Has("abstract") {
		return true
	}
	if kind != KindInterface {
		return false
	}
	return !m.HasBody && !m.IsStatic() && !m.Modifiers.Has("default") && !m.Modifiers.Has("private")
}

// Signature returns a Java-like signature used for diagnostics
func (m *Method) Signature() string {
	builder := strings.Builder{}
	if m.ReturnType != nil {
		builder.WriteString(m.ReturnType.String())
		builder.WriteString(" ")
	}
	builder.WriteString(m.Name)
	builder.WriteString("(")
	for i, parameter := range m.Parameters {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(parameter.Type.String())
		builder.WriteString(" ")
		builder.WriteString(parameter.Name)
	}
	builder.WriteString(")")
	return builder.String()
}

// Parameter represents a method parameter
type Parameter struct {
	Name        string
	Type        *TypeRef
	Modifiers   Modifiers
	Annotations Annotations
}

// EnumConstant represents an enum constant
type EnumConstant struct {
	Name      string
	Arguments string // Raw argument list without parentheses
	HasBody   bool
	Comment   string
}

func simpleName(name string) string {
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[idx+1:]
	}
	return name
}
