package graph

import "strings"

// Wildcard represents a type argument wildcard
type Wildcard int

const (
	WildcardNone      Wildcard = iota
	WildcardUnbounded          // ?
	WildcardExtends            // ? extends Bound
	WildcardSuper              // ? super Bound
)

// TypeRef represents a reference to a Java type as used by a declaration
type TypeRef struct {
	Name       string     // Name as written without type arguments, e.g. int, List, Map.Entry, java.util.List
	Package    string     // Package resolved from an explicit single type import
	Primitive  bool       // Primitive or void
	Args       []*TypeRef // Type arguments
	Dimensions int        // Array dimensions
	Wildcard   Wildcard
	Bound      *TypeRef // Wildcard bound
	Variadic   bool     // Last parameter declared with ...
	Nullable   bool     // Nullable by annotation
	NonNull    bool     // Non-null by annotation
}

// IsVoid returns true for the void return type
func (r *TypeRef) IsVoid() bool {
	return r != nil && r.Primitive && r.Name == "void" && r.Dimensions == 0
}

// IsArray returns true for an array or variadic parameter type
func (r *TypeRef) IsArray() bool {
	return r.Dimensions > 0 || r.Variadic
}

// SimpleName returns the last segment of the name
func (r *TypeRef) SimpleName() string {
	return simpleName(r.Name)
}

// QualifiedName returns the package qualified name when known
func (r *TypeRef) QualifiedName() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// Element returns the array element type
func (r *TypeRef) Element() *TypeRef {
	if r.Dimensions == 0 {
		return r
	}
	element := *r
	element.Dimensions--
	element.Variadic = false
	return &element
}

// String returns the Java rendering of the reference
func (r *TypeRef) String() string {
	if r == nil {
		return ""
	}
	builder := &strings.Builder{}
	r.write(builder)
	return builder.String()
}

func (r *TypeRef) write(builder *strings.Builder) {
	switch r.Wildcard {
	case WildcardUnbounded:
		builder.WriteString("?")
		return
	case WildcardExtends:
		builder.WriteString("? extends ")
		r.Bound.write(builder)
		return
	case WildcardSuper:
		builder.WriteString("? super ")
		r.Bound.write(builder)
		return
	}
	builder.WriteString(r.QualifiedName())
	if len(r.Args) > 0 {
		builder.WriteString("<")
		for i, arg := range r.Args {
			if i > 0 {
				builder.WriteString(", ")
			}
			arg.write(builder)
		}
		builder.WriteString(">")
	}
	for i := 0; i < r.Dimensions; i++ {
		builder.WriteString("[]")
	}
	if r.Variadic {
		builder.WriteString("...")
	}
}
