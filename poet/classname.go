package poet

import (
	"strings"
	"unicode"
)

// ClassName is a fully qualified reference to a top-level or nested class
type ClassName struct {
	typeAttributes
	// names holds the package followed by the simple names from outermost to innermost
	names         []string
	canonicalName string
}

// NewClassName creates a class name; it panics when no simple name is given or one is empty
func NewClassName(packageName string, simpleNames ...string) *ClassName {
	if len(simpleNames) == 0 {
		panic("simpleNames must not be empty")
	}
	for _, name := range simpleNames {
		if name == "" {
			panic("simpleNames must not contain empty items: " + strings.Join(simpleNames, ", "))
		}
	}
	names := append([]string{packageName}, simpleNames...)
	return newClassName(names, false, nil)
}

func newClassName(names []string, nullable bool, annotations []*AnnotationSpec) *ClassName {
	canonical := strings.Join(names[1:], ".")
	if names[0] != "" {
		canonical = names[0] + "." + canonical
	}
	return &ClassName{
		typeAttributes: typeAttributes{nullable: nullable, annotations: copyAnnotations(annotations)},
		names:          names,
		canonicalName:  canonical,
	}
}

// ClassNameBestGuess guesses a class name from a canonical name, it assumes lowercase packages and capitalized classes
func ClassNameBestGuess(canonicalName string) (*ClassName, error) {
	var packageName []string
	segments := strings.Split(canonicalName, ".")
	index := 0
	for ; index < len(segments); index++ {
		segment := segments[index]
		if segment == "" {
			return nil, specError("couldn't make a guess for %s", canonicalName)
		}
		if unicode.IsUpper([]rune(segment)[0]) {
			break
		}
		packageName = append(packageName, segment)
	}
	if index == len(segments) {
		return nil, specError("couldn't make a guess for %s", canonicalName)
	}
	simpleNames := segments[index:]
	for _, name := range simpleNames {
		if name == "" || !unicode.IsUpper([]rune(name)[0]) {
			return nil, specError("couldn't make a guess for %s", canonicalName)
		}
	}
	return NewClassName(strings.Join(packageName, "."), simpleNames...), nil
}

// PackageName returns the package, empty for the default package
func (c *ClassName) PackageName() string {
	return c.names[0]
}

// SimpleName returns the innermost simple name
func (c *ClassName) SimpleName() string {
	return c.names[len(c.names)-1]
}

// SimpleNames returns simple names from outermost to innermost
func (c *ClassName) SimpleNames() []string {
	return append([]string{}, c.names[1:]...)
}

// CanonicalName returns the dot separated fully qualified name
func (c *ClassName) CanonicalName() string {
	return c.canonicalName
}

// ReflectionName returns the binary name, nested classes are separated by $
func (c *ClassName) ReflectionName() string {
	simple := strings.Join(c.names[1:], "$")
	if c.names[0] == "" {
		return simple
	}
	return c.names[0] + "." + simple
}

// EnclosingClassName returns the enclosing class, or nil for a top-level class
func (c *ClassName) EnclosingClassName() *ClassName {
	if len(c.names) == 2 {
		return nil
	}
	return newClassName(append([]string{}, c.names[:len(c.names)-1]...), false, nil)
}

// TopLevelClassName returns the outermost class
func (c *ClassName) TopLevelClassName() *ClassName {
	return newClassName([]string{c.names[0], c.names[1]}, false, nil)
}

// NestedClass returns a class nested in c
func (c *ClassName) NestedClass(name string) *ClassName {
	if name == "" {
		panic("nested class name must not be empty")
	}
	return newClassName(append(append([]string{}, c.names...), name), false, nil)
}

// PeerClass returns a class sharing the enclosing scope of c
func (c *ClassName) PeerClass(name string) *ClassName {
	if name == "" {
		panic("peer class name must not be empty")
	}
	names := append([]string{}, c.names...)
	names[len(names)-1] = name
	return newClassName(names, false, nil)
}

// ParameterizedBy returns c applied to type arguments
func (c *ClassName) ParameterizedBy(typeArguments ...TypeName) *ParameterizedTypeName {
	return NewParameterizedTypeName(c, typeArguments...)
}

// Member returns a member declared in c
func (c *ClassName) Member(simpleName string) *MemberName {
	return NewMemberOf(c, simpleName)
}

// Copy returns c with the given nullability and additional annotations
func (c *ClassName) Copy(nullable bool, annotations ...*AnnotationSpec) *ClassName {
	return newClassName(c.names, nullable, append(copyAnnotations(c.annotations), annotations...))
}

// Compare orders class names by canonical name
func (c *ClassName) Compare(other *ClassName) int {
	return strings.Compare(c.canonicalName, other.canonicalName)
}

// String returns the canonical rendering
func (c *ClassName) String() string {
	return typeString(c)
}

func (c *ClassName) sameClass(other *ClassName) bool {
	return other != nil && c.canonicalName == other.canonicalName
}

func (c *ClassName) emit(w *CodeWriter) {
	w.emitEscapedSegments(w.lookupName(c))
}

func (c *ClassName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	return newClassName(c.names, nullable, annotations)
}
