package poet

// TypeVariableName is a declared type parameter such as T, in T : Comparable<T> or reified T
type TypeVariableName struct {
	typeAttributes
	name     string
	bounds   []TypeName
	variance *Modifier
	reified  bool
}

// NewTypeVariable creates a type variable with optional upper bounds
func NewTypeVariable(name string, bounds ...TypeName) *TypeVariableName {
	return &TypeVariableName{name: name, bounds: withoutImplicitBound(bounds)}
}

func withoutImplicitBound(bounds []TypeName) []TypeName {
	var result []TypeName
	for _, bound := range bounds {
		if TypeNameEqual(bound, NullableAny) {
			continue
		}
		result = append(result, bound)
	}
	return result
}

// Name returns the variable name
func (t *TypeVariableName) Name() string {
	return t.name
}

// Bounds returns the explicit upper bounds
func (t *TypeVariableName) Bounds() []TypeName {
	return append([]TypeName{}, t.bounds...)
}

// Variance returns In, Out, or false when invariant
func (t *TypeVariableName) Variance() (Modifier, bool) {
	if t.variance == nil {
		return 0, false
	}
	return *t.variance, true
}

// IsReified returns true for a reified type parameter
func (t *TypeVariableName) IsReified() bool {
	return t.reified
}

// WithVariance returns t declared with In or Out variance; it panics for other modifiers
func (t *TypeVariableName) WithVariance(variance Modifier) *TypeVariableName {
	if variance != In && variance != Out {
		panic("unexpected variance " + variance.String())
	}
	result := t.clone()
	result.variance = &variance
	return result
}

// WithBounds returns t with additional upper bounds
func (t *TypeVariableName) WithBounds(bounds ...TypeName) *TypeVariableName {
	result := t.clone()
	result.bounds = append(append([]TypeName{}, t.bounds...), withoutImplicitBound(bounds)...)
	return result
}

// Reified returns t as a reified type parameter
func (t *TypeVariableName) Reified() *TypeVariableName {
	result := t.clone()
	result.reified = true
	return result
}

// Copy returns t with the given nullability and additional annotations
func (t *TypeVariableName) Copy(nullable bool, annotations ...*AnnotationSpec) *TypeVariableName {
	result := t.clone()
	result.nullable = nullable
	result.annotations = append(copyAnnotations(t.annotations), annotations...)
	return result
}

func (t *TypeVariableName) clone() *TypeVariableName {
	result := *t
	result.annotations = copyAnnotations(t.annotations)
	return &result
}

func (t *TypeVariableName) String() string {
	return typeString(t)
}

func (t *TypeVariableName) emit(w *CodeWriter) {
	w.emitEscapedSegments(t.name)
}

func (t *TypeVariableName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	result := t.clone()
	result.nullable = nullable
	result.annotations = copyAnnotations(annotations)
	return result
}
