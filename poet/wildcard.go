package poet

// WildcardTypeName is a use-site variance projection: out T, in T or *
type WildcardTypeName struct {
	typeAttributes
	outTypes []TypeName
	inTypes  []TypeName
}

// Star is the star projection, equivalent to out Any?
var Star = ProducerOf(NullableAny)

// ProducerOf returns out outType
func ProducerOf(outType TypeName) *WildcardTypeName {
	return &WildcardTypeName{outTypes: []TypeName{outType}}
}

// ConsumerOf returns in inType
func ConsumerOf(inType TypeName) *WildcardTypeName {
	return &WildcardTypeName{outTypes: []TypeName{Any}, inTypes: []TypeName{inType}}
}

// OutTypes returns upper bounds
func (t *WildcardTypeName) OutTypes() []TypeName {
	return append([]TypeName{}, t.outTypes...)
}

// InTypes returns lower bounds
func (t *WildcardTypeName) InTypes() []TypeName {
	return append([]TypeName{}, t.inTypes...)
}

func (t *WildcardTypeName) String() string {
	return typeString(t)
}

func (t *WildcardTypeName) emit(w *CodeWriter) {
	switch {
	case len(t.inTypes) == 1:
		w.emitCode(mustCode("in %T", t.inTypes[0]))
	case len(t.outTypes) == 1 && TypeNameEqual(t.outTypes[0], NullableAny):
		w.emit("*")
	default:
		w.emitCode(mustCode("out %T", t.outTypes[0]))
	}
}

func (t *WildcardTypeName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	return &WildcardTypeName{
		typeAttributes: typeAttributes{nullable: nullable, annotations: copyAnnotations(annotations)},
		outTypes:       t.outTypes,
		inTypes:        t.inTypes,
	}
}
