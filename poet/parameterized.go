package poet

// ParameterizedTypeName is a generic class applied to type arguments, such as List<String>
type ParameterizedTypeName struct {
	typeAttributes
	enclosingType TypeName
	rawType       *ClassName
	typeArguments []TypeName
}

// NewParameterizedTypeName creates rawType<typeArguments>; it panics without type arguments
func NewParameterizedTypeName(rawType *ClassName, typeArguments ...TypeName) *ParameterizedTypeName {
	return newParameterizedTypeName(nil, rawType, typeArguments, false, nil)
}

func newParameterizedTypeName(enclosingType TypeName, rawType *ClassName, typeArguments []TypeName, nullable bool, annotations []*AnnotationSpec) *ParameterizedTypeName {
	if len(typeArguments) == 0 && enclosingType == nil {
		panic("no type arguments: " + rawType.CanonicalName())
	}
	return &ParameterizedTypeName{
		typeAttributes: typeAttributes{nullable: nullable, annotations: copyAnnotations(annotations)},
		enclosingType:  enclosingType,
		rawType:        rawType.Copy(false),
		typeArguments:  append([]TypeName{}, typeArguments...),
	}
}

// RawType returns the generic class
func (p *ParameterizedTypeName) RawType() *ClassName {
	return p.rawType
}

// TypeArguments returns the applied type arguments
func (p *ParameterizedTypeName) TypeArguments() []TypeName {
	return append([]TypeName{}, p.typeArguments...)
}

// NestedClass returns a generic inner class of p, such as Outer<T>.Inner<U>
func (p *ParameterizedTypeName) NestedClass(name string, typeArguments ...TypeName) *ParameterizedTypeName {
	return newParameterizedTypeName(p, p.rawType.NestedClass(name), typeArguments, false, nil)
}

// Copy returns p with the given nullability and additional annotations
func (p *ParameterizedTypeName) Copy(nullable bool, annotations ...*AnnotationSpec) *ParameterizedTypeName {
	return newParameterizedTypeName(p.enclosingType, p.rawType, p.typeArguments, nullable, append(copyAnnotations(p.annotations), annotations...))
}

func (p *ParameterizedTypeName) String() string {
	return typeString(p)
}

func (p *ParameterizedTypeName) emit(w *CodeWriter) {
	if p.enclosingType != nil {
		w.emitType(p.enclosingType)
		w.emit(".")
		w.emitEscapedSegments(p.rawType.SimpleName())
	} else {
		p.rawType.emit(w)
	}
	if len(p.typeArguments) == 0 {
		return
	}
	w.emit("<")
	for i, argument := range p.typeArguments {
		if i > 0 {
			w.emit(", ")
		}
		w.emitType(argument)
	}
	w.emit(">")
}

func (p *ParameterizedTypeName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	return newParameterizedTypeName(p.enclosingType, p.rawType, p.typeArguments, nullable, annotations)
}
