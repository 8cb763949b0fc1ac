package poet

// LambdaTypeName is a function type such as suspend String.(Int) -> Unit
type LambdaTypeName struct {
	typeAttributes
	receiver   TypeName
	parameters []*ParameterSpec
	returnType TypeName
	suspending bool
}

// NewLambdaType creates (parameters) -> returnType with an optional receiver
func NewLambdaType(receiver TypeName, returnType TypeName, parameters ...TypeName) *LambdaTypeName {
	specs := make([]*ParameterSpec, len(parameters))
	for i, parameter := range parameters {
		specs[i] = UnnamedParameter(parameter)
	}
	return NewLambdaTypeWithParameters(receiver, returnType, specs...)
}

// NewLambdaTypeWithParameters creates a function type with named or unnamed parameters
func NewLambdaTypeWithParameters(receiver TypeName, returnType TypeName, parameters ...*ParameterSpec) *LambdaTypeName {
	if isNilTypeName(returnType) {
		returnType = Unit
	}
	if isNilTypeName(receiver) {
		receiver = nil
	}
	return &LambdaTypeName{
		receiver:   receiver,
		parameters: append([]*ParameterSpec{}, parameters...),
		returnType: returnType,
	}
}

// Receiver returns the receiver type or nil
func (l *LambdaTypeName) Receiver() TypeName {
	return l.receiver
}

// ReturnType returns the result type
func (l *LambdaTypeName) ReturnType() TypeName {
	return l.returnType
}

// Parameters returns the parameter specs
func (l *LambdaTypeName) Parameters() []*ParameterSpec {
	return append([]*ParameterSpec{}, l.parameters...)
}

// IsSuspending returns true for a suspend function type
func (l *LambdaTypeName) IsSuspending() bool {
	return l.suspending
}

// Suspending returns l as a suspend function type
func (l *LambdaTypeName) Suspending() *LambdaTypeName {
	result := l.clone()
	result.suspending = true
	return result
}

// Copy returns l with the given nullability and additional annotations
func (l *LambdaTypeName) Copy(nullable bool, annotations ...*AnnotationSpec) *LambdaTypeName {
	result := l.clone()
	result.nullable = nullable
	result.annotations = append(copyAnnotations(l.annotations), annotations...)
	return result
}

func (l *LambdaTypeName) clone() *LambdaTypeName {
	result := *l
	result.annotations = copyAnnotations(l.annotations)
	return &result
}

func (l *LambdaTypeName) String() string {
	return typeString(l)
}

func (l *LambdaTypeName) emit(w *CodeWriter) {
	if l.nullable {
		w.emit("(")
	}
	if l.suspending {
		w.emit("suspend ")
	}
	if l.receiver != nil {
		if len(l.receiver.Annotations()) > 0 {
			w.emitCode(mustCode("(%T).", l.receiver))
		} else {
			w.emitCode(mustCode("%T.", l.receiver))
		}
	}
	w.emit("(")
	for i, parameter := range l.parameters {
		if i > 0 {
			w.emit(", ")
		}
		parameter.emit(w, true)
	}
	w.emit(")")
	if _, ok := l.returnType.(*LambdaTypeName); ok {
		w.emitCode(mustCode(" -> (%T)", l.returnType))
	} else {
		w.emitCode(mustCode(" -> %T", l.returnType))
	}
	if l.nullable {
		w.emit(")")
	}
}

func (l *LambdaTypeName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	result := l.clone()
	result.nullable = nullable
	result.annotations = copyAnnotations(annotations)
	return result
}
