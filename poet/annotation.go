package poet

// UseSiteTarget selects the element of a property or file an annotation applies to
type UseSiteTarget int

const (
	UseSiteNone UseSiteTarget = iota
	UseSiteFile
	UseSiteProperty
	UseSiteField
	UseSiteGet
	UseSiteSet
	UseSiteReceiver
	UseSiteParam
	UseSiteSetparam
	UseSiteDelegate
)

var useSiteKeywords = [...]string{
	UseSiteNone:     "",
	UseSiteFile:     "file",
	UseSiteProperty: "property",
	UseSiteField:    "field",
	UseSiteGet:      "get",
	UseSiteSet:      "set",
	UseSiteReceiver: "receiver",
	UseSiteParam:    "param",
	UseSiteSetparam: "setparam",
	UseSiteDelegate: "delegate",
}

// Keyword returns the Kotlin use-site target keyword
func (t UseSiteTarget) Keyword() string {
	if t < 0 || int(t) >= len(useSiteKeywords) {
		return ""
	}
	return useSiteKeywords[t]
}

// AnnotationSpec is an annotation applied to a declaration or type
type AnnotationSpec struct {
	typeName      TypeName
	members       []CodeBlock
	useSiteTarget UseSiteTarget
}

// AnnotationOf returns an annotation without members
func AnnotationOf(typeName TypeName) *AnnotationSpec {
	return &AnnotationSpec{typeName: typeName}
}

// TypeName returns the annotation class
func (a *AnnotationSpec) TypeName() TypeName {
	return a.typeName
}

// Members returns the annotation arguments
func (a *AnnotationSpec) Members() []CodeBlock {
	return append([]CodeBlock{}, a.members...)
}

// UseSiteTarget returns the use-site target, UseSiteNone when absent
func (a *AnnotationSpec) UseSiteTarget() UseSiteTarget {
	return a.useSiteTarget
}

// ToBuilder returns a builder initialised with the annotation
func (a *AnnotationSpec) ToBuilder() *AnnotationSpecBuilder {
	return &AnnotationSpecBuilder{
		typeName:      a.typeName,
		members:       append([]CodeBlock{}, a.members...),
		useSiteTarget: a.useSiteTarget,
	}
}

// Render renders the annotation without imports
func (a *AnnotationSpec) Render() (string, error) {
	return renderStandalone(func(w *CodeWriter) {
		a.emit(w, true, false)
	})
}

func (a *AnnotationSpec) String() string {
	return mustRender(a.Render())
}

func (a *AnnotationSpec) emit(w *CodeWriter, inline bool, asParameter bool) {
	if !asParameter {
		w.emit("@")
	}
	if a.useSiteTarget != UseSiteNone {
		w.emit(a.useSiteTarget.Keyword() + ":")
	}
	w.emitCode(mustCode("%T", a.typeName))
	if len(a.members) == 0 && !asParameter {
		return
	}

	whitespace := "\n"
	separator := ",\n"
	suffix := ""
	if inline {
		whitespace = ""
		separator = ", "
	} else if len(a.members) > 1 {
		suffix = ","
	}

	w.emit("(")
	if len(a.members) > 1 {
		w.emit(whitespace)
		w.indentBy(1)
	}
	constantContext := w.constantContext
	w.constantContext = true
	w.emitCode(JoinToCode(a.members, separator, "", suffix))
	w.constantContext = constantContext
	if len(a.members) > 1 {
		w.unindentBy(1)
		w.emit(whitespace)
	}
	w.emit(")")
}

// AnnotationSpecBuilder builds an AnnotationSpec
type AnnotationSpecBuilder struct {
	typeName      TypeName
	members       []CodeBlock
	useSiteTarget UseSiteTarget
	err           error
}

// NewAnnotationBuilder creates a builder for annotation class typeName
func NewAnnotationBuilder(typeName TypeName) *AnnotationSpecBuilder {
	return &AnnotationSpecBuilder{typeName: typeName}
}

// AddMember adds an argument such as "name = %S"
func (b *AnnotationSpecBuilder) AddMember(format string, args ...interface{}) *AnnotationSpecBuilder {
	block, err := CodeBlockOf(format, args...)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.AddMemberCode(block)
}

// AddMemberCode adds an argument block
func (b *AnnotationSpecBuilder) AddMemberCode(block CodeBlock) *AnnotationSpecBuilder {
	b.members = append(b.members, block)
	return b
}

// UseSiteTarget sets the use-site target
func (b *AnnotationSpecBuilder) UseSiteTarget(target UseSiteTarget) *AnnotationSpecBuilder {
	b.useSiteTarget = target
	return b
}

func (b *AnnotationSpecBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build returns the annotation or the first recorded error
func (b *AnnotationSpecBuilder) Build() (*AnnotationSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if isNilTypeName(b.typeName) {
		return nil, specError("annotation type is required")
	}
	return &AnnotationSpec{
		typeName:      b.typeName,
		members:       append([]CodeBlock{}, b.members...),
		useSiteTarget: b.useSiteTarget,
	}, nil
}
