package poet

// MemberName references a top-level or class member (function or property) rendered with %M
type MemberName struct {
	packageName        string
	enclosingClassName *ClassName
	simpleName         string
}

// NewMemberName creates a top-level member reference
func NewMemberName(packageName, simpleName string) *MemberName {
	return &MemberName{packageName: packageName, simpleName: simpleName}
}

// NewMemberOf creates a member of enclosing, such as a companion object function
func NewMemberOf(enclosing *ClassName, simpleName string) *MemberName {
	return &MemberName{packageName: enclosing.PackageName(), enclosingClassName: enclosing, simpleName: simpleName}
}

// PackageName returns the member package
func (m *MemberName) PackageName() string {
	return m.packageName
}

// EnclosingClassName returns the declaring class, or nil for a top-level member
func (m *MemberName) EnclosingClassName() *ClassName {
	return m.enclosingClassName
}

// SimpleName returns the member name
func (m *MemberName) SimpleName() string {
	return m.simpleName
}

// CanonicalName returns the fully qualified member name
func (m *MemberName) CanonicalName() string {
	if m.enclosingClassName != nil {
		return m.enclosingClassName.CanonicalName() + "." + m.simpleName
	}
	if m.packageName == "" {
		return m.simpleName
	}
	return m.packageName + "." + m.simpleName
}

func (m *MemberName) String() string {
	return m.CanonicalName()
}

func (m *MemberName) emit(w *CodeWriter) {
	w.emitEscapedSegments(w.lookupMemberName(m))
}
