package poet

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

const (
	// DefaultIndent is the indentation unit of rendered files
	DefaultIndent = "  "
	// DefaultColumnLimit is the line width the wrapper aims for
	DefaultColumnLimit = 100
)

// CodeWriter renders specs for a single pass; it converts format parts to text, resolves names and tracks indentation
type CodeWriter struct {
	out         *LineWrapper
	indent      string
	indentLevel int

	kdoc            bool
	comment         bool
	constantContext bool

	packageName   string
	hasPackage    bool
	typeSpecStack []*TypeSpec

	// memberImports holds explicit imports keyed by qualified name
	memberImports          map[string]Import
	memberImportClassNames map[string]bool
	importedTypes          map[string]*ClassName
	importedMembers        map[string]*MemberName
	importableTypes        map[string]*ClassName
	importableMembers      map[string]*MemberName
	referencedNames        map[string]bool

	trailingNewline bool
	// statementLine is -1 outside a statement, otherwise the number of line breaks emitted in the statement
	statementLine int
	err           error
}

func newCodeWriter(out io.Writer, indent string, columnLimit int, memberImports map[string]Import, importedTypes map[string]*ClassName, importedMembers map[string]*MemberName) *CodeWriter {
	w := &CodeWriter{
		out:                    NewLineWrapper(out, indent, columnLimit),
		indent:                 indent,
		memberImports:          map[string]Import{},
		memberImportClassNames: map[string]bool{},
		importedTypes:          map[string]*ClassName{},
		importedMembers:        map[string]*MemberName{},
		importableTypes:        map[string]*ClassName{},
		importableMembers:      map[string]*MemberName{},
		referencedNames:        map[string]bool{},
		statementLine:          -1,
	}
	for name, anImport := range memberImports {
		w.memberImports[name] = anImport
		if index := strings.LastIndexByte(name, '.'); index != -1 {
			w.memberImportClassNames[name[:index]] = true
		}
	}
	for name, className := range importedTypes {
		w.importedTypes[name] = className
	}
	for name, member := range importedMembers {
		w.importedMembers[name] = member
	}
	return w
}

// renderStandalone renders with a writer that has no package and no imports
func renderStandalone(fn func(w *CodeWriter)) (string, error) {
	builder := &strings.Builder{}
	w := newCodeWriter(builder, DefaultIndent, DefaultColumnLimit, nil, nil, nil)
	fn(w)
	if err := w.close(); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func mustRender(text string, err error) string {
	if err != nil {
		panic(err)
	}
	return text
}

func mustCode(format string, args ...interface{}) CodeBlock {
	return MustCodeBlockOf(format, args...)
}

func (w *CodeWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *CodeWriter) close() error {
	if w.err == nil && w.statementLine != -1 {
		w.fail(renderError("statement enter %%[ has no matching statement exit %%]"))
	}
	if err := w.out.Close(); err != nil {
		w.fail(err)
	}
	return w.err
}

func (w *CodeWriter) setPackage(packageName string) {
	w.packageName = packageName
	w.hasPackage = true
}

func (w *CodeWriter) indentBy(levels int) {
	w.indentLevel += levels
}

func (w *CodeWriter) unindentBy(levels int) {
	if w.indentLevel-levels < 0 {
		w.fail(renderError("cannot unindent %d from %d", levels, w.indentLevel))
		return
	}
	w.indentLevel -= levels
}

func (w *CodeWriter) pushType(typeSpec *TypeSpec) {
	w.typeSpecStack = append(w.typeSpecStack, typeSpec)
}

func (w *CodeWriter) popType() {
	w.typeSpecStack = w.typeSpecStack[:len(w.typeSpecStack)-1]
}

func (w *CodeWriter) emitComment(block CodeBlock) {
	w.trailingNewline = true // force the "//" prefix
	w.comment = true
	w.emitCode(block)
	if !w.trailingNewline {
		w.emit("\n")
	}
	w.comment = false
}

func (w *CodeWriter) emitKdoc(block CodeBlock) {
	if block.IsEmpty() {
		return
	}
	w.emit("/**\n")
	w.kdoc = true
	w.emitCode(block.ensureEndsWithNewline())
	w.kdoc = false
	w.emit(" */\n")
}

func (w *CodeWriter) emitAnnotations(annotations []*AnnotationSpec, inline bool) {
	for _, annotation := range annotations {
		annotation.emit(w, inline, false)
		if inline {
			w.emit(" ")
		} else {
			w.emit("\n")
		}
	}
}

// emitModifiers emits modifiers in canonical order, skipping the implicit ones
func (w *CodeWriter) emitModifiers(modifiers modifierSet, implicit modifierSet) {
	for _, modifier := range modifiers.list() {
		if implicit.has(modifier) {
			continue
		}
		w.emit(modifier.Keyword())
		w.emit(" ")
	}
}

func (w *CodeWriter) emitTypeVariables(typeVariables []*TypeVariableName) {
	if len(typeVariables) == 0 {
		return
	}
	w.emit("<")
	for i, typeVariable := range typeVariables {
		if i > 0 {
			w.emit(", ")
		}
		if variance, ok := typeVariable.Variance(); ok {
			w.emit(variance.Keyword() + " ")
		}
		if typeVariable.reified {
			w.emit("reified ")
		}
		w.emitAnnotations(typeVariable.annotations, true)
		w.emitEscapedSegments(typeVariable.name)
		if len(typeVariable.bounds) == 1 {
			w.emitCode(mustCode(" : %T", typeVariable.bounds[0]))
		}
	}
	w.emit(">")
}

func (w *CodeWriter) emitWhereBlock(typeVariables []*TypeVariableName) {
	first := true
	for _, typeVariable := range typeVariables {
		if len(typeVariable.bounds) < 2 {
			continue
		}
		for _, bound := range typeVariable.bounds {
			prefix := ", "
			if first {
				prefix = " where "
			}
			w.emit(prefix)
			w.emitEscapedSegments(typeVariable.name)
			w.emitCode(mustCode(" : %T", bound))
			first = false
		}
	}
}

// emitCode converts format parts of block to text
func (w *CodeWriter) emitCode(block CodeBlock) {
	argIndex := 0
	var deferredType *ClassName
	for i := 0; i < len(block.parts); i++ {
		if w.err != nil {
			return
		}
		part := block.parts[i]
		switch part {
		case "%L":
			w.emitLiteral(block.args[argIndex])
			argIndex++
		case "%N":
			w.emit(block.args[argIndex].(string))
			argIndex++
		case "%S":
			if value, ok := block.args[argIndex].(string); ok {
				w.emit(stringLiteralWithQuotes(value, true, w.constantContext))
			} else {
				w.emit("null")
			}
			argIndex++
		case "%P":
			switch value := block.args[argIndex].(type) {
			case CodeBlock:
				w.emit("\"")
				w.emitCode(value)
				w.emit("\"")
			case string:
				w.emit(stringLiteralWithQuotes(value, false, w.constantContext))
			default:
				w.emit("null")
			}
			argIndex++
		case "%T":
			typeName := block.args[argIndex].(TypeName)
			argIndex++
			if len(typeName.Annotations()) > 0 {
				w.emitAnnotations(typeName.Annotations(), true)
				typeName = WithoutAnnotations(typeName)
			}
			// defer "%T.member" when member has an explicit import
			if className, ok := typeName.(*ClassName); ok && !className.nullable && i+1 < len(block.parts) {
				if next := block.parts[i+1]; !isPlaceholder(next) && w.memberImportClassNames[className.CanonicalName()] {
					deferredType = className
					continue
				}
			}
			typeName.emit(w)
			w.emitNullable(typeName)
		case "%M":
			block.args[argIndex].(*MemberName).emit(w)
			argIndex++
		case "%%":
			w.emit("%")
		case "%>":
			w.indentBy(1)
		case "%<":
			w.unindentBy(1)
		case "%[":
			if w.statementLine != -1 {
				w.fail(renderError("statement enter %%[ followed by statement enter %%["))
				return
			}
			w.statementLine = 0
		case "%]":
			if w.statementLine == -1 {
				w.fail(renderError("statement exit %%] has no matching statement enter %%["))
				return
			}
			if w.statementLine > 0 {
				w.unindentBy(2) // end a multi-line statement, decrease the indentation level
			}
			w.statementLine = -1
		case "%W":
			w.wrappingSpace(w.indentLevel + 2)
		default:
			if deferredType != nil {
				if strings.HasPrefix(part, ".") && w.emitStaticImportMember(deferredType.CanonicalName(), part) {
					deferredType = nil
					continue
				}
				deferredType.emit(w)
				deferredType = nil
			}
			w.emit(part)
		}
	}
	if deferredType != nil {
		deferredType.emit(w)
	}
}

func (w *CodeWriter) emitStaticImportMember(canonical, part string) bool {
	partWithoutLeadingDot := part[1:]
	memberName := extractMemberName(partWithoutLeadingDot)
	if memberName == "" {
		return false
	}
	anImport, ok := w.memberImports[canonical+"."+memberName]
	if !ok {
		return false
	}
	if anImport.Alias != "" {
		w.emit(anImport.Alias + partWithoutLeadingDot[len(memberName):])
		return true
	}
	w.emit(partWithoutLeadingDot)
	return true
}

func extractMemberName(part string) string {
	for i, r := range part {
		if i == 0 && !(unicode.IsLetter(r) || r == '_' || r == '$') {
			return ""
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$') {
			return part[:i]
		}
	}
	return part
}

func (w *CodeWriter) emitLiteral(value interface{}) {
	switch actual := value.(type) {
	case nil:
		w.emit("null")
	case *TypeSpec:
		actual.emit(w, "", 0)
	case *AnnotationSpec:
		actual.emit(w, true, true)
	case *PropertySpec:
		actual.emit(w, 0, true, false)
	case *FunSpec:
		actual.emit(w, "", 0, true)
	case CodeBlock:
		w.emitCode(actual)
	case string:
		w.emit(actual)
	case fmt.Stringer:
		w.emit(actual.String())
	default:
		w.emit(fmt.Sprint(value))
	}
}

// emitType emits annotations, the type and its nullability
func (w *CodeWriter) emitType(t TypeName) {
	if len(t.Annotations()) > 0 {
		w.emitAnnotations(t.Annotations(), true)
	}
	t.emit(w)
	w.emitNullable(t)
}

func (w *CodeWriter) emitNullable(t TypeName) {
	if t.IsNullable() {
		w.emit("?")
	}
}

func (w *CodeWriter) emitEscapedSegments(name string) {
	escaped, err := escapeSegmentsIfNecessary(name)
	if err != nil {
		w.fail(err)
		return
	}
	w.emit(escaped)
}

// lookupName returns the shortest name for className that resolves to it in the current scope
func (w *CodeWriter) lookupName(className *ClassName) string {
	nameResolved := false
	for c := className; c != nil; c = c.EnclosingClassName() {
		suffix := className.names[len(c.names):]
		if anImport, ok := w.memberImports[c.CanonicalName()]; ok {
			name := anImport.Alias
			if name == "" {
				name = c.SimpleName()
			}
			return strings.Join(append([]string{name}, suffix...), ".")
		}
		resolved := w.resolve(c.SimpleName())
		nameResolved = resolved != nil
		if resolved != nil && resolved.sameClass(c) {
			return strings.Join(className.names[len(c.names)-1:], ".")
		}
	}

	// the name resolved to another class, only the fully qualified name is unambiguous
	if nameResolved {
		return className.CanonicalName()
	}

	if w.hasPackage && w.packageName == className.PackageName() {
		w.referencedNames[className.TopLevelClassName().SimpleName()] = true
		return strings.Join(className.names[1:], ".")
	}

	if !w.kdoc {
		w.importableType(className)
	}
	return className.CanonicalName()
}

// lookupMemberName returns the shortest name of member in the current scope
func (w *CodeWriter) lookupMemberName(member *MemberName) string {
	if anImport, ok := w.memberImports[member.CanonicalName()]; ok {
		if anImport.Alias != "" {
			return anImport.Alias
		}
		return member.simpleName
	}
	if imported, ok := w.importedMembers[member.simpleName]; ok {
		if imported.CanonicalName() == member.CanonicalName() {
			return member.simpleName
		}
		if member.enclosingClassName != nil {
			return w.lookupName(member.enclosingClassName) + "." + member.simpleName
		}
	}
	if w.hasPackage && w.packageName == member.packageName && member.enclosingClassName == nil {
		w.referencedNames[member.simpleName] = true
		return member.simpleName
	}
	if !w.kdoc && !w.isFunctionNameInScope(member.simpleName) {
		w.importableMember(member)
	}
	return member.CanonicalName()
}

// isFunctionNameInScope reports whether an enclosing type declares a function named simpleName
func (w *CodeWriter) isFunctionNameInScope(simpleName string) bool {
	for i := len(w.typeSpecStack) - 1; i >= 0; i-- {
		typeSpec := w.typeSpecStack[i]
		for _, funSpec := range typeSpec.funSpecs {
			if funSpec.name == simpleName {
				return true
			}
		}
		if !typeSpec.modifiers.has(Inner) {
			break
		}
	}
	return false
}

func (w *CodeWriter) importableType(className *ClassName) {
	if className.PackageName() == "" {
		return
	}
	topLevel := className.TopLevelClassName()
	simpleName := topLevel.SimpleName()
	if _, ok := w.importableMembers[simpleName]; ok {
		return
	}
	if _, ok := w.importableTypes[simpleName]; !ok {
		w.importableTypes[simpleName] = topLevel
	}
}

func (w *CodeWriter) importableMember(member *MemberName) {
	if member.packageName == "" {
		return
	}
	if _, ok := w.importableTypes[member.simpleName]; ok {
		return
	}
	if _, ok := w.importableMembers[member.simpleName]; !ok {
		w.importableMembers[member.simpleName] = member
	}
}

// resolve returns the class a simple name refers to: a nested type of the open scopes, the top-level type, or an import
func (w *CodeWriter) resolve(simpleName string) *ClassName {
	for i := len(w.typeSpecStack) - 1; i >= 0; i-- {
		for _, nested := range w.typeSpecStack[i].typeSpecs {
			if nested.name == simpleName {
				if className := w.stackClassName(i, simpleName); className != nil {
					return className
				}
			}
		}
	}
	if len(w.typeSpecStack) > 0 {
		if top := w.typeSpecStack[0]; top.name != "" && top.name == simpleName {
			return NewClassName(w.packageName, simpleName)
		}
	}
	return w.importedTypes[simpleName]
}

// stackClassName returns the class name of simpleName nested in the type at stackDepth
func (w *CodeWriter) stackClassName(stackDepth int, simpleName string) *ClassName {
	names := []string{w.packageName}
	for i := 0; i <= stackDepth; i++ {
		name := w.typeSpecStack[i].name
		if name == "" {
			return nil
		}
		names = append(names, name)
	}
	return NewClassName(names[0], append(names[1:], simpleName)...)
}

// suggestedImports returns importable types whose simple names do not clash with the current package
func (w *CodeWriter) suggestedImports() map[string]*ClassName {
	result := map[string]*ClassName{}
	for simpleName, className := range w.importableTypes {
		if !w.referencedNames[simpleName] {
			result[simpleName] = className
		}
	}
	return result
}

func (w *CodeWriter) suggestedMemberImports() map[string]*MemberName {
	result := map[string]*MemberName{}
	for simpleName, member := range w.importableMembers {
		if !w.referencedNames[simpleName] {
			result[simpleName] = member
		}
	}
	return result
}

func (w *CodeWriter) wrappingSpace(indentLevel int) {
	if w.err != nil {
		return
	}
	if w.kdoc || w.comment {
		w.emit(" ")
		return
	}
	if err := w.out.WrappingSpace(indentLevel); err != nil {
		w.fail(err)
	}
	w.trailingNewline = false
}

// emit emits s, prefixing lines with indentation and comment markers
func (w *CodeWriter) emit(s string) {
	if w.err != nil {
		return
	}
	first := true
	for _, line := range strings.Split(s, "\n") {
		// each line after the first is preceded by a line break
		if !first {
			if (w.kdoc || w.comment) && w.trailingNewline {
				w.emitIndentation()
				if w.kdoc {
					w.append(" *")
				} else {
					w.append("//")
				}
			}
			w.append("\n")
			w.trailingNewline = true
			if w.statementLine != -1 {
				if w.statementLine == 0 {
					w.indentBy(2) // first line break of a statement, continuation lines get a double indent
				}
				w.statementLine++
			}
		}
		first = false
		if line == "" {
			continue
		}
		if w.trailingNewline {
			w.emitIndentation()
			if w.kdoc {
				w.append(" * ")
			} else if w.comment {
				w.append("// ")
			}
		}
		w.append(line)
		w.trailingNewline = false
	}
}

func (w *CodeWriter) emitIndentation() {
	for i := 0; i < w.indentLevel; i++ {
		w.append(w.indent)
	}
}

func (w *CodeWriter) append(s string) {
	if w.err != nil {
		return
	}
	if err := w.out.Append(s); err != nil {
		w.fail(err)
	}
}
