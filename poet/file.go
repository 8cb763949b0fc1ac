package poet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// FileSpec is a Kotlin source file
type FileSpec struct {
	packageName   string
	name          string
	comment       CodeBlock
	annotations   []*AnnotationSpec
	members       []interface{}
	memberImports map[string]Import
	indent        string
	columnLimit   int
}

// PackageName returns the file package
func (f *FileSpec) PackageName() string {
	return f.packageName
}

// Name returns the file name without the .kt extension
func (f *FileSpec) Name() string {
	return f.name
}

// RelativePath returns the package directory path of the file
func (f *FileSpec) RelativePath() string {
	fileName := f.name + ".kt"
	if f.packageName == "" {
		return fileName
	}
	return path.Join(append(strings.Split(f.packageName, "."), fileName)...)
}

// WriteTo renders the file into out; nothing is written when rendering fails
func (f *FileSpec) WriteTo(out io.Writer) (int64, error) {
	text, err := f.Render()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(out, text)
	return int64(n), err
}

// Render renders the file with its imports
func (f *FileSpec) Render() (string, error) {
	// first pass collects the types and members the file references
	collector := newCodeWriter(io.Discard, f.indent, f.columnLimit, f.memberImports, nil, nil)
	f.emit(collector)
	if err := collector.close(); err != nil {
		return "", err
	}

	buffer := &bytes.Buffer{}
	w := newCodeWriter(buffer, f.indent, f.columnLimit, f.memberImports, collector.suggestedImports(), collector.suggestedMemberImports())
	f.emit(w)
	if err := w.close(); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func (f *FileSpec) String() string {
	return mustRender(f.Render())
}

// WriteToDir renders the file and uploads it under baseURL in its package directory
func (f *FileSpec) WriteToDir(ctx context.Context, fs afs.Service, baseURL string) (string, error) {
	text, err := f.Render()
	if err != nil {
		return "", err
	}
	URL := url.Join(baseURL, f.RelativePath())
	if err = fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("failed to upload %v: %w", URL, err)
	}
	return URL, nil
}

func (f *FileSpec) emit(w *CodeWriter) {
	if !f.comment.IsEmpty() {
		w.emitComment(f.comment)
	}
	if len(f.annotations) > 0 {
		w.emitAnnotations(f.annotations, false)
		w.emit("\n")
	}

	w.setPackage(f.packageName)
	if f.packageName != "" {
		escaped, err := escapeSegmentsIfNecessary(f.packageName)
		if err != nil {
			w.fail(err)
			return
		}
		w.emitCode(mustCode("package %L\n", escaped))
		w.emit("\n")
	}

	imports := sortedImports(f.implicitImports(w), f.memberImports)
	if len(imports) > 0 {
		for _, anImport := range imports {
			w.emitCode(mustCode("import %L", anImport))
			w.emit("\n")
		}
		w.emit("\n")
	}

	for i, member := range f.members {
		if i > 0 {
			w.emit("\n")
		}
		switch actual := member.(type) {
		case *TypeSpec:
			actual.emit(w, "", 0)
		case *FunSpec:
			actual.emit(w, "", newModifierSet(Public), true)
		case *PropertySpec:
			actual.emit(w, newModifierSet(Public), true, false)
		case *TypeAliasSpec:
			actual.emit(w)
		}
	}
}

// implicitImports returns the imports resolved in the previous pass that have no explicit import
func (f *FileSpec) implicitImports(w *CodeWriter) []string {
	var result []string
	add := func(canonicalName string) {
		if _, ok := f.memberImports[canonicalName]; ok {
			return
		}
		escaped, err := escapeSegmentsIfNecessary(canonicalName)
		if err != nil {
			w.fail(err)
			return
		}
		result = append(result, escaped)
	}
	for _, className := range w.importedTypes {
		add(className.CanonicalName())
	}
	for _, member := range w.importedMembers {
		add(member.CanonicalName())
	}
	return result
}

// ToBuilder returns a builder initialised with the file
func (f *FileSpec) ToBuilder() *FileSpecBuilder {
	builder := NewFileBuilder(f.packageName, f.name)
	builder.comment = f.comment.ToBuilder()
	builder.annotations = append(builder.annotations, f.annotations...)
	builder.members = append(builder.members, f.members...)
	for name, anImport := range f.memberImports {
		builder.memberImports[name] = anImport
	}
	builder.indent = f.indent
	builder.columnLimit = f.columnLimit
	return builder
}

// FileSpecBuilder builds a FileSpec
type FileSpecBuilder struct {
	packageName   string
	name          string
	comment       *CodeBlockBuilder
	annotations   []*AnnotationSpec
	members       []interface{}
	memberImports map[string]Import
	indent        string
	columnLimit   int
	err           error
}

// NewFileBuilder creates a builder for packageName/fileName.kt
func NewFileBuilder(packageName, fileName string) *FileSpecBuilder {
	return &FileSpecBuilder{
		packageName:   packageName,
		name:          fileName,
		comment:       NewCodeBlockBuilder(),
		memberImports: map[string]Import{},
		indent:        DefaultIndent,
		columnLimit:   DefaultColumnLimit,
	}
}

func (b *FileSpecBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddComment appends to the file header comment
func (b *FileSpecBuilder) AddComment(format string, args ...interface{}) *FileSpecBuilder {
	b.comment.Add(format, args...)
	return b
}

// AddAnnotation adds a file annotation; the use-site target is forced to file
func (b *FileSpecBuilder) AddAnnotation(annotation *AnnotationSpec) *FileSpecBuilder {
	switch annotation.useSiteTarget {
	case UseSiteFile:
	case UseSiteNone:
		annotation = &AnnotationSpec{typeName: annotation.typeName, members: annotation.members, useSiteTarget: UseSiteFile}
	default:
		b.setErr(specError("use-site target %v not supported for file annotations", annotation.useSiteTarget.Keyword()))
		return b
	}
	b.annotations = append(b.annotations, annotation)
	return b
}

// AddType adds a top-level type
func (b *FileSpecBuilder) AddType(typeSpec *TypeSpec) *FileSpecBuilder {
	b.members = append(b.members, typeSpec)
	return b
}

// AddFunction adds a top-level function
func (b *FileSpecBuilder) AddFunction(funSpec *FunSpec) *FileSpecBuilder {
	if funSpec.IsConstructor() || funSpec.IsAccessor() {
		b.setErr(specError("cannot add %s to file %s", funSpec.name, b.name))
		return b
	}
	b.members = append(b.members, funSpec)
	return b
}

// AddProperty adds a top-level property
func (b *FileSpecBuilder) AddProperty(property *PropertySpec) *FileSpecBuilder {
	b.members = append(b.members, property)
	return b
}

// AddTypeAlias adds a top-level type alias
func (b *FileSpecBuilder) AddTypeAlias(typeAlias *TypeAliasSpec) *FileSpecBuilder {
	b.members = append(b.members, typeAlias)
	return b
}

// AddImport adds explicit imports of members of className, or of className itself when names is empty
func (b *FileSpecBuilder) AddImport(className *ClassName, names ...string) *FileSpecBuilder {
	if len(names) == 0 {
		return b.addImport(className.CanonicalName(), "")
	}
	for _, name := range names {
		b.addImport(className.CanonicalName()+"."+name, "")
	}
	return b
}

// AddPackageImport adds explicit imports of top-level members of packageName
func (b *FileSpecBuilder) AddPackageImport(packageName string, names ...string) *FileSpecBuilder {
	if len(names) == 0 {
		b.setErr(specError("no names to import from package %s", packageName))
		return b
	}
	for _, name := range names {
		qualifiedName := name
		if packageName != "" {
			qualifiedName = packageName + "." + name
		}
		b.addImport(qualifiedName, "")
	}
	return b
}

// AddAliasedImport imports className under alias
func (b *FileSpecBuilder) AddAliasedImport(className *ClassName, alias string) *FileSpecBuilder {
	return b.addImport(className.CanonicalName(), alias)
}

// AddAliasedMemberImport imports member under alias
func (b *FileSpecBuilder) AddAliasedMemberImport(member *MemberName, alias string) *FileSpecBuilder {
	return b.addImport(member.CanonicalName(), alias)
}

func (b *FileSpecBuilder) addImport(qualifiedName, alias string) *FileSpecBuilder {
	if importSimpleName(qualifiedName) == "*" {
		b.setErr(specError("wildcard imports are not allowed: %s", qualifiedName))
		return b
	}
	if alias != "" {
		if _, err := escapeIfNecessary(alias); err != nil {
			b.setErr(err)
			return b
		}
	}
	b.memberImports[qualifiedName] = Import{QualifiedName: qualifiedName, Alias: alias}
	return b
}

// Indent sets the indentation unit
func (b *FileSpecBuilder) Indent(indent string) *FileSpecBuilder {
	b.indent = indent
	return b
}

// ColumnLimit sets the line width the wrapper aims for
func (b *FileSpecBuilder) ColumnLimit(columnLimit int) *FileSpecBuilder {
	b.columnLimit = columnLimit
	return b
}

// Build returns the file or the first recorded error
func (b *FileSpecBuilder) Build() (*FileSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == "" || strings.ContainsAny(b.name, `/\`) {
		return nil, specError("invalid file name: %q", b.name)
	}
	if b.columnLimit <= 0 {
		return nil, specError("column limit must be positive: %d", b.columnLimit)
	}
	comment, err := b.comment.Build()
	if err != nil {
		return nil, err
	}
	memberImports := make(map[string]Import, len(b.memberImports))
	for name, anImport := range b.memberImports {
		memberImports[name] = anImport
	}
	return &FileSpec{
		packageName:   b.packageName,
		name:          b.name,
		comment:       comment,
		annotations:   append([]*AnnotationSpec{}, b.annotations...),
		members:       append([]interface{}{}, b.members...),
		memberImports: memberImports,
		indent:        b.indent,
		columnLimit:   b.columnLimit,
	}, nil
}
