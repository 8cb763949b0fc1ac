package graph

import "strings"

// File represents a Java compilation unit with its imports and types
type File struct {
	Name    string    // File name
	Path    string    // File path or URL
	Package string    // Package name
	Imports []*Import // Imports used in this file
	Types   []*Type   // Top level types declared in this file

	typeMap        map[string]int
	importMap      map[string]int
	indexedImports int
}

// Import represents an import declaration
type Import struct {
	Name     string // Imported simple name, * for on demand imports
	Package  string // Enclosing package or type
	Static   bool
	Wildcard bool
}

// QualifiedName returns the imported name
func (i *Import) QualifiedName() string {
	return i.Package + "." + i.Name
}

// LookupType retrieves a top level type by name; dotted names navigate nested types
func (f *File) LookupType(name string) *Type {
	if len(f.typeMap) != len(f.Types) {
		f.IndexTypes()
	}
	segments := strings.Split(name, ".")
	idx, ok := f.typeMap[segments[0]]
	if !ok {
		return nil
	}
	result := f.Types[idx]
	for _, segment := range segments[1:] {
		if result = result.LookupType(segment); result == nil {
			return nil
		}
	}
	return result
}

// LookupImport retrieves a single type import by imported simple name
func (f *File) LookupImport(name string) *Import {
	if f.importMap == nil || f.indexedImports != len(f.Imports) {
		f.IndexImports()
	}
	if idx, ok := f.importMap[name]; ok {
		return f.Imports[idx]
	}
	return nil
}

// WildcardImports returns non static on demand imports
func (f *File) WildcardImports() []*Import {
	var result []*Import
	for _, anImport := range f.Imports {
		if anImport.Wildcard && !anImport.Static {
			result = append(result, anImport)
		}
	}
	return result
}

// IndexTypes builds the type lookup index
func (f *File) IndexTypes() {
	f.typeMap = make(map[string]int)
	for i, typ := range f.Types {
		if typ == nil {
			continue
		}
		if _, ok := f.typeMap[typ.Name]; !ok {
			f.typeMap[typ.Name] = i
		}
	}
}

// IndexImports builds the import lookup index
func (f *File) IndexImports() {
	f.importMap = make(map[string]int)
	for i, anImport := range f.Imports {
		if anImport.Wildcard || anImport.Static {
			continue
		}
		f.importMap[anImport.Name] = i
	}
	f.indexedImports = len(f.Imports)
}

// TypeNames returns qualified names of all types declared in the file, nested ones included
func (f *File) TypeNames() []string {
	var result []string
	var visit func(prefix string, types []*Type)
	visit = func(prefix string, types []*Type) {
		for _, typ := range types {
			name := prefix + typ.Name
			result = append(result, name)
			visit(name+".", typ.Types)
		}
	}
	visit("", f.Types)
	return result
}

// Content reconstructs the content of a file with the supplied emitter
func (f *File) Content(emitter Emitter) ([]byte, error) {
	return emitter.Emit(f)
}
