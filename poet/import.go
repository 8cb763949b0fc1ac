package poet

import (
	"sort"
	"strings"
)

// Import is an explicit import directive, optionally aliased
type Import struct {
	QualifiedName string
	Alias         string
}

func (i Import) String() string {
	name, err := escapeSegmentsIfNecessary(i.QualifiedName)
	if err != nil {
		name = i.QualifiedName
	}
	if i.Alias == "" {
		return name
	}
	alias, err := escapeIfNecessary(i.Alias)
	if err != nil {
		alias = i.Alias
	}
	return name + " as " + alias
}

// sortedImports renders plain imports sorted first, then aliased imports sorted
func sortedImports(plain []string, explicit map[string]Import) []string {
	unique := map[string]bool{}
	var result, aliased []string
	for _, name := range plain {
		if !unique[name] {
			unique[name] = true
			result = append(result, name)
		}
	}
	for _, anImport := range explicit {
		rendered := anImport.String()
		if anImport.Alias != "" {
			aliased = append(aliased, rendered)
			continue
		}
		if !unique[rendered] {
			unique[rendered] = true
			result = append(result, rendered)
		}
	}
	sort.Strings(result)
	sort.Strings(aliased)
	return append(result, aliased...)
}

func importSimpleName(qualifiedName string) string {
	if index := strings.LastIndexByte(qualifiedName, '.'); index != -1 {
		return qualifiedName[index+1:]
	}
	return qualifiedName
}
