package repository

import "golang.org/x/mod/modfile"

// Repository represents a version controlled or build tool managed tree
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootURL      string          // URL of the project root directory
	Type         string          // maven, gradle, go, git or unknown
	Name         string          // Name of the project (extracted from build files)
	RelativePath string          // Path from project root to the inspected location
	Modules      []string        // Module directories relative to the root
	SourceRoots  []string        // Java source root URLs
	GoModule     *modfile.Module // Go module of mixed repositories
}
