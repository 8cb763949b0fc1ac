package graph

// Config controls which declarations an inspector keeps
type Config struct {
	IncludeNonPublic bool // Keep package-private and private declarations
	SkipTests        bool // Skip *Test.java style files when walking
}
