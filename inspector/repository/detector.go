package repository

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"golang.org/x/mod/modfile"
)

const (
	TypeMaven   = "maven"
	TypeGradle  = "gradle"
	TypeGo      = "go"
	TypeGit     = "git"
	TypeUnknown = "unknown"

	javaSourceRoot = "src/main/java"
)

var (
	artifactIDRegex  = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	parentBlockRegex = regexp.MustCompile(`(?s)<parent>.*?</parent>`)
	mavenModuleRegex = regexp.MustCompile(`<module>([^<]+)</module>`)
	gradleNameRegex  = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)
	gradleIncludeRe  = regexp.MustCompile(`(?m)^\s*include\s*\(?([^)\n]+)`)
	quotedRegex      = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

// Detector identifies project root folders and their Java source roots
type Detector struct {
	fs      afs.Service
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"pom.xml",             // Maven projects
			"settings.gradle",     // Gradle multi module builds
			"settings.gradle.kts", // Gradle Kotlin DSL
			"build.gradle",        // Gradle projects
			"build.gradle.kts",    // Gradle Kotlin DSL
			"go.mod",              // Go projects
			".git",                // Generic VCS marker
		},
	}
}

// DetectProject identifies the project enclosing location and returns project info
func (d *Detector) DetectProject(ctx context.Context, location string) (*Project, error) {
	location, err := normalize(location)
	if err != nil {
		return nil, err
	}
	exists, err := d.fs.Exists(ctx, location)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("location does not exist: %s", location)
	}
	rootURL, marker := d.findProjectRoot(ctx, location)
	project := &Project{Type: TypeUnknown, RootURL: location}
	if rootURL != "" {
		project.RootURL = rootURL
		project.Type = determineProjectType(marker)
	}
	project.RelativePath = strings.TrimPrefix(strings.TrimPrefix(location, project.RootURL), "/")
	if err := d.describe(ctx, project, marker); err != nil {
		return nil, err
	}
	return project, nil
}

// DetectRepository identifies the repository containing location
func (d *Detector) DetectRepository(ctx context.Context, location string) (*Repository, error) {
	project, err := d.DetectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(ctx, project.RootURL); gitRoot != "" {
		return &Repository{
			Kind:   TypeGit,
			Root:   gitRoot,
			Origin: d.extractGitOrigin(ctx, gitRoot),
			Info:   project,
		}, nil
	}
	return &Repository{Kind: project.Type, Root: project.RootURL, Info: project}, nil
}

// SourceRoots returns Java source roots when location is a project root, location itself otherwise
func (d *Detector) SourceRoots(ctx context.Context, location string) ([]string, error) {
	location, err := normalize(location)
	if err != nil {
		return nil, err
	}
	marker := d.markerAt(ctx, location)
	if marker == "" || marker == ".git" {
		if ok, _ := d.fs.Exists(ctx, url.Join(location, javaSourceRoot)); ok {
			return []string{url.Join(location, javaSourceRoot)}, nil
		}
		return []string{location}, nil
	}
	project, err := d.DetectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(project.SourceRoots) == 0 {
		return []string{location}, nil
	}
	return project.SourceRoots, nil
}

func (d *Detector) describe(ctx context.Context, project *Project, marker string) error {
	switch project.Type {
	case TypeMaven:
		content := d.download(ctx, url.Join(project.RootURL, marker))
		project.Name = extractMavenProjectName(content)
		project.Modules = extractMavenModules(content)
	case TypeGradle:
		settings := d.download(ctx, url.Join(project.RootURL, "settings.gradle"))
		if len(settings) == 0 {
			settings = d.download(ctx, url.Join(project.RootURL, "settings.gradle.kts"))
		}
		project.Name = extractGradleProjectName(settings)
		project.Modules = extractGradleModules(settings)
	case TypeGo:
		goModURL := url.Join(project.RootURL, "go.mod")
		content := d.download(ctx, goModURL)
		mod, err := modfile.Parse(goModURL, content, nil)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", goModURL, err)
		}
		project.GoModule = mod.Module
		if mod.Module != nil {
			project.Name = mod.Module.Mod.Path
		}
	case TypeGit:
		project.Name = extractGitProjectName(d.extractGitOrigin(ctx, project.RootURL))
	}
	if project.Name == "" {
		project.Name = path.Base(project.RootURL)
	}
	dirs := append([]string{""}, project.Modules...)
	for _, dir := range dirs {
		candidate := url.Join(project.RootURL, dir, javaSourceRoot)
		if dir == "" {
			candidate = url.Join(project.RootURL, javaSourceRoot)
		}
		if ok, _ := d.fs.Exists(ctx, candidate); ok {
			project.SourceRoots = append(project.SourceRoots, candidate)
		}
	}
	if len(project.SourceRoots) == 0 {
		if ok, _ := HasFileWithSuffixes(ctx, d.fs, project.RootURL, []string{".java"}, nil); ok {
			project.SourceRoots = []string{project.RootURL}
		}
	}
	return nil
}

// findProjectRoot searches up from location for project markers
func (d *Detector) findProjectRoot(ctx context.Context, location string) (string, string) {
	dir := location
	for {
		if marker := d.markerAt(ctx, dir); marker != "" {
			return dir, marker
		}
		parent, ok := parentURL(dir)
		if !ok {
			return "", ""
		}
		dir = parent
	}
}

func (d *Detector) markerAt(ctx context.Context, dir string) string {
	for _, marker := range d.markers {
		if ok, _ := d.fs.Exists(ctx, url.Join(dir, marker)); ok {
			return marker
		}
	}
	return ""
}

// findGitRoot finds the root of the git repository containing dir
func (d *Detector) findGitRoot(ctx context.Context, dir string) string {
	for {
		if ok, _ := d.fs.Exists(ctx, url.Join(dir, ".git")); ok {
			return dir
		}
		parent, ok := parentURL(dir)
		if !ok {
			return ""
		}
		dir = parent
	}
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(ctx context.Context, gitRoot string) string {
	content := d.download(ctx, url.Join(gitRoot, ".git", "config"))
	scanner := bufio.NewScanner(bytes.NewReader(content))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, `[remote "origin"]`) {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

func (d *Detector) download(ctx context.Context, URL string) []byte {
	content, err := d.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil
	}
	return content
}

func extractMavenProjectName(pom []byte) string {
	pom = parentBlockRegex.ReplaceAll(pom, nil)
	matches := artifactIDRegex.FindSubmatch(pom)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(string(matches[1]))
}

func extractMavenModules(pom []byte) []string {
	var modules []string
	for _, matches := range mavenModuleRegex.FindAllSubmatch(pom, -1) {
		modules = append(modules, strings.TrimSpace(string(matches[1])))
	}
	return modules
}

func extractGradleProjectName(settings []byte) string {
	matches := gradleNameRegex.FindSubmatch(settings)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

// extractGradleModules maps include ':core:api' to core/api
func extractGradleModules(settings []byte) []string {
	var modules []string
	for _, include := range gradleIncludeRe.FindAllSubmatch(settings, -1) {
		for _, quoted := range quotedRegex.FindAllSubmatch(include[1], -1) {
			module := strings.Trim(string(quoted[1]), ":")
			modules = append(modules, strings.ReplaceAll(module, ":", "/"))
		}
	}
	return modules
}

func extractGitProjectName(origin string) string {
	origin = strings.TrimSuffix(origin, ".git")
	if origin == "" {
		return ""
	}
	parts := strings.Split(origin, "/")
	return parts[len(parts)-1]
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "pom.xml":
		return TypeMaven
	case "settings.gradle", "settings.gradle.kts", "build.gradle", "build.gradle.kts":
		return TypeGradle
	case "go.mod":
		return TypeGo
	case ".git":
		return TypeGit
	default:
		return TypeUnknown
	}
}

func normalize(location string) (string, error) {
	location = strings.TrimRight(location, "/")
	if strings.Contains(location, "://") {
		return location, nil
	}
	return filepath.Abs(location)
}

// parentURL returns the parent directory URL, false at the root
func parentURL(URL string) (string, bool) {
	prefix, rest := "", URL
	if idx := strings.Index(URL, "://"); idx != -1 {
		rest = URL[idx+3:]
		slash := strings.Index(rest, "/")
		if slash == -1 {
			return "", false
		}
		prefix = URL[:idx+3] + rest[:slash]
		rest = rest[slash:]
	}
	if rest == "" || rest == "/" {
		return "", false
	}
	parent := path.Dir(rest)
	if parent == rest {
		return "", false
	}
	return prefix + parent, true
}
