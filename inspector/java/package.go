package java

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/kotlinpoet/inspector/graph"
)

var (
	testSuffixes = []string{"Test.java", "Tests.java", "IT.java", "ITCase.java"}
	// buildDirs holds typical build output folders
	buildDirs = map[string]bool{"target": true, "build": true, "out": true}
)

// SourceURLs walks baseURL and returns sorted URLs of Java sources
func (i *Inspector) SourceURLs(ctx context.Context, baseURL string) ([]string, error) {
	var result []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !strings.HasPrefix(info.Name(), ".") && !buildDirs[info.Name()], nil
		}
		if !i.isSource(info.Name()) {
			return true, nil
		}
		result = append(result, url.Join(baseURL, parent, info.Name()))
		return true, nil
	}
	if err := i.fs.Walk(ctx, baseURL, visitor); err != nil {
		return nil, fmt.Errorf("error walking %s: %w", baseURL, err)
	}
	sort.Strings(result)
	return result, nil
}

// InspectPackage inspects Java sources directly under packageURL
func (i *Inspector) InspectPackage(ctx context.Context, packageURL string) ([]*graph.File, error) {
	objects, err := i.fs.List(ctx, packageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", packageURL, err)
	}
	var names []string
	for _, object := range objects {
		if object.IsDir() || !i.isSource(object.Name()) {
			continue
		}
		names = append(names, object.Name())
	}
	sort.Strings(names)
	var files []*graph.File
	for _, name := range names {
		file, err := i.InspectFile(ctx, url.Join(packageURL, name))
		if err != nil {
			return nil, fmt.Errorf("error processing %s: %w", name, err)
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Java files found in package: %s", packageURL)
	}
	return files, nil
}

func (i *Inspector) isSource(name string) bool {
	if !strings.HasSuffix(name, ".java") || name == "package-info.java" || name == "module-info.java" {
		return false
	}
	if i.config.SkipTests {
		for _, suffix := range testSuffixes {
			if strings.HasSuffix(name, suffix) {
				return false
			}
		}
	}
	return true
}
