package java

import (
	"context"
	"fmt"
	"path"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/viant/afs"
	"github.com/viant/kotlinpoet/inspector/graph"
)

// Inspector provides functionality to inspect Java code and extract declarations
type Inspector struct {
	config *graph.Config
	fs     afs.Service
}

// NewInspector creates a new Java Inspector with the provided configuration
func NewInspector(config *graph.Config) *Inspector {
	if config == nil {
		config = &graph.Config{}
	}
	return &Inspector{
		config: config,
		fs:     afs.New(),
	}
}

// InspectSource parses Java source code from a byte slice and extracts declarations
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	return i.inspect(context.Background(), src, "source.java")
}

// InspectFile downloads and parses a Java source file
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.inspect(ctx, src, URL)
}

func (i *Inspector) inspect(ctx context.Context, src []byte, filename string) (*graph.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	defer tree.Close()
	root := tree.RootNode()
	if root.HasError() {
		if node := firstError(root); node != nil {
			point := node.StartPoint()
			return nil, fmt.Errorf("failed to parse file %s: syntax error at %d:%d", filename, point.Row+1, point.Column+1)
		}
	}
	return i.processJavaFile(root, src, filename), nil
}

// processJavaFile extracts package, imports and types from a compilation unit
func (i *Inspector) processJavaFile(rootNode *sitter.Node, src []byte, filename string) *graph.File {
	aFile := &graph.File{Path: filename, Name: path.Base(filename)}
	var typeNodes []*sitter.Node
	for j := 0; j < int(rootNode.NamedChildCount()); j++ {
		childNode := rootNode.NamedChild(j)
		switch childNode.Type() {
		case "package_declaration":
			aFile.Package = parsePackageDeclaration(childNode, src)
		case "import_declaration":
			if anImport := parseImportDeclaration(childNode, src); anImport != nil {
				aFile.Imports = append(aFile.Imports, anImport)
			}
		case "class_declaration", "interface_declaration", "enum_declaration", "annotation_type_declaration":
			typeNodes = append(typeNodes, childNode)
		}
	}

	parser := &declarationParser{source: src, imports: importMap(aFile.Imports), config: i.config}
	for _, typeNode := range typeNodes {
		if typ := parser.parseTypeDeclaration(typeNode, ""); typ != nil {
			aFile.Types = append(aFile.Types, typ)
		}
	}
	return aFile
}

func importMap(imports []*graph.Import) map[string]string {
	result := make(map[string]string)
	for _, anImport := range imports {
		if anImport.Wildcard || anImport.Static {
			continue
		}
		result[anImport.Name] = anImport.Package
	}
	return result
}

func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}
