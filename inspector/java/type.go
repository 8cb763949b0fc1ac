package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/kotlinpoet/inspector/graph"
)

// isTypeNode returns true for nodes of the _type grammar rule
func isTypeNode(node *sitter.Node) bool {
	switch node.Type() {
	case "void_type", "integral_type", "floating_point_type", "boolean_type",
		"type_identifier", "scoped_type_identifier", "generic_type", "array_type", "annotated_type":
		return true
	}
	return false
}

// parseTypeRef converts a Java type node to a type reference
func (p *declarationParser) parseTypeRef(node *sitter.Node) *graph.TypeRef {
	ref := &graph.TypeRef{Name: node.Content(p.source)}
	switch node.Type() {
	case "void_type", "integral_type", "floating_point_type", "boolean_type":
		ref.Primitive = true
		ref.Name = strings.TrimSpace(ref.Name)
	case "type_identifier":
		ref.Package = p.imports[ref.Name]
	case "scoped_type_identifier":
		ref.Name = stripTypeArguments(ref.Name)
		p.resolveScoped(ref)
	case "generic_type":
		for j := 0; j < int(node.NamedChildCount()); j++ {
			child := node.NamedChild(j)
			switch child.Type() {
			case "type_identifier":
				ref.Name = child.Content(p.source)
				ref.Package = p.imports[ref.Name]
			case "scoped_type_identifier":
				ref.Name = stripTypeArguments(child.Content(p.source))
				p.resolveScoped(ref)
			case "type_arguments":
				ref.Args = p.parseTypeArguments(child)
			}
		}
	case "array_type":
		if element := node.ChildByFieldName("element"); element != nil {
			ref = p.parseTypeRef(element)
		}
		if dimensions := node.ChildByFieldName("dimensions"); dimensions != nil {
			ref.Dimensions += countDimensions(dimensions.Content(p.source))
		}
	case "annotated_type":
		var annotations graph.Annotations
		for j := 0; j < int(node.NamedChildCount()); j++ {
			child := node.NamedChild(j)
			switch child.Type() {
			case "marker_annotation", "annotation":
				annotations = append(annotations, p.parseAnnotation(child))
			default:
				if isTypeNode(child) {
					ref = p.parseTypeRef(child)
				}
			}
		}
		applyNullability(ref, annotations)
	case "wildcard":
		return p.parseWildcard(node)
	}
	return ref
}

func (p *declarationParser) resolveScoped(ref *graph.TypeRef) {
	first := ref.Name
	if idx := strings.Index(first, "."); idx != -1 {
		first = first[:idx]
	}
	ref.Package = p.imports[first]
}

func (p *declarationParser) parseTypeArguments(node *sitter.Node) []*graph.TypeRef {
	var args []*graph.TypeRef
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() == "wildcard" || isTypeNode(child) {
			args = append(args, p.parseTypeRef(child))
		}
	}
	return args
}

// parseWildcard handles ?, ? extends T and ? super T; super is a named node, extends is not
func (p *declarationParser) parseWildcard(node *sitter.Node) *graph.TypeRef {
	ref := &graph.TypeRef{Wildcard: graph.WildcardUnbounded}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		switch child.Type() {
		case "extends":
			ref.Wildcard = graph.WildcardExtends
		case "super":
			ref.Wildcard = graph.WildcardSuper
		default:
			if isTypeNode(child) {
				ref.Bound = p.parseTypeRef(child)
			}
		}
	}
	if ref.Bound == nil {
		ref.Wildcard = graph.WildcardUnbounded
	}
	return ref
}

// parseTypeList extracts types from superclass, super_interfaces or extends_interfaces nodes
func (p *declarationParser) parseTypeList(node *sitter.Node) []*graph.TypeRef {
	var result []*graph.TypeRef
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() == "type_list" {
			result = append(result, p.parseTypeList(child)...)
			continue
		}
		if isTypeNode(child) {
			result = append(result, p.parseTypeRef(child))
		}
	}
	return result
}

// parseTypeParameters extracts generic type parameters with their bounds
func (p *declarationParser) parseTypeParameters(node *sitter.Node) []*graph.TypeParam {
	var result []*graph.TypeParam
	for j := 0; j < int(node.NamedChildCount()); j++ {
		paramNode := node.NamedChild(j)
		if paramNode.Type() != "type_parameter" {
			continue
		}
		param := &graph.TypeParam{}
		for k := 0; k < int(paramNode.NamedChildCount()); k++ {
			child := paramNode.NamedChild(k)
			switch child.Type() {
			case "type_identifier", "identifier":
				param.Name = child.Content(p.source)
			case "type_bound":
				param.Bounds = p.parseTypeList(child)
			}
		}
		if param.Name != "" {
			result = append(result, param)
		}
	}
	return result
}

var (
	nullableAnnotations = map[string]bool{"Nullable": true, "CheckForNull": true}
	nonNullAnnotations  = map[string]bool{"NonNull": true, "NotNull": true, "Nonnull": true}
)

// applyNullability marks ref with nullability declared by annotations
func applyNullability(ref *graph.TypeRef, annotations graph.Annotations) {
	for _, annotation := range annotations {
		name := annotation.SimpleName()
		switch {
		case nullableAnnotations[name]:
			ref.Nullable = true
		case nonNullAnnotations[name]:
			ref.NonNull = true
		}
	}
}

func stripTypeArguments(name string) string {
	builder := strings.Builder{}
	depth := 0
	for _, r := range name {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0 && r != ' ':
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
