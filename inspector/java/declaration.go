package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/kotlinpoet/inspector/graph"
)

type declarationParser struct {
	source  []byte
	imports map[string]string
	config  *graph.Config
}

// parsePackageDeclaration extracts the package name from a Java source file
func parsePackageDeclaration(node *sitter.Node, source []byte) string {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "identifier", "scoped_identifier":
			return child.Content(source)
		}
	}
	return ""
}

// parseImportDeclaration extracts a single import declaration
func parseImportDeclaration(node *sitter.Node, source []byte) *graph.Import {
	anImport := &graph.Import{}
	var name string
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		switch child.Type() {
		case "static":
			anImport.Static = true
		case "asterisk":
			anImport.Wildcard = true
		case "identifier", "scoped_identifier":
			name = child.Content(source)
		}
	}
	if name == "" {
		return nil
	}
	if anImport.Wildcard {
		anImport.Package = name
		anImport.Name = "*"
		return anImport
	}
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return nil
	}
	anImport.Package = name[:idx]
	anImport.Name = name[idx+1:]
	return anImport
}

// parseTypeDeclaration extracts a class, interface, enum or annotation type; enclosing is empty for top level types
func (p *declarationParser) parseTypeDeclaration(node *sitter.Node, enclosing graph.Kind) *graph.Type {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	typ := &graph.Type{Name: nameNode.Content(p.source)}
	switch node.Type() {
	case "class_declaration":
		typ.Kind = graph.KindClass
	case "interface_declaration":
		typ.Kind = graph.KindInterface
	case "enum_declaration":
		typ.Kind = graph.KindEnum
	case "annotation_type_declaration":
		typ.Kind = graph.KindAnnotation
	default:
		return nil
	}
	typ.Modifiers, typ.Annotations = p.parseModifiers(node)
	if enclosing == graph.KindInterface || enclosing == graph.KindAnnotation {
		typ.Modifiers = implicitModifiers(typ.Modifiers, "public", "static")
	} else if enclosing != "" && typ.Kind != graph.KindClass {
		typ.Modifiers = implicitModifiers(typ.Modifiers, "static")
	}
	if !p.isVisible(typ.Modifiers, enclosing) {
		return nil
	}
	typ.Comment = extractDocumentation(node, p.source)

	if paramsNode := node.ChildByFieldName("type_parameters"); paramsNode != nil {
		typ.TypeParams = p.parseTypeParameters(paramsNode)
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "superclass":
			typ.Extends = append(typ.Extends, p.parseTypeList(child)...)
		case "extends_interfaces":
			typ.Extends = append(typ.Extends, p.parseTypeList(child)...)
		case "super_interfaces":
			typ.Implements = append(typ.Implements, p.parseTypeList(child)...)
		}
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return typ
	}
	if typ.Kind == graph.KindEnum {
		p.parseEnumBody(bodyNode, typ)
		return typ
	}
	p.parseBody(bodyNode, typ)
	return typ
}

func (p *declarationParser) parseEnumBody(bodyNode *sitter.Node, typ *graph.Type) {
	for j := 0; j < int(bodyNode.NamedChildCount()); j++ {
		child := bodyNode.NamedChild(j)
		switch child.Type() {
		case "enum_constant":
			if constant := p.parseEnumConstant(child); constant != nil {
				typ.EnumConstants = append(typ.EnumConstants, constant)
			}
		case "enum_body_declarations":
			p.parseBody(child, typ)
		}
	}
}

func (p *declarationParser) parseEnumConstant(node *sitter.Node) *graph.EnumConstant {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	constant := &graph.EnumConstant{
		Name:    nameNode.Content(p.source),
		Comment: extractDocumentation(node, p.source),
		HasBody: node.ChildByFieldName("body") != nil,
	}
	if argsNode := node.ChildByFieldName("arguments"); argsNode != nil {
		constant.Arguments = trimEnclosing(argsNode.Content(p.source), "(", ")")
	}
	return constant
}

// parseBody extracts members of a class, interface, enum or annotation body
func (p *declarationParser) parseBody(bodyNode *sitter.Node, typ *graph.Type) {
	for j := 0; j < int(bodyNode.NamedChildCount()); j++ {
		child := bodyNode.NamedChild(j)
		switch child.Type() {
		case "field_declaration", "constant_declaration":
			for _, field := range p.parseFieldDeclaration(child, typ.Kind) {
				typ.AddField(field)
			}
		case "method_declaration":
			if method := p.parseMethodDeclaration(child, typ.Kind); method != nil {
				typ.AddMethod(method)
			}
		case "annotation_type_element_declaration":
			if method := p.parseAnnotationElement(child); method != nil {
				typ.AddMethod(method)
			}
		case "constructor_declaration":
			if constructor := p.parseConstructorDeclaration(child, typ); constructor != nil {
				typ.Constructors = append(typ.Constructors, constructor)
			}
		case "class_declaration", "interface_declaration", "enum_declaration", "annotation_type_declaration":
			if nested := p.parseTypeDeclaration(child, typ.Kind); nested != nil {
				typ.Types = append(typ.Types, nested)
			}
		}
	}
}

// parseFieldDeclaration extracts every declarator of a field declaration
func (p *declarationParser) parseFieldDeclaration(node *sitter.Node, kind graph.Kind) []*graph.Field {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	modifiers, annotations := p.parseModifiers(node)
	if kind == graph.KindInterface || kind == graph.KindAnnotation {
		modifiers = implicitModifiers(modifiers, "public", "static", "final")
	}
	if !p.isVisible(modifiers, kind) {
		return nil
	}
	comment := extractDocumentation(node, p.source)
	var fields []*graph.Field
	for j := 0; j < int(node.NamedChildCount()); j++ {
		declarator := node.NamedChild(j)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		fieldType := p.parseTypeRef(typeNode)
		if dimensions := declarator.ChildByFieldName("dimensions"); dimensions != nil {
			fieldType.Dimensions += countDimensions(dimensions.Content(p.source))
		}
		applyNullability(fieldType, annotations)
		field := &graph.Field{
			Name:        nameNode.Content(p.source),
			Type:        fieldType,
			Modifiers:   modifiers,
			Comment:     comment,
			Annotations: annotations,
		}
		if valueNode := declarator.ChildByFieldName("value"); valueNode != nil {
			field.Value = valueNode.Content(p.source)
		}
		fields = append(fields, field)
	}
	return fields
}

// parseMethodDeclaration extracts method signature, modifiers and documentation
func (p *declarationParser) parseMethodDeclaration(node *sitter.Node, kind graph.Kind) *graph.Method {
	nameNode := node.ChildByFieldName("name")
	typeNode := node.ChildByFieldName("type")
	if nameNode == nil || typeNode == nil {
		return nil
	}
	modifiers, annotations := p.parseModifiers(node)
	hasBody := node.ChildByFieldName("body") != nil
	if kind == graph.KindInterface && !modifiers.Has("private") {
		modifiers = implicitModifiers(modifiers, "public")
		if !hasBody && !modifiers.Has("static") {
			modifiers = implicitModifiers(modifiers, "abstract")
		}
	}
	if !p.isVisible(modifiers, kind) {
		return nil
	}
	method := &graph.Method{
		Name:        nameNode.Content(p.source),
		ReturnType:  p.parseTypeRef(typeNode),
		Modifiers:   modifiers,
		Annotations: annotations,
		Comment:     extractDocumentation(node, p.source),
		HasBody:     hasBody,
	}
	if dimensions := node.ChildByFieldName("dimensions"); dimensions != nil {
		method.ReturnType.Dimensions += countDimensions(dimensions.Content(p.source))
	}
	applyNullability(method.ReturnType, annotations)
	if paramsNode := node.ChildByFieldName("type_parameters"); paramsNode != nil {
		method.TypeParams = p.parseTypeParameters(paramsNode)
	}
	method.Parameters = p.parseFormalParameters(node.ChildByFieldName("parameters"))
	method.Throws = p.parseThrows(node)
	return method
}

// parseAnnotationElement extracts an annotation type element as a method
func (p *declarationParser) parseAnnotationElement(node *sitter.Node) *graph.Method {
	nameNode := node.ChildByFieldName("name")
	typeNode := node.ChildByFieldName("type")
	if nameNode == nil || typeNode == nil {
		return nil
	}
	modifiers, annotations := p.parseModifiers(node)
	method := &graph.Method{
		Name:        nameNode.Content(p.source),
		ReturnType:  p.parseTypeRef(typeNode),
		Modifiers:   implicitModifiers(modifiers, "public", "abstract"),
		Annotations: annotations,
		Comment:     extractDocumentation(node, p.source),
	}
	if dimensions := node.ChildByFieldName("dimensions"); dimensions != nil {
		method.ReturnType.Dimensions += countDimensions(dimensions.Content(p.source))
	}
	if valueNode := node.ChildByFieldName("value"); valueNode != nil {
		method.Default = valueNode.Content(p.source)
	}
	return method
}

// parseConstructorDeclaration extracts constructor parameters and modifiers
func (p *declarationParser) parseConstructorDeclaration(node *sitter.Node, typ *graph.Type) *graph.Method {
	modifiers, annotations := p.parseModifiers(node)
	if typ.Kind != graph.KindEnum && !p.isVisible(modifiers, typ.Kind) {
		return nil
	}
	constructor := &graph.Method{
		Name:        typ.Name,
		Modifiers:   modifiers,
		Annotations: annotations,
		Comment:     extractDocumentation(node, p.source),
		HasBody:     true,
	}
	if paramsNode := node.ChildByFieldName("type_parameters"); paramsNode != nil {
		constructor.TypeParams = p.parseTypeParameters(paramsNode)
	}
	constructor.Parameters = p.parseFormalParameters(node.ChildByFieldName("parameters"))
	constructor.Throws = p.parseThrows(node)
	return constructor
}

func (p *declarationParser) parseFormalParameters(node *sitter.Node) []*graph.Parameter {
	if node == nil {
		return nil
	}
	var parameters []*graph.Parameter
	for j := 0; j < int(node.NamedChildCount()); j++ {
		paramNode := node.NamedChild(j)
		switch paramNode.Type() {
		case "formal_parameter":
			typeNode := paramNode.ChildByFieldName("type")
			nameNode := paramNode.ChildByFieldName("name")
			if typeNode == nil || nameNode == nil {
				continue
			}
			modifiers, annotations := p.parseModifiers(paramNode)
			paramType := p.parseTypeRef(typeNode)
			if dimensions := paramNode.ChildByFieldName("dimensions"); dimensions != nil {
				paramType.Dimensions += countDimensions(dimensions.Content(p.source))
			}
			applyNullability(paramType, annotations)
			parameters = append(parameters, &graph.Parameter{
				Name:        nameNode.Content(p.source),
				Type:        paramType,
				Modifiers:   modifiers,
				Annotations: annotations,
			})
		case "spread_parameter":
			if parameter := p.parseSpreadParameter(paramNode); parameter != nil {
				parameters = append(parameters, parameter)
			}
		}
	}
	return parameters
}

// parseSpreadParameter extracts a varargs parameter
func (p *declarationParser) parseSpreadParameter(node *sitter.Node) *graph.Parameter {
	modifiers, annotations := p.parseModifiers(node)
	parameter := &graph.Parameter{Modifiers: modifiers, Annotations: annotations}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "modifiers":
		case "variable_declarator":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				parameter.Name = nameNode.Content(p.source)
			}
		case "identifier":
			parameter.Name = child.Content(p.source)
		default:
			if parameter.Type == nil && isTypeNode(child) {
				parameter.Type = p.parseTypeRef(child)
			}
		}
	}
	if parameter.Type == nil || parameter.Name == "" {
		return nil
	}
	parameter.Type.Variadic = true
	applyNullability(parameter.Type, annotations)
	return parameter
}

func (p *declarationParser) parseThrows(node *sitter.Node) []*graph.TypeRef {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() != "throws" {
			continue
		}
		var result []*graph.TypeRef
		for k := 0; k < int(child.NamedChildCount()); k++ {
			if typeNode := child.NamedChild(k); isTypeNode(typeNode) {
				result = append(result, p.parseTypeRef(typeNode))
			}
		}
		return result
	}
	return nil
}

// parseModifiers extracts modifier keywords and annotations; keywords are anonymous nodes
func (p *declarationParser) parseModifiers(node *sitter.Node) (graph.Modifiers, graph.Annotations) {
	var modifiersNode *sitter.Node
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child.Type() == "modifiers" {
			modifiersNode = child
			break
		}
	}
	if modifiersNode == nil {
		return nil, nil
	}
	var modifiers graph.Modifiers
	var annotations graph.Annotations
	for j := 0; j < int(modifiersNode.ChildCount()); j++ {
		child := modifiersNode.Child(j)
		switch child.Type() {
		case "marker_annotation", "annotation":
			annotations = append(annotations, p.parseAnnotation(child))
		default:
			if !child.IsNamed() {
				modifiers = append(modifiers, child.Type())
			}
		}
	}
	return modifiers, annotations
}

func (p *declarationParser) parseAnnotation(node *sitter.Node) *graph.Annotation {
	annotation := &graph.Annotation{}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		annotation.Name = nameNode.Content(p.source)
	}
	if argsNode := node.ChildByFieldName("arguments"); argsNode != nil {
		annotation.Arguments = trimEnclosing(argsNode.Content(p.source), "(", ")")
	}
	if pkg, ok := p.imports[annotation.Name]; ok {
		annotation.Package = pkg
	}
	return annotation
}

// isVisible returns true if a member with modifiers should be kept
func (p *declarationParser) isVisible(modifiers graph.Modifiers, enclosing graph.Kind) bool {
	if p.config.IncludeNonPublic {
		return true
	}
	switch modifiers.Visibility() {
	case "public", "protected":
		return true
	case "private":
		return false
	}
	return enclosing == graph.KindInterface || enclosing == graph.KindAnnotation
}

func implicitModifiers(modifiers graph.Modifiers, keywords ...string) graph.Modifiers {
	result := modifiers
	for _, keyword := range keywords {
		if !result.Has(keyword) {
			result = append(result, keyword)
		}
	}
	return result
}

func trimEnclosing(text, prefix, suffix string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, prefix)
	text = strings.TrimSuffix(text, suffix)
	return strings.TrimSpace(text)
}

func countDimensions(text string) int {
	return strings.Count(text, "[")
}
