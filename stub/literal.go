package stub

import (
	"regexp"
	"strings"

	"github.com/viant/kotlinpoet/inspector/graph"
)

var (
	integerLiteral = regexp.MustCompile(`^-?(0[xX][0-9a-fA-F_]+|0[bB][01_]+|0|[1-9][0-9_]*)$`)
	longLiteral    = regexp.MustCompile(`^-?(0[xX][0-9a-fA-F_]+|0[bB][01_]+|0|[1-9][0-9_]*)[lL]?$`)
	decimalLiteral = regexp.MustCompile(`^-?([0-9][0-9_]*)(\.[0-9_]+)?([eE][+-]?[0-9]+)?$`)
	stringLiteral  = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"$`)
	charLiteral    = regexp.MustCompile(`^'(?:[^'\\]|\\.|\\u[0-9a-fA-F]{4})'$`)
	octalEscape    = regexp.MustCompile(`\\[0-7]`)
	classLiteral   = regexp.MustCompile(`\b([A-Za-z_][\w.]*)\.class\b`)
)

var zeroValues = map[string]string{
	"boolean": "false",
	"byte":    "0",
	"short":   "0",
	"int":     "0",
	"long":    "0L",
	"char":    "'\\u0000'",
	"float":   "0.0f",
	"double":  "0.0",
}

// constLiteral converts a Java compile time constant initializer to a Kotlin literal of the same type
func constLiteral(ref *graph.TypeRef, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || ref == nil || ref.Dimensions > 0 || ref.Variadic {
		return "", false
	}
	if !ref.Primitive {
		if ref.Name != "String" && ref.QualifiedName() != "java.lang.String" {
			return "", false
		}
		if !stringLiteral.MatchString(value) || octalEscape.MatchString(value) {
			return "", false
		}
		return strings.ReplaceAll(value, "$", `\$`), true
	}
	switch ref.Name {
	case "boolean":
		return value, value == "true" || value == "false"
	case "byte", "short", "int":
		return value, integerLiteral.MatchString(value)
	case "long":
		if !longLiteral.MatchString(value) {
			return "", false
		}
		return strings.TrimRight(value, "lL") + "L", true
	case "float":
		value = strings.TrimRight(value, "fF")
		if !decimalLiteral.MatchString(value) {
			return "", false
		}
		return value + "f", true
	case "double":
		value = strings.TrimRight(value, "dD")
		matches := decimalLiteral.FindStringSubmatch(value)
		if matches == nil {
			return "", false
		}
		if matches[2] == "" && matches[3] == "" {
			value += ".0"
		}
		return value, true
	case "char":
		return value, charLiteral.MatchString(value) && !octalEscape.MatchString(value)
	}
	return "", false
}

// zeroValue returns the Kotlin default of a primitive type
func zeroValue(ref *graph.TypeRef) (string, bool) {
	if !ref.Primitive || ref.Dimensions > 0 {
		return "", false
	}
	value, ok := zeroValues[ref.Name]
	return value, ok
}

// annotationDefault converts an annotation element default to a Kotlin expression
func annotationDefault(ref *graph.TypeRef, value string) string {
	value = strings.TrimSpace(value)
	value = classLiteral.ReplaceAllStringFunc(value, func(match string) string {
		name := strings.TrimSuffix(match, ".class")
		if name == "Object" || name == "java.lang.Object" {
			name = "Any"
		}
		return name + "::class"
	})
	if strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
		return "[" + strings.TrimSpace(value[1:len(value)-1]) + "]"
	}
	if ref.Dimensions > 0 {
		return "[" + value + "]"
	}
	if literal, ok := constLiteral(ref, value); ok {
		return literal
	}
	return value
}
