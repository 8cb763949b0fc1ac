package poet

import (
	"fmt"
	"strings"
	"unicode"
)

// keywords lists hard Kotlin keywords that must be escaped when used as identifiers
var keywords = map[string]bool{
	"package":   true,
	"as":        true,
	"typealias": true,
	"class":     true,
	"this":      true,
	"super":     true,
	"val":       true,
	"var":       true,
	"fun":       true,
	"for":       true,
	"null":      true,
	"true":      true,
	"false":     true,
	"is":        true,
	"in":        true,
	"throw":     true,
	"return":    true,
	"break":     true,
	"continue":  true,
	"object":    true,
	"if":        true,
	"try":       true,
	"else":      true,
	"while":     true,
	"do":        true,
	"when":      true,
	"interface": true,
	"typeof":    true,
}

const illegalIdentifierCharacters = ".;[]/<>:\\"

// IsKeyword returns true if name is a hard Kotlin keyword
func IsKeyword(name string) bool {
	return keywords[name]
}

// isIdentifier reports whether name is a plain JVM identifier
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !(unicode.IsLetter(r) || r == '_' || r == '$') {
				return false
			}
			continue
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$') {
			return false
		}
	}
	return true
}

func isEscaped(name string) bool {
	return len(name) >= 2 && strings.HasPrefix(name, "`") && strings.HasSuffix(name, "`")
}

// escapeIfNecessary wraps name in backticks when it is a keyword or not a plain identifier
func escapeIfNecessary(name string) (string, error) {
	if isEscaped(name) {
		return name, nil
	}
	if strings.ContainsAny(name, illegalIdentifierCharacters) {
		var illegal []string
		for _, r := range illegalIdentifierCharacters {
			if strings.ContainsRune(name, r) {
				illegal = append(illegal, string(r))
			}
		}
		return "", specError("can't escape identifier %s because it contains illegal characters: %s", name, strings.Join(illegal, ""))
	}
	if keywords[name] || !isIdentifier(name) || strings.Contains(name, "$") {
		return "`" + name + "`", nil
	}
	return name, nil
}

// escapeSegmentsIfNecessary escapes every dot separated segment of a qualified name
func escapeSegmentsIfNecessary(name string) (string, error) {
	if name == "" {
		return name, nil
	}
	segments := strings.Split(name, ".")
	for i, segment := range segments {
		escaped, err := escapeIfNecessary(segment)
		if err != nil {
			return "", err
		}
		segments[i] = escaped
	}
	return strings.Join(segments, "."), nil
}

func characterLiteralWithoutSingleQuotes(r rune) string {
	switch r {
	case '\b':
		return "\\b"
	case '\t':
		return "\\t"
	case '\n':
		return "\\n"
	case '\r':
		return "\\r"
	case '"':
		return "\""
	case '\'':
		return "\\'"
	case '\\':
		return "\\\\"
	}
	if unicode.IsControl(r) {
		return fmt.Sprintf("\\u%04x", r)
	}
	return string(r)
}

// stringLiteralWithQuotes renders value as a Kotlin string literal.
// Multi-line values use a raw string with trimMargin unless constantContext forbids the call.
func stringLiteralWithQuotes(value string, escapeDollar, constantContext bool) string {
	builder := &strings.Builder{}
	if !constantContext && strings.Contains(value, "\n") {
		builder.WriteString("\"\"\"\n|")
		runes := []rune(value)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			switch {
			case r == '"' && i+2 < len(runes) && runes[i+1] == '"' && runes[i+2] == '"':
				builder.WriteString("\"\"${'\"'}")
				i += 2
			case r == '\n':
				builder.WriteString("\n|")
			case r == '$' && escapeDollar:
				builder.WriteString("${'$'}")
			default:
				builder.WriteRune(r)
			}
		}
		if !strings.HasSuffix(value, "\n") {
			builder.WriteString("\n")
		}
		builder.WriteString("\"\"\".trimMargin()")
		return builder.String()
	}
	builder.WriteByte('"')
	for _, r := range value {
		switch r {
		case '\'':
			builder.WriteByte('\'')
		case '"':
			builder.WriteString("\\\"")
		case '$':
			if escapeDollar {
				builder.WriteString("\\$")
			} else {
				builder.WriteByte('$')
			}
		default:
			builder.WriteString(characterLiteralWithoutSingleQuotes(r))
		}
	}
	builder.WriteByte('"')
	return builder.String()
}
