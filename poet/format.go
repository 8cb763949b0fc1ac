package poet

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	namedArgumentExpr  = regexp.MustCompile(`^%([\w_]+):(\w)$`)
	lowercaseExpr      = regexp.MustCompile(`^[a-z]+[\w_]*$`)
	noArgPlaceholders  = "%><[]W%"
	argPlaceholders    = "LSTNMP"
	markerPlaceholders = map[string]bool{"%>": true, "%<": true, "%[": true, "%]": true, "%W": true}
)

func isNoArgPlaceholder(c byte) bool {
	return strings.IndexByte(noArgPlaceholders, c) != -1
}

func isArgPlaceholder(c byte) bool {
	return strings.IndexByte(argPlaceholders, c) != -1
}

// isPlaceholder reports whether a format part is a directive rather than literal text
func isPlaceholder(part string) bool {
	return len(part) == 2 && part[0] == '%' && (isNoArgPlaceholder(part[1]) || isArgPlaceholder(part[1]))
}

// parsed holds format parts with their bound arguments
type parsed struct {
	parts []string
	args  []interface{}
}

func (p *parsed) addLiteral(text string) {
	if text != "" {
		p.parts = append(p.parts, text)
	}
}

func (p *parsed) addArgument(format string, c byte, arg interface{}) error {
	value, err := convertArgument(format, c, arg)
	if err != nil {
		return err
	}
	p.parts = append(p.parts, "%"+string(c))
	p.args = append(p.args, value)
	return nil
}

// parsePositional splits format into parts binding positional or indexed arguments
func parsePositional(format string, args []interface{}) (*parsed, error) {
	result := &parsed{}
	hasRelative := false
	hasIndexed := false
	relativeParameterCount := 0
	indexedParameterCount := make([]int, len(args))

	for p := 0; p < len(format); {
		if format[p] != '%' {
			next := strings.IndexByte(format[p+1:], '%')
			if next == -1 {
				result.addLiteral(format[p:])
				break
			}
			next += p + 1
			result.addLiteral(format[p:next])
			p = next
			continue
		}

		p++ // '%'
		indexStart := p
		var c byte
		for {
			if p >= len(format) {
				return nil, formatError("dangling format characters in '%s'", format)
			}
			c = format[p]
			p++
			if c < '0' || c > '9' {
				break
			}
		}
		indexEnd := p - 1

		if isNoArgPlaceholder(c) {
			if indexStart != indexEnd {
				return nil, formatError("%%%c may not have an index", c)
			}
			result.parts = append(result.parts, "%"+string(c))
			continue
		}
		if !isArgPlaceholder(c) {
			return nil, formatError("unknown format %%%c at %d in '%s'", c, p-1, format)
		}

		var index int
		if indexStart < indexEnd {
			value, err := strconv.Atoi(format[indexStart:indexEnd])
			if err != nil {
				return nil, formatError("invalid index in '%s': %v", format, err)
			}
			index = value - 1
			hasIndexed = true
			if index >= 0 && index < len(args) {
				indexedParameterCount[index]++
			}
		} else {
			index = relativeParameterCount
			hasRelative = true
			relativeParameterCount++
		}

		if index < 0 || index >= len(args) {
			return nil, formatError("index %d for '%s' not in range (received %d arguments)", index+1, format[indexStart-1:indexEnd+1], len(args))
		}
		if hasIndexed && hasRelative {
			return nil, formatError("cannot mix indexed and positional parameters")
		}
		if err := result.addArgument(format, c, args[index]); err != nil {
			return nil, err
		}
	}

	if hasRelative && relativeParameterCount < len(args) {
		return nil, formatError("unused arguments: expected %d, received %d", relativeParameterCount, len(args))
	}
	if hasIndexed {
		var unused []string
		for i, count := range indexedParameterCount {
			if count == 0 {
				unused = append(unused, "%"+strconv.Itoa(i+1))
			}
		}
		if len(unused) > 0 {
			suffix := ""
			if len(unused) > 1 {
				suffix = "s"
			}
			return nil, formatError("unused argument%s: %s", suffix, strings.Join(unused, ", "))
		}
	}
	if !hasRelative && !hasIndexed && len(args) > 0 {
		return nil, formatError("unused arguments: expected 0, received %d", len(args))
	}
	return result, nil
}

// parseNamed splits format into parts binding %name:X directives from arguments
func parseNamed(format string, arguments map[string]interface{}) (*parsed, error) {
	keys := make([]string, 0, len(arguments))
	for key := range arguments {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !lowercaseExpr.MatchString(key) {
			return nil, formatError("argument '%s' must start with a lowercase character", key)
		}
	}

	result := &parsed{}
	for p := 0; p < len(format); {
		next := strings.IndexByte(format[p:], '%')
		if next == -1 {
			result.addLiteral(format[p:])
			break
		}
		next += p
		if p != next {
			result.addLiteral(format[p:next])
			p = next
		}

		var match []string
		if colon := strings.IndexByte(format[p:], ':'); colon != -1 {
			end := p + colon + 2
			if end > len(format) {
				end = len(format)
			}
			match = namedArgumentExpr.FindStringSubmatch(format[p:end])
		}
		if match != nil {
			name, c := match[1], match[2][0]
			argument, ok := arguments[name]
			if !ok {
				return nil, formatError("missing named argument for %%%s", name)
			}
			if !isArgPlaceholder(c) {
				return nil, formatError("unknown format %%%c at %d in '%s'", c, p+len(match[0])-1, format)
			}
			if err := result.addArgument(format, c, argument); err != nil {
				return nil, err
			}
			p += len(match[0])
			continue
		}

		if p+1 >= len(format) {
			return nil, formatError("dangling format characters in '%s'", format)
		}
		c := format[p+1]
		if !isNoArgPlaceholder(c) {
			return nil, formatError("unknown format %%%c at %d in '%s'", c, p+1, format)
		}
		result.parts = append(result.parts, format[p:p+2])
		p += 2
	}
	return result, nil
}

// convertArgument validates arg against directive c and returns the value stored in the block
func convertArgument(format string, c byte, arg interface{}) (interface{}, error) {
	switch c {
	case 'N':
		name, err := argToName(arg)
		if err != nil {
			return nil, err
		}
		return escapeIfNecessary(name)
	case 'L':
		return arg, nil
	case 'S':
		return argToString(arg), nil
	case 'P':
		if block, ok := arg.(CodeBlock); ok {
			return block, nil
		}
		return argToString(arg), nil
	case 'T':
		typeName, ok := arg.(TypeName)
		if !ok || isNilTypeName(typeName) {
			return nil, formatError("expected type but was %v", arg)
		}
		return typeName, nil
	case 'M':
		member, ok := arg.(*MemberName)
		if !ok || member == nil {
			return nil, formatError("expected member but was %v", arg)
		}
		return member, nil
	}
	return nil, formatError("invalid format string: '%s'", format)
}

// named is implemented by specs whose name can be referenced with %N
type named interface {
	Name() string
}

func argToName(arg interface{}) (string, error) {
	switch actual := arg.(type) {
	case string:
		return actual, nil
	case *MemberName:
		if actual != nil {
			return actual.SimpleName(), nil
		}
	case named:
		return actual.Name(), nil
	}
	return "", formatError("expected name but was %v", arg)
}

func argToString(arg interface{}) interface{} {
	switch actual := arg.(type) {
	case nil:
		return nil
	case string:
		return actual
	case fmt.Stringer:
		return actual.String()
	}
	return fmt.Sprint(arg)
}
