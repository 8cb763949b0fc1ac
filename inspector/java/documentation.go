package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// extractDocumentation returns the javadoc preceding a declaration without comment markers
func extractDocumentation(node *sitter.Node, source []byte) string {
	previous := node.PrevNamedSibling()
	if previous == nil {
		return ""
	}
	switch previous.Type() {
	case "block_comment", "comment":
	default:
		return ""
	}
	text := strings.TrimSpace(previous.Content(source))
	if !strings.HasPrefix(text, "/**") || text == "/**/" {
		return ""
	}
	return cleanCommentMarkers(text)
}

// cleanCommentMarkers removes comment markers from a comment string
func cleanCommentMarkers(comment string) string {
	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimSuffix(comment, "*/")
	lines := strings.Split(comment, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			line = strings.TrimSpace(line[1:])
		}
		lines[i] = line
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
