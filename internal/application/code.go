package application

import (
	"regexp"
	"strings"
)

const pasteURLPrefix = "https://p.ahkscript.org/"

var leadingFenceLine = regexp.MustCompile("^```.*\n")

func NormalizeCode(code string) string {
	if loc := leadingFenceLine.FindStringIndex(code); loc != nil {
		code = code[loc[1]:]
	}

	return strings.TrimSpace(strings.Trim(code, "`"))
}

// CleanupSnippet removes code block markers from an interactive turn and
// dedents what is left so pasted code keeps its relative indentation.
func CleanupSnippet(content string) string {
	if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 1 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	content = strings.Trim(content, "` \n")
	content = strings.Trim(content, "`")

	return dedent(content)
}

func dedent(text string) string {
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}

	if margin == "" {
		return text
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

func codeFromReference(content string) string {
	if idx := strings.Index(content, "`"); idx >= 0 {
		return content[idx:]
	}
	return content
}

func isPasteURL(arg string) bool {
	return strings.HasPrefix(arg, pasteURLPrefix)
}

func RawPasteURL(link string) string {
	return strings.Replace(link, "?p=", "?r=", 1)
}

func isExitKeyword(code string) bool {
	switch code {
	case "quit", "exit", "exit()":
		return true
	default:
		return false
	}
}
