package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/parleychat/parley/internal/timeline"
)

// renderMessage renders one conversation entry: a role header with the
// clock time (and the producing model for assistant replies), then the
// markdown body.
func (c *Chat) renderMessage(msg timeline.Message, wrapWidth int) string {
	var sb strings.Builder

	var header string
	if msg.Role == timeline.RoleUser {
		header = ChatUserStyle.Render(c.userLabel + ":")
	} else {
		header = ChatAssistantStyle.Render("Assistant:")
		if msg.Model != "" {
			header += " " + ChatModelStyle.Render(msg.Model)
		}
	}
	if !msg.ReceivedAt.IsZero() {
		header += " " + ChatTimeStyle.Render(FormatClock(msg.ReceivedAt))
	}

	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(renderMarkdown(strings.TrimSpace(msg.Content), wrapWidth))
	return sb.String()
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// renderMarkdown renders message content with syntax-highlighted code blocks
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	lines := strings.Split(content, "\n")
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlockContent strings.Builder

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeBlockContent.Reset()
			} else {
				inCodeBlock = false
				result.WriteString(highlightCode(codeBlockContent.String(), codeBlockLang))
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlockContent.Len() > 0 {
				codeBlockContent.WriteString("\n")
			}
			codeBlockContent.WriteString(line)
		} else {
			result.WriteString(line)
			result.WriteString("\n")
		}
	}

	// Unterminated code block: render whatever accumulated
	if inCodeBlock {
		result.WriteString(highlightCode(codeBlockContent.String(), codeBlockLang))
	}

	return strings.TrimRight(result.String(), "\n")
}
