package markup

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
)

const fence = "```"

type blockKind int

const (
	paragraphBlock blockKind = iota
	listBlock
	codeBlock
)

type block struct {
	kind  blockKind
	lines []string
}

// FormatTheory converts the markdown subset used by lesson theory text
// into HTML.
//
// Blocks are separated by blank lines. A block starting with a hyphen
// becomes a bulleted list, anything else a paragraph. A ``` fence opens a
// verbatim code block running to the closing fence, even when it starts
// in the middle of a block or contains blank lines.
func FormatTheory(theory string) template.HTML {
	var sb strings.Builder

	for _, b := range splitBlocks(theory) {
		switch b.kind {
		case codeBlock:
			sb.WriteString("<pre><code>")
			sb.WriteString(Escape(strings.Join(b.lines, "\n")))
			sb.WriteString("</code></pre>")
		case listBlock:
			sb.WriteString(`<ul class="theory-list">`)
			for _, line := range b.lines {
				item := strings.TrimLeft(line, " \t")
				if !strings.HasPrefix(item, "-") {
					continue
				}
				item = strings.TrimLeft(strings.TrimPrefix(item, "-"), " \t")

				sb.WriteString("<li>")
				sb.WriteString(FormatInline(item))
				sb.WriteString("</li>")
			}
			sb.WriteString("</ul>")
		default:
			sb.WriteString("<p>")
			sb.WriteString(FormatInline(strings.Join(b.lines, "\n")))
			sb.WriteString("</p>")
		}
	}

	return template.HTML(sb.String())
}

// FormatInline escapes text and then applies **bold** and `code` spans,
// in that order.
//
// Bold runs first, so a code span containing ** ends up with a <strong>
// element inside the <code> element.
func FormatInline(text string) string {
	escaped := Escape(text)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = inlineCodePattern.ReplaceAllString(escaped, "<code>$1</code>")

	return escaped
}

func splitBlocks(text string) []block {
	var (
		blocks  []block
		current []string
		code    []string
		inFence bool
	)

	flush := func() {
		if len(current) == 0 {
			return
		}

		kind := paragraphBlock
		if strings.HasPrefix(strings.TrimSpace(current[0]), "-") {
			kind = listBlock
		}

		blocks = append(blocks, block{kind: kind, lines: current})
		current = nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if inFence {
			if strings.HasPrefix(trimmed, fence) {
				blocks = append(blocks, block{kind: codeBlock, lines: code})
				code = nil
				inFence = false
				continue
			}

			code = append(code, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, fence):
			// the language tag after the fence is dropped
			flush()
			inFence = true
		case trimmed == "":
			flush()
		default:
			current = append(current, line)
		}
	}

	// an unterminated fence runs to the end of the text
	if inFence {
		blocks = append(blocks, block{kind: codeBlock, lines: code})
	}
	flush()

	return blocks
}
