// Package placeholder renders the initial content of a scaffold document.
package placeholder

import (
	"strings"
)

// Stem returns the document name without its ".md" extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, ".md")
}

// Render returns the placeholder for name: a level-1 heading with the stem,
// a blank line, and the pending-content line.
func Render(name, todo string) []byte {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(Stem(name))
	b.WriteString("\n\n")
	b.WriteString(todo)
	b.WriteString("\n")
	return []byte(b.String())
}

// Format describes the placeholder layout for clients that create documents
// on their own.
const Format = `# Scaffold Document Format

Every document referenced from the index as ` + "`](./files/NNNN.md)`" + ` is created,
when missing, with exactly this content:

` + "```" + `markdown
# NNNN

TODO: Fill in the document content.
` + "```" + `

- ` + "`NNNN`" + ` is the file name without the ` + "`.md`" + ` extension (four digits).
- The TODO line is localized (for example ` + "`TODO: 补充文档内容。`" + ` for zh).
- Existing documents are never overwritten; replace the TODO line freely.
- Documents whose link was removed from the index are left in place.
`
