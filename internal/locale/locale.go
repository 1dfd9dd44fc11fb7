// Package locale renders the user-facing strings of a scaffold pass in the
// configured language.
package locale

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	summaryKey     = "Generated %s document files (if any were missing)."
	placeholderKey = "TODO: Fill in the document content."
)

var (
	supported = []language.Tag{language.English, language.SimplifiedChinese}
	matcher   = language.NewMatcher(supported)
	messages  = newCatalog()
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	must(b.SetString(language.English, summaryKey, summaryKey))
	must(b.SetString(language.English, placeholderKey, placeholderKey))
	must(b.SetString(language.SimplifiedChinese, summaryKey, "已生成 %s 个文档文件（如有缺失）。"))
	must(b.SetString(language.SimplifiedChinese, placeholderKey, "TODO: 补充文档内容。"))
	return b
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Printer renders localized messages.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// Supported reports whether tag parses as a BCP 47 language tag. An empty tag
// is accepted and means English.
func Supported(tag string) bool {
	if tag == "" {
		return true
	}
	_, err := language.Parse(tag)
	return err == nil
}

// New returns a Printer for the closest supported language to tag.
// Unparseable or unknown tags fall back to English.
func New(tag string) *Printer {
	t := language.English
	if parsed, err := language.Parse(tag); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			t = supported[idx]
		}
	}
	return &Printer{tag: t, p: message.NewPrinter(t, message.Catalog(messages))}
}

// Tag returns the language the printer resolved to.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Summary is the one-line report printed after a pass over n link references.
// The count is not digit-grouped.
func (p *Printer) Summary(n int) string {
	return p.p.Sprintf(summaryKey, strconv.Itoa(n))
}

// PlaceholderLine is the pending-content marker written into new documents.
func (p *Printer) PlaceholderLine() string {
	return p.p.Sprintf(placeholderKey)
}
