package narrative

import (
	"fmt"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"jurimetrics/domain/report"
)

// TextFormatter exports the markdown narrative as plain text.
type TextFormatter struct {
	gen *Generator
}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{gen: NewGenerator()}
}

func (f *TextFormatter) ContentType() string {
	return "text/markdown; charset=utf-8"
}

func (f *TextFormatter) Format(rep *report.JudicialBiasReport) ([]byte, error) {
	return []byte(f.gen.Render(rep)), nil
}

// HTMLFormatter exports the narrative as a standalone HTML document.
type HTMLFormatter struct {
	gen *Generator
}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{gen: NewGenerator()}
}

func (f *HTMLFormatter) ContentType() string {
	return "text/html; charset=utf-8"
}

func (f *HTMLFormatter) Format(rep *report.JudicialBiasReport) ([]byte, error) {
	doc := f.gen.Render(rep)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML([]byte(doc), p, renderer)

	page := fmt.Sprintf(htmlShell, judgeLabel(rep), body)
	return []byte(page), nil
}

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Judicial Analytics Report: %s</title>
<style>
body { font-family: Georgia, serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #c9c9c9; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f2f2f2; }
blockquote { border-left: 4px solid #b8860b; margin-left: 0; padding-left: 1rem; color: #5a4a00; }
</style>
</head>
<body>
%s
</body>
</html>
`
