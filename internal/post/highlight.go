package post

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeBlockRenderer renders fenced code samples through chroma using CSS
// classes, so one stylesheet serves every page.
type codeBlockRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newCodeBlockRenderer(styleName string) *codeBlockRenderer {
	return &codeBlockRenderer{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	lang := strings.ToLower(string(n.Language(source)))
	if err := r.highlight(w, lang, code.String()); err != nil {
		// Fall back to a plain block rather than failing the page.
		writePlain(w, lang, code.String())
	}
	return ast.WalkSkipChildren, nil
}

func (r *codeBlockRenderer) highlight(w io.Writer, lang, code string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="highlight`)
	if lang != "" {
		buf.WriteString(` language-` + html.EscapeString(lang))
	}
	buf.WriteString(`">`)
	if err := r.formatter.Format(&buf, r.style, it); err != nil {
		return err
	}
	buf.WriteString("</div>\n")
	_, err = w.Write(buf.Bytes())
	return err
}

func (r *codeBlockRenderer) writeCSS(w io.Writer) error {
	return r.formatter.WriteCSS(w, r.style)
}

func writePlain(w io.Writer, lang, code string) {
	class := ""
	if lang != "" {
		class = ` class="language-` + html.EscapeString(lang) + `"`
	}
	io.WriteString(w, "<pre><code"+class+">"+html.EscapeString(code)+"</code></pre>\n")
}
