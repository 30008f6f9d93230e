package generate

import (
	"github.com/beevik/etree"

	"sdgen/strdefs"
)

// XMLDeclaration is content of processing instruction starting every
// produced XML file.
const XMLDeclaration = `version="1.0" encoding="utf-8" standalone="yes"`

// buildResources converts table into translation template document: one
// "string" element per entry keyed by identifier with unescaped text.
func buildResources(tbl *strdefs.Table) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", XMLDeclaration)

	root := doc.CreateElement("resources")
	for name, text := range tbl.All() {
		el := root.CreateElement("string")
		el.CreateAttr("name", name)
		el.SetText(strdefs.Unescape(text))
	}
	IndentTabs(doc)
	return doc
}

// IndentTabs indents document with tabs keeping whitespace-only strings
// intact.
func IndentTabs(doc *etree.Document) {
	s := etree.NewIndentSettings()
	s.UseTabs = true
	s.PreserveLeafWhitespace = true
	doc.IndentWithSettings(s)
}

func renderResources(tbl *strdefs.Table) ([]byte, error) {
	return buildResources(tbl).WriteToBytes()
}
