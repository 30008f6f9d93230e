package translate

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/beevik/etree"

	"sdgen/generate"
	"sdgen/strdefs"
)

var errNotResources = errors.New("root element is not \"resources\"")

// Language is a translation file as loaded at runtime by the client.
type Language struct {
	Name     string
	Native   string
	Code     string
	Author   string
	Revision int
	Strings  *strdefs.Table
}

// sameContent reports whether two languages would produce the same file
// when revision is ignored.
func (l *Language) sameContent(o *Language) bool {
	if l.Name != o.Name || l.Native != o.Native || l.Code != o.Code || l.Author != o.Author {
		return false
	}
	if l.Strings.Len() != o.Strings.Len() {
		return false
	}
	for name, text := range l.Strings.All() {
		if other, ok := o.Strings.Get(name); !ok || other != text {
			return false
		}
	}
	return true
}

func (l *Language) document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", generate.XMLDeclaration)

	root := doc.CreateElement("Language")
	root.CreateAttr("Name", l.Name)
	root.CreateAttr("Native", l.Native)
	root.CreateAttr("Code", l.Code)
	root.CreateAttr("Author", l.Author)
	root.CreateAttr("Revision", strconv.Itoa(l.Revision))

	strs := root.CreateElement("Strings")
	for name, text := range l.Strings.All() {
		el := strs.CreateElement("String")
		el.CreateAttr("Name", name)
		el.SetText(text)
	}
	generate.IndentTabs(doc)
	return doc
}

// write stores language file.
func (l *Language) write(path string) error {
	data, err := l.document().WriteToBytes()
	if err != nil {
		return fmt.Errorf("unable to prepare %s: %w", path, err)
	}
	return generate.WriteFile(path, data)
}

// readLanguage loads previously written language file. Missing file is not
// an error, nil is returned.
func readLanguage(path string) (*Language, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	root := doc.SelectElement("Language")
	if root == nil {
		return nil, fmt.Errorf("%s: root element is not \"Language\"", path)
	}

	l := &Language{
		Name:    root.SelectAttrValue("Name", ""),
		Native:  root.SelectAttrValue("Native", ""),
		Code:    root.SelectAttrValue("Code", ""),
		Author:  root.SelectAttrValue("Author", ""),
		Strings: strdefs.NewTable(),
	}
	if rev := root.SelectAttrValue("Revision", ""); len(rev) > 0 {
		n, err := strconv.Atoi(rev)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: bad revision %q", path, rev)
		}
		l.Revision = n
	}
	if strs := root.SelectElement("Strings"); strs != nil {
		for _, el := range strs.SelectElements("String") {
			l.Strings.Set(el.SelectAttrValue("Name", ""), el.Text())
		}
	}
	return l, nil
}
