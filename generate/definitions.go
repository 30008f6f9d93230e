package generate

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"sdgen/strdefs"
)

//go:embed stringdefs.cpp.tmpl
var defaultDefinitionsTemplate string

// Values is a struct that holds variables we make available for
// definitions template expansion. Strings and Names have the same length and
// order.
type Values struct {
	// Header is the base name of the processed header.
	Header  string
	Strings []string
	Names   []string
}

// loadTemplate returns built-in template or content of the file when path is
// not empty.
func loadTemplate(path string) (*template.Template, error) {
	text := defaultDefinitionsTemplate
	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read definitions template from %q: %w", path, err)
		}
		text = string(data)
	}
	tmpl, err := template.New("definitions").Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse definitions template: %w", err)
	}
	return tmpl, nil
}

// renderDefinitions produces content of the definitions file. Same table
// always renders to the same bytes.
func renderDefinitions(tmpl *template.Template, header string, tbl *strdefs.Table) ([]byte, error) {
	values := Values{
		Header:  header,
		Strings: tbl.Strings(),
		Names:   tbl.Names(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return nil, fmt.Errorf("unable to expand definitions template: %w", err)
	}
	return buf.Bytes(), nil
}
