package translate

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"sdgen/strdefs"
)

// parseResources reads translated strings from resource XML produced by
// translation service, document order is kept.
func parseResources(source string, data []byte, log *zap.Logger) (*strdefs.Table, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", source, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "resources" {
		return nil, fmt.Errorf("%s: %w", source, errNotResources)
	}

	tbl := strdefs.NewTable()
	for i, el := range root.SelectElements("string") {
		name := el.SelectAttrValue("name", "")
		if len(name) == 0 {
			log.Warn("String without name ignored", zap.String("source", source), zap.Int("index", i))
			continue
		}
		if tbl.Set(name, strdefs.Unescape(el.Text())) {
			log.Warn("Duplicate translation, last one wins", zap.String("source", source), zap.String("name", name))
		}
	}
	return tbl, nil
}
