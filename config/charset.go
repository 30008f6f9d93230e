package config

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset returns decoder selected for header files. Nil encoding means
// UTF-8 (or whatever BOM says).
func (conf *GeneratorConfig) Charset() (encoding.Encoding, error) {
	if len(conf.SourceCharset) == 0 {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(conf.SourceCharset)
	if err != nil {
		return nil, fmt.Errorf("unknown character set %q: %w", conf.SourceCharset, err)
	}
	if enc == nil {
		// name is known to IANA but x/text has no implementation for it
		return nil, fmt.Errorf("unsupported character set %q", conf.SourceCharset)
	}
	return enc, nil
}
