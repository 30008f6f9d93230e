package strdefs

import "strings"

// substitutions are applied one after another in this order, so "\\t" ends
// up as backslash followed by tab.
var substitutions = [...]struct{ seq, char string }{
	{`\t`, "\t"},
	{`\r`, "\r"},
	{`\n`, "\n"},
	{`\\`, `\`},
	{`\"`, `"`},
	{`\'`, `'`},
}

// Unescape replaces C escape sequences of the header text with characters
// they stand for. Only sequences above are known, everything else is kept.
func Unescape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	for _, s := range substitutions {
		text = strings.ReplaceAll(text, s.seq, s.char)
	}
	return text
}
