package translate

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// androidStem is the file name used by resource bundles where locale is
// encoded in the directory name.
const androidStem = "strings"

// Locale identifies translation language.
type Locale struct {
	Tag language.Tag
	// Name is English name of the language.
	Name string
	// Native is name of the language in the language itself.
	Native string
}

// Code is canonical BCP 47 form used for output file names.
func (l Locale) Code() string {
	return l.Tag.String()
}

// localeFromPath derives locale from "fi-FI.xml" or "values-pt-rBR/strings.xml"
// style names. Both "/" and OS separators are accepted so archive entries
// could be handled the same way.
func localeFromPath(name string) (Locale, error) {
	name = filepath.ToSlash(name)
	base := name[strings.LastIndex(name, "/")+1:]
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	code := stem
	if strings.EqualFold(stem, androidStem) {
		dir := strings.TrimSuffix(name, base)
		dir = strings.TrimSuffix(dir, "/")
		code = dir[strings.LastIndex(dir, "/")+1:]
		if len(code) == 0 {
			return Locale{}, fmt.Errorf("unable to derive locale from %q", name)
		}
	}
	return parseLocale(code)
}

// parseLocale understands plain BCP 47 codes, POSIX style "pt_BR" and
// resource directory names like "values-pt-rBR".
func parseLocale(code string) (Locale, error) {
	code = strings.TrimPrefix(code, "values-")
	code = strings.ReplaceAll(code, "_", "-")

	parts := strings.Split(code, "-")
	for i, p := range parts {
		// region qualifier of resource directories
		if i > 0 && len(p) == 3 && (p[0] == 'r' || p[0] == 'R') {
			parts[i] = p[1:]
		}
	}

	tag, err := language.Parse(strings.Join(parts, "-"))
	if err != nil {
		return Locale{}, fmt.Errorf("unable to parse locale %q: %w", code, err)
	}
	if tag == language.Und {
		return Locale{}, fmt.Errorf("undefined locale %q", code)
	}
	return Locale{
		Tag:    tag,
		Name:   display.English.Tags().Name(tag),
		Native: display.Self.Name(tag),
	}, nil
}
