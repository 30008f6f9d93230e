package strdefs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sdgen/config"
)

const sampleHeader = `// @Prolog: #include "stdinc.h"
// @Prolog: #include "ResourceManager.h"
// @Prolog: namespace dcpp {
// @Prolog: string ResourceManager::strings[] = {
#ifndef DCPLUSPLUS_DCPP_STRINGDEFS_H
#define DCPLUSPLUS_DCPP_STRINGDEFS_H

namespace dcpp {

enum Strings { // @DontAdd
	ACTIVE, // "Active"
	ADD_TO_FAVORITES, // "Add To Favorites"

	AUTO_SEARCH_2ND,	// "Auto search"
	UNDOCUMENTED,
	HELLO, // "Hello \"world\""
	LAST // @DontAdd
};
}
#endif
`

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func parseString(t *testing.T, header string, opts Options) (*Table, error) {
	t.Helper()
	return NewParser("StringDefs.h", opts, testLogger(t)).Parse(strings.NewReader(header))
}

func TestParse_Sample(t *testing.T) {
	tbl, err := parseString(t, sampleHeader, Options{Quotes: config.QuotePolicyStrict})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantNames := []string{"active", "addToFavorites", "autoSearch2nd", "hello"}
	wantStrings := []string{"Active", "Add To Favorites", "Auto search", `Hello \"world\"`}

	if got := tbl.Names(); !slices.Equal(got, wantNames) {
		t.Errorf("Names() = %v, want %v", got, wantNames)
	}
	if got := tbl.Strings(); !slices.Equal(got, wantStrings) {
		t.Errorf("Strings() = %v, want %v", got, wantStrings)
	}
}

func TestParse_CommentedLinesBeforeEnumIgnored(t *testing.T) {
	header := `// "not an entry"
#define FOO 1 // "neither"
enum X {
	FOO, // "Foo"
};
`
	tbl, err := parseString(t, header, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tbl.Names(); !slices.Equal(got, []string{"foo"}) {
		t.Errorf("Names() = %v, want [foo]", got)
	}
}

func TestParse_NoEnum(t *testing.T) {
	tbl, err := parseString(t, "#pragma once\nstruct enumerated {}; // \"x\"\n  enumeration // \"y\"\n", Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}

func TestParse_EmptyInput(t *testing.T) {
	tbl, err := parseString(t, "", Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}

func TestParse_SentinelStopsParsing(t *testing.T) {
	header := `enum Strings {
	FOO, // "Foo"
	LAST, // "unused"
	AFTER, // "After"
};
`
	tbl, err := parseString(t, header, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tbl.Names(); !slices.Equal(got, []string{"foo"}) {
		t.Errorf("Names() = %v, want [foo]", got)
	}
	for _, n := range []string{"last", "after"} {
		if _, ok := tbl.Get(n); ok {
			t.Errorf("table must not contain %s", n)
		}
	}
}

func TestParse_CustomSentinel(t *testing.T) {
	header := "enum S {\n\tA, // \"a\"\n\tSTR_END, // \"\"\n\tB, // \"b\"\n"
	tbl, err := parseString(t, header, Options{Sentinel: "STR_END"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tbl.Names(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Names() = %v, want [a]", got)
	}
}

func TestParse_MissingSentinelConsumesEverything(t *testing.T) {
	header := "enum A {\n\tA, // \"a\"\n};\nenum B {\n\tB, // \"b\"\n};\n"
	tbl, err := parseString(t, header, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// second enum line is treated as ordinary line inside enumeration
	if got := tbl.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", got)
	}
}

func TestParse_DuplicateLastWins(t *testing.T) {
	header := `enum Strings {
	SOME_NAME, // "First"
	OTHER, // "Other"
	SOME-NAME, // "Second"
	LAST
};
`
	core, logs := observer.New(zapcore.WarnLevel)
	tbl, err := NewParser("StringDefs.h", Options{}, zap.New(core)).Parse(strings.NewReader(header))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := tbl.Names(); !slices.Equal(got, []string{"someName", "other"}) {
		t.Errorf("Names() = %v, want [someName other]", got)
	}
	if v, _ := tbl.Get("someName"); v != "Second" {
		t.Errorf("someName = %q, want Second", v)
	}

	warnings := logs.FilterMessageSnippet("Duplicate").All()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 duplicate warning, got %d", len(warnings))
	}
	fields := warnings[0].ContextMap()
	if fields["name"] != "someName" || fields["line"] != int64(4) || fields["previous"] != int64(2) {
		t.Errorf("warning fields = %v", fields)
	}
}

func TestParse_QuotePolicies(t *testing.T) {
	header := "enum S {\n\tFOO, // Hello\n};\n"

	t.Run("strict", func(t *testing.T) {
		_, err := parseString(t, header, Options{Quotes: config.QuotePolicyStrict})
		if !errors.Is(err, ErrMalformedComment) {
			t.Fatalf("Parse() error = %v, want ErrMalformedComment", err)
		}
		if !strings.Contains(err.Error(), "StringDefs.h:2") {
			t.Errorf("error should point to line: %v", err)
		}
	})

	t.Run("warn", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		tbl, err := NewParser("StringDefs.h", Options{Quotes: config.QuotePolicyWarn}, zap.New(core)).Parse(strings.NewReader(header))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if v, _ := tbl.Get("foo"); v != "ell" {
			t.Errorf("foo = %q, want ell", v)
		}
		if logs.Len() != 1 {
			t.Errorf("expected 1 warning, got %d", logs.Len())
		}
	})

	t.Run("legacy", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		tbl, err := NewParser("StringDefs.h", Options{Quotes: config.QuotePolicyLegacy}, zap.New(core)).Parse(strings.NewReader(header))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if v, _ := tbl.Get("foo"); v != "ell" {
			t.Errorf("foo = %q, want ell", v)
		}
		if logs.Len() != 0 {
			t.Errorf("expected no warnings, got %d", logs.Len())
		}
	})
}

func TestParse_CommentTrimming(t *testing.T) {
	header := "enum S {\n\tA,\t//\t\"Tabbed\"\t\r\n\tB , //\"  spaced  \"   \n\tC, // \"\"\n"
	tbl, err := parseString(t, header, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]string{"a": "Tabbed", "b": "  spaced  ", "c": ""}
	for name, text := range want {
		if v, ok := tbl.Get(name); !ok || v != text {
			t.Errorf("%s = %q (present %v), want %q", name, v, ok, text)
		}
	}
}

func TestStripEnds(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"x", ""},
		{"xy", ""},
		{"'abc'", "abc"},
		{"«текст»", "текст"},
	}
	for _, tt := range tests {
		if got := stripEnds(tt.in); got != tt.want {
			t.Errorf("stripEnds(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParser_StateMachine(t *testing.T) {
	p := NewParser("test", Options{}, testLogger(t))

	steps := []struct {
		line string
		want State
	}{
		{"#pragma once", SeekingEnum},
		{"  enum Strings {", InEnum},
		{"\tFOO, // \"Foo\"", InEnum},
		{"\tLAST, // \"\"", Done},
		{"\tBAR, // \"Bar\"", Done},
	}
	for i, s := range steps {
		if err := p.Feed(s.line); err != nil {
			t.Fatalf("step %d: Feed() error = %v", i, err)
		}
		if p.State() != s.want {
			t.Errorf("step %d: State() = %v, want %v", i, p.State(), s.want)
		}
	}
	if p.Table().Len() != 1 {
		t.Errorf("Table().Len() = %d, want 1", p.Table().Len())
	}
	if Done.String() != "done" || State(7).String() != "State(7)" {
		t.Errorf("unexpected State strings: %s %s", Done, State(7))
	}
}

func TestParse_Encodings(t *testing.T) {
	header := "enum S {\n\tCAFE, // \"Café\"\n};\n"

	encode := func(t *testing.T, tr transform.Transformer) []byte {
		t.Helper()
		var buf bytes.Buffer
		w := transform.NewWriter(&buf, tr)
		if _, err := w.Write([]byte(header)); err != nil {
			t.Fatalf("encode sample: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("finalize encoded sample: %v", err)
		}
		return buf.Bytes()
	}

	tests := []struct {
		name string
		data func(t *testing.T) []byte
		opts Options
	}{
		{"utf8", func(t *testing.T) []byte { return []byte(header) }, Options{}},
		{"utf8 bom", func(t *testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, header...) }, Options{}},
		{"utf16le bom", func(t *testing.T) []byte {
			return encode(t, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
		}, Options{}},
		{"windows-1252", func(t *testing.T) []byte {
			return encode(t, charmap.Windows1252.NewEncoder())
		}, Options{Charset: charmap.Windows1252}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewParser("test", tt.opts, testLogger(t)).Parse(bytes.NewReader(tt.data(t)))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if v, _ := tbl.Get("cafe"); v != "Café" {
				t.Errorf("cafe = %q, want Café", v)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "StringDefs.h")
	if err := os.WriteFile(path, []byte(sampleHeader), 0644); err != nil {
		t.Fatal(err)
	}

	tbl, err := ParseFile(path, Options{}, testLogger(t))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if tbl.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tbl.Len())
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.h"), Options{}, testLogger(t)); err == nil {
		t.Error("Expected error for missing header")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(&config.GeneratorConfig{Sentinel: "END", Quotes: config.QuotePolicyWarn, SourceCharset: "ISO-8859-1"})
	if err != nil {
		t.Fatalf("OptionsFromConfig() error = %v", err)
	}
	if opts.Sentinel != "END" || opts.Quotes != config.QuotePolicyWarn || opts.Charset == nil {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}

	if _, err := OptionsFromConfig(&config.GeneratorConfig{SourceCharset: "bogus-charset"}); err == nil {
		t.Error("Expected error for unknown charset")
	}
}
