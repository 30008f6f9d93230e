package strdefs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sdgen/config"
)

// DefaultSentinel is enumerator which terminates string table.
const DefaultSentinel = "LAST"

const commentMarker = "//"

// ErrMalformedComment is returned when enumerator comment is not a quoted
// string and quote policy does not allow to continue.
var ErrMalformedComment = errors.New("enumerator comment is not a quoted string")

// State of the header scanner.
type State int

const (
	// SeekingEnum skips everything until line starting with "enum" keyword.
	SeekingEnum State = iota
	// InEnum collects commented enumerators.
	InEnum
	// Done is reached on sentinel enumerator, the rest of input is ignored.
	Done
)

func (s State) String() string {
	switch s {
	case SeekingEnum:
		return "seeking-enum"
	case InEnum:
		return "in-enum"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options control header parsing.
type Options struct {
	// Sentinel enumerator, DefaultSentinel when empty.
	Sentinel string
	// Quotes selects how comments without surrounding quotation marks are treated.
	Quotes config.QuotePolicy
	// Charset decodes header when it has no BOM, nil means UTF-8.
	Charset encoding.Encoding
}

// OptionsFromConfig prepares parsing options from program configuration.
func OptionsFromConfig(conf *config.GeneratorConfig) (Options, error) {
	enc, err := conf.Charset()
	if err != nil {
		return Options{}, err
	}
	return Options{Sentinel: conf.Sentinel, Quotes: conf.Quotes, Charset: enc}, nil
}

// Parser is line oriented state machine building string table from header
// lines. It is not safe for concurrent use.
type Parser struct {
	source string
	opts   Options
	log    *zap.Logger

	state State
	line  int
	table *Table
	// line of the last definition for each identifier, for diagnostics
	defined map[string]int
}

// NewParser creates parser, source is only used in diagnostics.
func NewParser(source string, opts Options, log *zap.Logger) *Parser {
	if len(opts.Sentinel) == 0 {
		opts.Sentinel = DefaultSentinel
	}
	return &Parser{
		source:  source,
		opts:    opts,
		log:     log,
		state:   SeekingEnum,
		table:   NewTable(),
		defined: make(map[string]int),
	}
}

func (p *Parser) State() State {
	return p.state
}

// Table returns strings collected so far.
func (p *Parser) Table() *Table {
	return p.table
}

// Feed processes next line of the header (without line terminator).
func (p *Parser) Feed(line string) error {
	p.line++

	switch p.state {
	case SeekingEnum:
		if fields := strings.Fields(line); len(fields) > 0 && fields[0] == "enum" {
			p.state = InEnum
		}
		return nil
	case InEnum:
		return p.enumerator(line)
	default:
		return nil
	}
}

func (p *Parser) enumerator(line string) error {
	code, comment, found := strings.Cut(line, commentMarker)
	if !found {
		// braces, blank lines and undocumented enumerators
		return nil
	}

	id := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(code), ","))
	if id == p.opts.Sentinel {
		// sentinel text is never used, do not validate it
		p.state = Done
		return nil
	}

	text, err := p.unquote(comment)
	if err != nil {
		return err
	}

	name := CamelCase(id)
	if p.table.Set(name, text) {
		p.log.Warn("Duplicate string identifier, last definition wins",
			zap.String("name", name),
			zap.String("source", p.source),
			zap.Int("line", p.line),
			zap.Int("previous", p.defined[name]))
	}
	p.defined[name] = p.line
	return nil
}

// unquote removes quotation marks around comment text.
func (p *Parser) unquote(comment string) (string, error) {
	comment = strings.Trim(comment, " \t\r\n")
	if len(comment) >= 2 && comment[0] == '"' && comment[len(comment)-1] == '"' {
		return comment[1 : len(comment)-1], nil
	}

	if !p.opts.Quotes.Strips() {
		return "", fmt.Errorf("%s:%d: %w: %s", p.source, p.line, ErrMalformedComment, comment)
	}
	if p.opts.Quotes == config.QuotePolicyWarn {
		p.log.Warn("Enumerator comment is not quoted, stripping first and last characters anyway",
			zap.String("source", p.source), zap.Int("line", p.line), zap.String("comment", comment))
	}
	return stripEnds(comment), nil
}

// stripEnds drops first and last character whatever they are.
func stripEnds(s string) string {
	if utf8.RuneCountInString(s) < 2 {
		return ""
	}
	_, first := utf8.DecodeRuneInString(s)
	_, last := utf8.DecodeLastRuneInString(s)
	return s[first : len(s)-last]
}

// Parse consumes header until sentinel or end of input.
func (p *Parser) Parse(r io.Reader) (*Table, error) {
	fallback := transform.Transformer(unicode.UTF8.NewDecoder())
	if p.opts.Charset != nil {
		fallback = p.opts.Charset.NewDecoder()
	}

	scanner := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(fallback)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for p.state != Done && scanner.Scan() {
		if err := p.Feed(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", p.source, err)
	}

	if p.state == SeekingEnum {
		p.log.Debug("No enumeration found", zap.String("source", p.source))
	} else if p.state == InEnum {
		p.log.Debug("Sentinel was not found, whole enumeration used", zap.String("source", p.source), zap.String("sentinel", p.opts.Sentinel))
	}
	return p.table, nil
}

// ParseFile reads string table from header file.
func ParseFile(path string, opts Options, log *zap.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open header: %w", err)
	}
	defer f.Close()

	return NewParser(path, opts, log).Parse(f)
}
