package lexer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/metrics"
)

// tagged is one source character together with where it was written.
type tagged struct {
	ch  rune
	pos diag.Position
}

const maxChar = 0xff

var identRe = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

var escapes = map[rune]int{
	'\'': 39,
	'"':  34,
	'?':  63,
	'\\': 92,
	'a':  7,
	'b':  8,
	'f':  12,
	'n':  10,
	'r':  13,
	't':  9,
	'v':  11,
}

// Tokenize splits src into tokens. Lexical errors are added to issues and
// the offending text is skipped, so the returned tokens are everything that
// could be recognized, in source order.
func Tokenize(src, file string, issues *diag.Collector) []Token {
	if issues == nil {
		issues = &diag.Collector{}
	}
	lines := splice(splitLines(src, file))

	l := &Lexer{issues: issues}
	for _, line := range lines {
		l.line(line)
	}
	metrics.Tokens.Add(float64(len(l.toks)))
	return l.toks
}

// Lexer carries the state that survives from one line to the next.
type Lexer struct {
	toks      []Token
	inComment bool
	issues    *diag.Collector
}

func splitLines(src, file string) [][]tagged {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	raw := strings.Split(src, "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([][]tagged, len(raw))
	for n, text := range raw {
		col := 0
		line := make([]tagged, 0, len(text))
		for _, ch := range text {
			col++
			line = append(line, tagged{ch, diag.Position{File: file, Line: n + 1, Col: col, Text: text}})
		}
		lines[n] = line
	}
	return lines
}

// splice joins every line ending in a backslash with the line after it.
// Characters keep the positions they were tagged with.
func splice(lines [][]tagged) [][]tagged {
	for i := 0; i < len(lines); {
		line := lines[i]
		if len(line) == 0 || line[len(line)-1].ch != '\\' {
			i++
			continue
		}
		line = line[:len(line)-1]
		if i+1 < len(lines) {
			lines[i] = append(line, lines[i+1]...)
			lines = append(lines[:i+1], lines[i+2:]...)
			continue
		}
		lines[i] = line
		i++
	}
	return lines
}

func at(line []tagged, i int) rune {
	if i < len(line) {
		return line[i].ch
	}
	return 0
}

func (l *Lexer) line(line []tagged) {
	start, end := 0, 0
	for end < len(line) {
		ch := line[end].ch
		switch {
		case l.inComment:
			if ch == '*' && at(line, end+1) == '/' {
				l.inComment = false
				end += 2
			} else {
				end++
			}
			start = end
		case ch == '/' && at(line, end+1) == '*':
			l.chunk(line[start:end])
			l.inComment = true
			end += 2
			start = end
		case ch == '/' && at(line, end+1) == '/':
			l.chunk(line[start:end])
			return
		case unicode.IsSpace(ch):
			l.chunk(line[start:end])
			end++
			start = end
		case ch == '"' || ch == '\'':
			l.chunk(line[start:end])
			end = l.quoted(line, end)
			start = end
		default:
			sym, ok := matchSymbol(line, end)
			if !ok {
				end++
				continue
			}
			l.chunk(line[start:end])
			n := len(sym.String())
			l.toks = append(l.toks, Token{
				Type:  sym,
				Lex:   sym.String(),
				Range: diag.Range{Start: line[end].pos, End: line[end+n-1].pos},
			})
			end += n
			start = end
		}
	}
	l.chunk(line[start:end])
}

func matchSymbol(line []tagged, i int) (TokenType, bool) {
next:
	for _, sym := range symbols {
		text := names[sym]
		if i+len(text) > len(line) {
			continue
		}
		for j, c := range text {
			if line[i+j].ch != c {
				continue next
			}
		}
		return sym, true
	}
	return ILLEGAL, false
}

// quoted scans a string literal or character constant whose opening quote is
// at line[open] and returns the index just past the closing quote. An
// unterminated literal consumes the rest of the line.
func (l *Lexer) quoted(line []tagged, open int) int {
	delim := line[open].ch
	chars, end, ok := l.readString(line, open+1, delim)
	if !ok {
		r := diag.Span(line[open].pos)
		l.issues.Add(diag.Errorf(&r, "missing terminating quote"))
		return len(line)
	}
	r := diag.Range{Start: line[open].pos, End: line[end].pos}
	rep := text(line[open : end+1])
	if delim == '\'' {
		if len(chars) != 1 {
			msg := "empty character constant"
			if len(chars) > 1 {
				msg = "multi-character constant"
			}
			l.issues.Add(diag.Errorf(&r, "%s", msg))
			return end + 1
		}
		l.toks = append(l.toks, Token{Type: CHAR, Lex: strconv.Itoa(chars[0]), Chars: chars, Rep: rep, Range: r})
		return end + 1
	}
	chars = append(chars, 0)
	l.toks = append(l.toks, Token{Type: STRING, Lex: rep, Chars: chars, Rep: rep, Range: r})
	return end + 1
}

func isOctal(c rune) bool { return c >= '0' && c <= '7' }

func isHex(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// readString decodes characters from line[i] up to the delimiter. It returns
// the decoded values and the index of the closing delimiter. Numeric escapes
// that do not fit in a char are reported and truncated.
func (l *Lexer) readString(line []tagged, i int, delim rune) ([]int, int, bool) {
	var chars []int
	for {
		switch {
		case i >= len(line):
			return nil, 0, false
		case line[i].ch == delim:
			return chars, i, true
		case line[i].ch == '\\' && i+1 < len(line):
			next := line[i+1].ch
			if v, ok := escapes[next]; ok {
				chars = append(chars, v)
				i += 2
				continue
			}
			if isOctal(next) {
				j := i + 1
				for j < len(line) && j < i+4 && isOctal(line[j].ch) {
					j++
				}
				v, err := strconv.ParseUint(text(line[i+1:j]), 8, 64)
				chars = append(chars, l.escaped(line[i], v, err))
				i = j
				continue
			}
			if next == 'x' && i+2 < len(line) && isHex(line[i+2].ch) {
				j := i + 2
				for j < len(line) && isHex(line[j].ch) {
					j++
				}
				v, err := strconv.ParseUint(text(line[i+2:j]), 16, 64)
				chars = append(chars, l.escaped(line[i], v, err))
				i = j
				continue
			}
			chars = append(chars, int(line[i].ch))
			i++
		default:
			chars = append(chars, int(line[i].ch))
			i++
		}
	}
}

// escaped checks the value of a numeric escape starting at backslash.
func (l *Lexer) escaped(backslash tagged, v uint64, err error) int {
	if err != nil || v > maxChar {
		r := diag.Span(backslash.pos)
		l.issues.Add(diag.Errorf(&r, "escape sequence out of range"))
	}
	return int(v & maxChar)
}

func text(chunk []tagged) string {
	var b strings.Builder
	for _, t := range chunk {
		b.WriteRune(t.ch)
	}
	return b.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// chunk classifies a run of characters that is neither whitespace nor a
// symbol.
func (l *Lexer) chunk(chunk []tagged) {
	if len(chunk) == 0 {
		return
	}
	r := diag.Range{Start: chunk[0].pos, End: chunk[len(chunk)-1].pos}
	s := text(chunk)
	if kw, ok := Keyword(s); ok {
		l.toks = append(l.toks, Token{Type: kw, Lex: s, Range: r})
		return
	}
	if isDigits(s) {
		l.toks = append(l.toks, Token{Type: NUMBER, Lex: s, Range: r})
		return
	}
	if identRe.MatchString(s) {
		l.toks = append(l.toks, Token{Type: IDENT, Lex: s, Range: r})
		return
	}
	l.issues.Add(diag.Errorf(&r, "unrecognized token at '%s'", s))
}
