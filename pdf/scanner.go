package pdf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BlockKind tags one layout block parsed from itinerary markdown.
type BlockKind int

const (
	Spacer BlockKind = iota
	Heading
	Paragraph
	BulletList
)

// Block is one renderable unit. Text is set for Heading and Paragraph,
// Items for BulletList.
type Block struct {
	Kind  BlockKind
	Text  string
	Items []string
}

type scanner struct {
	lines []string
	pos   int
}

func (s *scanner) done() bool   { return s.pos >= len(s.lines) }
func (s *scanner) peek() string { return s.lines[s.pos] }
func (s *scanner) next() string {
	line := s.lines[s.pos]
	s.pos++
	return line
}

// ParseBlocks splits markdown into layout blocks in a single forward pass.
// The grammar is line-oriented on purpose: only "## " headings count,
// bullet runs collapse to one flat list whatever the marker or indentation,
// and every other line is its own paragraph. Inline markdown is left
// untouched. Block order mirrors line order.
func ParseBlocks(markdown string) []Block {
	lines := strings.Split(markdown, "\n")
	// a trailing newline does not produce a trailing blank line
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	sc := &scanner{lines: lines}
	var blocks []Block
	for !sc.done() {
		raw := sc.next()
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		switch {
		case strings.TrimSpace(line) == "":
			blocks = append(blocks, Block{Kind: Spacer})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Kind: Heading, Text: strings.TrimSpace(line[3:])})
		case isBullet(line):
			items := []string{bulletText(line)}
			for !sc.done() && isBullet(sc.peek()) {
				items = append(items, bulletText(sc.next()))
			}
			blocks = append(blocks, Block{Kind: BulletList, Items: items})
		default:
			blocks = append(blocks, Block{Kind: Paragraph, Text: line})
		}
	}
	return blocks
}

func isBullet(line string) bool {
	t := strings.TrimLeftFunc(line, unicode.IsSpace)
	if t == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t)
	return r == '-' || r == '*' || r == '•'
}

// bulletText drops the leading whitespace and exactly one marker rune, then
// trims the remainder.
func bulletText(line string) string {
	t := strings.TrimLeftFunc(line, unicode.IsSpace)
	_, size := utf8.DecodeRuneInString(t)
	return strings.TrimSpace(t[size:])
}
