package statute

import (
	"regexp"
	"strings"
)

// LineKind identifies the structural role of one input line.
type LineKind int

const (
	LinePlain LineKind = iota
	LineChapter
	LineArticle
	LineClause
	LinePoint
)

// Line is one classified input line. Number carries the article or
// clause number, Letter the point letter, Rest the inline content that
// followed the structural marker. Text is always the full trimmed line.
type Line struct {
	Kind   LineKind
	Number string
	Letter string
	Rest   string
	Text   string
}

// Classifier tags trimmed lines with their structural role.
type Classifier struct {
	chapterPattern *regexp.Regexp
	articlePattern *regexp.Regexp
	clausePattern  *regexp.Regexp
	pointPattern   *regexp.Regexp
}

// NewClassifier returns a classifier for the standard Vietnamese
// statute numbering convention: "Chương" headings numbered with Roman
// or decimal numerals, "Điều" articles with an optional trailing
// letter, "1." clauses and "a)" points (đ included).
func NewClassifier() *Classifier {
	return &Classifier{
		chapterPattern: regexp.MustCompile(`(?i)^Chương\s+([IVXLCDM]+|\d+)`),
		articlePattern: regexp.MustCompile(`(?i)^Điều\s+(\d+[a-zđ]?)`),
		clausePattern:  regexp.MustCompile(`^(\d+)\.\s*(.*)`),
		pointPattern:   regexp.MustCompile(`^([a-zđA-ZĐ])\)\s*(.*)`),
	}
}

// NewClassifierFromPatterns builds a classifier from already compiled
// patterns, one per structural level. The chapter pattern needs no
// capture group; article, clause and point must capture the number or
// letter first, and clause and point the inline content second.
func NewClassifierFromPatterns(chapter, article, clause, point *regexp.Regexp) *Classifier {
	return &Classifier{
		chapterPattern: chapter,
		articlePattern: article,
		clausePattern:  clause,
		pointPattern:   point,
	}
}

// Classify tags one trimmed, non-empty line. Precedence runs chapter,
// article, clause, point; anything unmatched is plain continuation. A
// pattern match that does not supply its capture groups never
// classifies; the line continues down the precedence chain.
func (c *Classifier) Classify(line string) Line {
	if c.chapterPattern.MatchString(line) {
		return Line{Kind: LineChapter, Text: line}
	}

	if m := c.articlePattern.FindStringSubmatchIndex(line); len(m) >= 4 && m[2] >= 0 {
		// Inline content is whatever follows the matched prefix, with
		// surrounding "." and spaces trimmed away.
		rest := strings.TrimSpace(strings.Trim(line[m[1]:], ". "))
		return Line{Kind: LineArticle, Number: line[m[2]:m[3]], Rest: rest, Text: line}
	}

	if m := c.clausePattern.FindStringSubmatch(line); len(m) >= 3 {
		return Line{Kind: LineClause, Number: m[1], Rest: m[2], Text: line}
	}

	if m := c.pointPattern.FindStringSubmatch(line); len(m) >= 3 {
		return Line{Kind: LinePoint, Letter: m[1], Rest: m[2], Text: line}
	}

	return Line{Kind: LinePlain, Text: line}
}
