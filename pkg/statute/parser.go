package statute

import (
	"fmt"
	"io"
	"strings"
)

// Parser converts flat statute text into a Document tree.
type Parser struct {
	classifier *Classifier
}

// NewParser returns a parser using the standard Vietnamese numbering
// convention.
func NewParser() *Parser {
	return &Parser{classifier: NewClassifier()}
}

// NewParserWithClassifier returns a parser that recognizes structure
// with a custom classifier, e.g. one compiled from a loaded convention.
func NewParserWithClassifier(c *Classifier) *Parser {
	return &Parser{classifier: c}
}

// Parse reads statute text from r and builds the document tree for the
// named law. The only possible error is a read failure; the parse
// itself never fails.
func (p *Parser) Parse(law string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return p.ParseString(law, string(data)), nil
}

// ParseString parses in-memory statute text. It is total: lines that
// match no structural pattern, or that match the clause or point
// pattern without an open ancestor, fold into the nearest open node as
// plain content, so no input produces an error.
func (p *Parser) ParseString(law, text string) *Document {
	state := &parseState{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		state.apply(p.classifier.Classify(line))
	}
	return state.build(law)
}

// parseState carries the open-node references threaded through one
// parse call. It is local to that call, so many documents can be
// parsed concurrently without coordination.
type parseState struct {
	preamble *strings.Builder
	chapters []*chapterBuilder

	openChapter *chapterBuilder
	openArticle *articleBuilder
	openClause  *clauseBuilder
	openPoint   *pointBuilder
}

// apply advances the state by one classified line.
func (s *parseState) apply(line Line) {
	switch line.Kind {
	case LineChapter:
		chapter := &chapterBuilder{header: line.Text}
		s.chapters = append(s.chapters, chapter)
		s.openChapter = chapter
		s.openArticle = nil
		s.openClause = nil
		s.openPoint = nil

	case LineArticle:
		if s.openChapter == nil {
			// Orphan article: synthesize a default chapter to host it.
			chapter := &chapterBuilder{header: DefaultChapterHeader}
			s.chapters = append(s.chapters, chapter)
			s.openChapter = chapter
		}
		article := &articleBuilder{number: line.Number}
		article.content.WriteString(line.Rest)
		s.openChapter.articles = append(s.openChapter.articles, article)
		s.openArticle = article
		s.openClause = nil
		s.openPoint = nil

	case LineClause:
		if s.openArticle == nil {
			// A numbered sentence outside any article is prose, not
			// structure. Never promote it.
			s.appendPlain(line.Text)
			return
		}
		clause := &clauseBuilder{number: line.Number}
		clause.content.WriteString(line.Rest)
		s.openArticle.clauses = append(s.openArticle.clauses, clause)
		s.openClause = clause
		s.openPoint = nil

	case LinePoint:
		if s.openClause == nil {
			s.appendPlain(line.Text)
			return
		}
		point := &pointBuilder{letter: line.Letter}
		point.content.WriteString(line.Rest)
		s.openClause.points = append(s.openClause.points, point)
		s.openPoint = point

	default:
		s.appendPlain(line.Text)
	}
}

// appendPlain folds a continuation line into the innermost open node,
// or into the preamble when nothing is open yet.
func (s *parseState) appendPlain(line string) {
	switch {
	case s.openPoint != nil:
		s.openPoint.content.WriteString(" " + line)
	case s.openClause != nil:
		s.openClause.content.WriteString(" " + line)
	case s.openArticle != nil:
		s.openArticle.content.WriteString(" " + line)
	case s.openChapter != nil:
		s.openChapter.content.WriteString(" " + line)
	default:
		if s.preamble == nil {
			s.preamble = &strings.Builder{}
			s.preamble.WriteString(line)
			return
		}
		s.preamble.WriteString(" " + line)
	}
}

// build finalizes the accumulated state into an immutable document.
func (s *parseState) build(law string) *Document {
	doc := &Document{Law: law, Chapters: make([]*Chapter, len(s.chapters))}
	if s.preamble != nil {
		doc.Preamble = &Preamble{Text: s.preamble.String()}
	}
	for i, chapter := range s.chapters {
		doc.Chapters[i] = chapter.build()
	}
	return doc
}

// Node builders accumulate growing content in a strings.Builder and
// are finalized into the exported tree types once the pass completes.

type chapterBuilder struct {
	header   string
	content  strings.Builder
	articles []*articleBuilder
}

func (b *chapterBuilder) build() *Chapter {
	chapter := &Chapter{
		Header:   b.header,
		Articles: make([]*Article, len(b.articles)),
		Content:  b.content.String(),
	}
	for i, article := range b.articles {
		chapter.Articles[i] = article.build()
	}
	return chapter
}

type articleBuilder struct {
	number  string
	content strings.Builder
	clauses []*clauseBuilder
}

func (b *articleBuilder) build() *Article {
	article := &Article{
		Number:  b.number,
		Content: b.content.String(),
		Clauses: make([]*Clause, len(b.clauses)),
	}
	for i, clause := range b.clauses {
		article.Clauses[i] = clause.build()
	}
	return article
}

type clauseBuilder struct {
	number  string
	content strings.Builder
	points  []*pointBuilder
}

func (b *clauseBuilder) build() *Clause {
	clause := &Clause{
		Number:  b.number,
		Content: b.content.String(),
		Points:  make([]*Point, len(b.points)),
	}
	for i, point := range b.points {
		clause.Points[i] = point.build()
	}
	return clause
}

type pointBuilder struct {
	letter  string
	content strings.Builder
}

func (b *pointBuilder) build() *Point {
	return &Point{Letter: b.letter, Content: b.content.String()}
}
