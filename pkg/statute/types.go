// Package statute parses flat Vietnamese statute text into a typed
// document tree and renders articles back into self-describing text.
package statute

// Keywords of the Vietnamese statute numbering convention.
const (
	ChapterKeyword = "Chương"
	ArticleKeyword = "Điều"
	ClauseKeyword  = "Khoản"
	PointKeyword   = "Điểm"
)

// DefaultChapterHeader is the header given to the chapter synthesized
// when an article appears before any explicit chapter heading.
const DefaultChapterHeader = ChapterKeyword + " 0"

// Document is the parsed representation of one law.
type Document struct {
	Law      string     `json:"law"`
	Preamble *Preamble  `json:"preamble,omitempty"`
	Chapters []*Chapter `json:"chapters"`
}

// Preamble holds the text that appears before any chapter or article.
// A document has at most one.
type Preamble struct {
	Text string `json:"text"`
}

// Chapter groups the articles under one chapter heading. Header is the
// full heading line as it appeared in the source.
type Chapter struct {
	Header   string     `json:"header"`
	Articles []*Article `json:"articles"`
	Content  string     `json:"content,omitempty"`
}

// Article is a numbered legal article, the unit indexed for retrieval.
// Number keeps any trailing letter ("5đ" stays "5đ").
type Article struct {
	Number  string    `json:"number"`
	Content string    `json:"content"`
	Clauses []*Clause `json:"clauses"`
}

// Clause is a numbered sub-provision within an article.
type Clause struct {
	Number  string   `json:"number"`
	Content string   `json:"content"`
	Points  []*Point `json:"points"`
}

// Point is a lettered sub-item within a clause.
type Point struct {
	Letter  string `json:"letter"`
	Content string `json:"content"`
}

// Statistics summarizes the structural elements of a document.
type Statistics struct {
	Chapters int `json:"chapters"`
	Articles int `json:"articles"`
	Clauses  int `json:"clauses"`
	Points   int `json:"points"`
}

// Statistics counts the structural elements in the document.
func (d *Document) Statistics() *Statistics {
	stats := &Statistics{}
	for _, chapter := range d.Chapters {
		stats.Chapters++
		for _, article := range chapter.Articles {
			stats.Articles++
			for _, clause := range article.Clauses {
				stats.Clauses++
				stats.Points += len(clause.Points)
			}
		}
	}
	return stats
}

// GetArticle returns the article with the given number, or nil if the
// document has no such article.
func (d *Document) GetArticle(number string) *Article {
	for _, chapter := range d.Chapters {
		for _, article := range chapter.Articles {
			if article.Number == number {
				return article
			}
		}
	}
	return nil
}

// GetClause returns the numbered clause of an article, or nil.
func (a *Article) GetClause(number string) *Clause {
	for _, clause := range a.Clauses {
		if clause.Number == number {
			return clause
		}
	}
	return nil
}

// GetPoint returns the lettered point of a clause, or nil.
func (c *Clause) GetPoint(letter string) *Point {
	for _, point := range c.Points {
		if point.Letter == letter {
			return point
		}
	}
	return nil
}

// AllArticles returns every article across all chapters in document order.
func (d *Document) AllArticles() []*Article {
	var articles []*Article
	for _, chapter := range d.Chapters {
		articles = append(articles, chapter.Articles...)
	}
	return articles
}
