package index

import (
	"github.com/banhbao/phapdien/pkg/statute"
)

// Builder turns parsed documents into retrieval records.
type Builder struct {
	expandCitations bool
}

// BuildStats reports what one build pass produced.
type BuildStats struct {
	Documents int `json:"documents"`
	Chapters  int `json:"chapters"`
	Articles  int `json:"articles"`
	Records   int `json:"records"`
	Truncated int `json:"truncated"`
}

// NewBuilder creates a record builder. With expandCitations set, every
// clause and point line of the rendered content carries its ancestors'
// labels.
func NewBuilder(expandCitations bool) *Builder {
	return &Builder{expandCitations: expandCitations}
}

// Build renders every article under every chapter of doc into one
// record each. Preamble text is not indexed. The record content is the
// rendered article with trailing boilerplate stripped. A nil document
// yields no records.
func (b *Builder) Build(doc *statute.Document) ([]Record, *BuildStats) {
	stats := &BuildStats{}
	if doc == nil {
		return nil, stats
	}

	stats.Documents = 1
	var records []Record

	for _, chapter := range doc.Chapters {
		stats.Chapters++
		for _, article := range chapter.Articles {
			stats.Articles++

			title := statute.ArticleKeyword + " " + article.Number
			rendered := article.Render(b.expandCitations)
			content := statute.StripBoilerplate(rendered)
			if len(content) != len(rendered) {
				stats.Truncated++
			}

			records = append(records, Record{
				Title:    title,
				Content:  content,
				Citation: title + " " + doc.Law,
				Law:      doc.Law,
			})
			stats.Records++
		}
	}

	return records, stats
}
