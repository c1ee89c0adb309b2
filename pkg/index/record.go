// Package index flattens parsed statute documents into retrieval
// records and delivers them to a sink.
package index

import "github.com/banhbao/phapdien/pkg/statute"

// Record is the retrieval unit built from one article.
type Record struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Citation string `json:"citation"`
	Law      string `json:"law"`
}

// Metadata returns the fields persisted alongside the record's text.
func (r *Record) Metadata() map[string]string {
	return map[string]string{
		"name":     r.Title,
		"type":     statute.ArticleKeyword,
		"citation": r.Citation,
		"law":      r.Law,
	}
}
