// Package cite parses and formats article-level locators such as
// "Điểm a Khoản 2 Điều 5".
package cite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/banhbao/phapdien/pkg/statute"
)

// Ref locates an article, optionally narrowed to a clause and a point
// within that clause.
type Ref struct {
	Article string `json:"article"`
	Clause  string `json:"clause,omitempty"`
	Point   string `json:"point,omitempty"`
}

// refPattern matches locators written in the conventional
// narrow-to-wide order: optional point, optional clause, required
// article. Commas between components are tolerated.
var refPattern = regexp.MustCompile(`(?i)^(?:Điểm\s+([a-zđA-ZĐ])\s*,?\s+)?(?:Khoản\s+(\d+)\s*,?\s+)?Điều\s+(\d+[a-zđ]?)$`)

// Parse reads a locator like "Điều 5", "Khoản 2 Điều 5" or
// "Điểm a Khoản 2 Điều 5". Keywords are matched case-insensitively.
func Parse(s string) (*Ref, error) {
	m := refPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, fmt.Errorf("unrecognized reference %q", s)
	}

	ref := &Ref{Point: m[1], Clause: m[2], Article: m[3]}
	if ref.Point != "" && ref.Clause == "" {
		return nil, fmt.Errorf("reference %q names a point without its clause", s)
	}
	return ref, nil
}

// String formats the locator back in narrow-to-wide order.
func (r *Ref) String() string {
	var b strings.Builder
	if r.Point != "" {
		b.WriteString(statute.PointKeyword + " " + r.Point + " ")
	}
	if r.Clause != "" {
		b.WriteString(statute.ClauseKeyword + " " + r.Clause + " ")
	}
	b.WriteString(statute.ArticleKeyword + " " + r.Article)
	return b.String()
}

// Match reports whether the locator points at the given article.
// Article numbers compare case-insensitively because the grammar
// accepts either case for the trailing letter.
func (r *Ref) Match(article *statute.Article) bool {
	if article == nil {
		return false
	}
	return strings.EqualFold(article.Number, r.Article)
}
