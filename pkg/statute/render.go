package statute

import "strings"

// Render flattens the article into one text block, one line per
// structural element, each terminated by a single line break.
//
// With expandCitation false the lines keep their bare source labels:
//
//	Điều 1. Phạm vi
//	1. Nội dung A
//	a) Chi tiết
//
// With expandCitation true every clause line carries the article label
// and every point line re-embeds the full clause lead, so each line is
// self-describing when read in isolation:
//
//	Điều 1. Phạm vi
//	Khoản 1. Điều 1 Nội dung A
//	Điểm a) Khoản 1. Điều 1  Chi tiết
//
// The duplicated labels on point lines are intentional and must stay
// byte-for-byte stable; downstream citations depend on the exact text.
func (a *Article) Render(expandCitation bool) string {
	var b strings.Builder
	b.WriteString(ArticleKeyword + " " + a.Number + ". " + a.Content + "\n")

	for _, clause := range a.Clauses {
		clauseLabel := clause.Number
		clausePrefix := ""
		if expandCitation {
			clauseLabel = ClauseKeyword + " " + clause.Number
			clausePrefix = ArticleKeyword + " " + a.Number + " "
		}
		clauseLead := clauseLabel + ". " + clausePrefix
		b.WriteString(clauseLead + clause.Content + "\n")

		for _, point := range clause.Points {
			pointLabel := point.Letter
			pointPrefix := ""
			if expandCitation {
				pointLabel = PointKeyword + " " + point.Letter
				pointPrefix = clauseLead + " "
			}
			b.WriteString(pointLabel + ") " + pointPrefix + point.Content + "\n")
		}
	}

	return b.String()
}
