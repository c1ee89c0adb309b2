package statute

import "regexp"

var (
	// subHeadingPattern matches section sub-headings ("Mục 2. ",
	// "Mục 1a. ") that mark the start of trailing non-article text in
	// rendered output.
	subHeadingPattern = regexp.MustCompile(`Mục \d+[a-zđ]?\. `)

	// enactmentPattern matches the enactment boilerplate sentence that
	// closes a statute ("Luật này đã được Quốc hội...").
	enactmentPattern = regexp.MustCompile(`Luật này (đã )?được Quốc hội`)
)

// StripBoilerplate removes known trailing boilerplate from rendered
// article text. Each rule finds the first occurrence of its marker and
// cuts the text from the start of the match, the second rule operating
// on the output of the first. Text without either marker is returned
// unchanged.
func StripBoilerplate(text string) string {
	if loc := subHeadingPattern.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	if loc := enactmentPattern.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return text
}
