package pattern

import (
	"testing"

	"github.com/banhbao/phapdien/pkg/statute"
)

func TestDefault_Compiles(t *testing.T) {
	conv := Default()

	if err := conv.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if err := conv.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !conv.IsCompiled() {
		t.Error("convention should be compiled")
	}
	if conv.Classifier() == nil {
		t.Error("classifier should not be nil after compile")
	}
}

func TestDefault_ClassifiesLikeStandard(t *testing.T) {
	conv := Default()
	if err := conv.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	standard := statute.NewClassifier()
	lines := []string{
		"Chương I",
		"Điều 4a. Trách nhiệm",
		"1. Nội dung A",
		"đ) Tài liệu khác",
		"Quốc hội ban hành Luật này.",
	}

	for _, line := range lines {
		got := conv.Classifier().Classify(line)
		want := standard.Classify(line)
		if got.Kind != want.Kind {
			t.Errorf("Classify(%q) kind = %v, want %v", line, got.Kind, want.Kind)
		}
	}
}

func TestConvention_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Convention)
		wantErr string
	}{
		{"missing name", func(c *Convention) { c.Name = "" }, "convention name is required"},
		{"missing chapter keyword", func(c *Convention) { c.Keywords.Chapter = "" }, "chapter and article keywords are required"},
		{"missing point keyword", func(c *Convention) { c.Keywords.Point = "" }, "clause and point keywords are required"},
		{"missing chapter pattern", func(c *Convention) { c.Patterns.Chapter = "" }, "chapter pattern is required"},
		{"missing article pattern", func(c *Convention) { c.Patterns.Article = "" }, "article pattern is required"},
		{"missing clause pattern", func(c *Convention) { c.Patterns.Clause = "" }, "clause pattern is required"},
		{"missing point pattern", func(c *Convention) { c.Patterns.Point = "" }, "point pattern is required"},
	}

	for _, tc := range testCases {
		conv := Default()
		tc.mutate(conv)

		err := conv.Validate()
		if err == nil {
			t.Errorf("%s: Validate should fail", tc.name)
			continue
		}
		if err.Error() != tc.wantErr {
			t.Errorf("%s: error = %q, want %q", tc.name, err.Error(), tc.wantErr)
		}
	}
}

func TestConvention_CompileError(t *testing.T) {
	conv := Default()
	conv.Patterns.Article = "(?i)^Điều\\s+(\\d+[a-zđ]?" // unbalanced

	if err := conv.Compile(); err == nil {
		t.Error("Compile should fail for an invalid pattern")
	}
	if conv.IsCompiled() {
		t.Error("convention should not be marked compiled after a failed compile")
	}
}

func TestConvention_ValidateCaptureGroups(t *testing.T) {
	// These pattern sources compile, but the classifier indexes capture
	// groups they do not carry; both Validate and Compile must reject
	// them before a parser is ever built.
	testCases := []struct {
		name   string
		mutate func(*Convention)
	}{
		{"article without number group", func(c *Convention) { c.Patterns.Article = `(?i)^Điều\s+\d+` }},
		{"clause without groups", func(c *Convention) { c.Patterns.Clause = `^\d+\.\s*.*` }},
		{"clause without content group", func(c *Convention) { c.Patterns.Clause = `^(\d+)\.` }},
		{"point without content group", func(c *Convention) { c.Patterns.Point = `^([a-zđA-ZĐ])\)` }},
	}

	for _, tc := range testCases {
		conv := Default()
		tc.mutate(conv)

		if err := conv.Validate(); err == nil {
			t.Errorf("%s: Validate should fail", tc.name)
		}
		if err := conv.Compile(); err == nil {
			t.Errorf("%s: Compile should fail", tc.name)
		}
		if conv.IsCompiled() {
			t.Errorf("%s: convention should not be marked compiled", tc.name)
		}
	}

	// The chapter pattern is match-only and needs no groups.
	conv := Default()
	conv.Patterns.Chapter = `(?i)^Chương`
	if err := conv.Validate(); err != nil {
		t.Errorf("chapter without groups: Validate error = %v", err)
	}
	if err := conv.Compile(); err != nil {
		t.Errorf("chapter without groups: Compile error = %v", err)
	}
}

func TestConvention_Parser(t *testing.T) {
	conv := Default()

	parser, err := conv.Parser()
	if err != nil {
		t.Fatalf("Parser failed: %v", err)
	}

	doc := parser.ParseString("luật mẫu", "Điều 1. Phạm vi\n1. Nội dung A")
	if got := len(doc.AllArticles()); got != 1 {
		t.Errorf("Article count mismatch: got %d, want 1", got)
	}
}
