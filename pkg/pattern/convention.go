// Package pattern provides loadable statute numbering conventions and a
// registry that keeps them current from a configuration directory.
package pattern

import (
	"fmt"
	"regexp"

	"github.com/banhbao/phapdien/pkg/statute"
)

// Convention describes how one body of law numbers its structure: the
// keywords used for each level and the patterns that recognize them.
type Convention struct {
	// Metadata
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Language    string `yaml:"language,omitempty" json:"language,omitempty"`

	// Keywords used when labelling rendered output
	Keywords KeywordConfig `yaml:"keywords" json:"keywords"`

	// Patterns recognize structural header lines
	Patterns PatternConfig `yaml:"patterns" json:"patterns"`

	// Compiled classifier (populated after loading)
	compiled *statute.Classifier
}

// KeywordConfig names the structural keywords of a convention.
type KeywordConfig struct {
	Chapter string `yaml:"chapter" json:"chapter"`
	Article string `yaml:"article" json:"article"`
	Clause  string `yaml:"clause" json:"clause"`
	Point   string `yaml:"point" json:"point"`
}

// PatternConfig holds the regular expression source for each level.
// Article, clause and point must capture the number or letter as the
// first group; clause and point capture the inline content second.
type PatternConfig struct {
	Chapter string `yaml:"chapter" json:"chapter"`
	Article string `yaml:"article" json:"article"`
	Clause  string `yaml:"clause" json:"clause"`
	Point   string `yaml:"point" json:"point"`
}

// DefaultName is the registry key of the built-in convention.
const DefaultName = "vietnam-statute"

// Default returns the built-in Vietnamese statute convention.
func Default() *Convention {
	return &Convention{
		Name:        DefaultName,
		Version:     "1.0.0",
		Description: "Vietnamese statute numbering (Chương/Điều/Khoản/Điểm)",
		Language:    "vi",
		Keywords: KeywordConfig{
			Chapter: statute.ChapterKeyword,
			Article: statute.ArticleKeyword,
			Clause:  statute.ClauseKeyword,
			Point:   statute.PointKeyword,
		},
		Patterns: PatternConfig{
			Chapter: `(?i)^Chương\s+([IVXLCDM]+|\d+)`,
			Article: `(?i)^Điều\s+(\d+[a-zđ]?)`,
			Clause:  `^(\d+)\.\s*(.*)`,
			Point:   `^([a-zđA-ZĐ])\)\s*(.*)`,
		},
	}
}

// Validate checks that the convention is complete enough to compile:
// all fields present, every pattern a valid regular expression carrying
// the capture groups the classifier indexes.
func (c *Convention) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("convention name is required")
	}
	if c.Keywords.Chapter == "" || c.Keywords.Article == "" {
		return fmt.Errorf("chapter and article keywords are required")
	}
	if c.Keywords.Clause == "" || c.Keywords.Point == "" {
		return fmt.Errorf("clause and point keywords are required")
	}
	if c.Patterns.Chapter == "" {
		return fmt.Errorf("chapter pattern is required")
	}
	if c.Patterns.Article == "" {
		return fmt.Errorf("article pattern is required")
	}
	if c.Patterns.Clause == "" {
		return fmt.Errorf("clause pattern is required")
	}
	if c.Patterns.Point == "" {
		return fmt.Errorf("point pattern is required")
	}

	if _, err := compileLevel("chapter", c.Patterns.Chapter, 0); err != nil {
		return err
	}
	if _, err := compileLevel("article", c.Patterns.Article, 1); err != nil {
		return err
	}
	if _, err := compileLevel("clause", c.Patterns.Clause, 2); err != nil {
		return err
	}
	if _, err := compileLevel("point", c.Patterns.Point, 2); err != nil {
		return err
	}
	return nil
}

// compileLevel compiles one level's pattern source and checks it
// captures at least the groups the classifier indexes for that level.
func compileLevel(level, source string, groups int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compiling %s pattern %q: %w", level, source, err)
	}
	if re.NumSubexp() < groups {
		return nil, fmt.Errorf("%s pattern %q captures %d groups, needs %d", level, source, re.NumSubexp(), groups)
	}
	return re, nil
}

// Compile compiles the pattern sources into a line classifier. The
// article pattern must capture the number; clause and point must
// capture the number or letter and the inline content.
func (c *Convention) Compile() error {
	chapter, err := compileLevel("chapter", c.Patterns.Chapter, 0)
	if err != nil {
		return err
	}
	article, err := compileLevel("article", c.Patterns.Article, 1)
	if err != nil {
		return err
	}
	clause, err := compileLevel("clause", c.Patterns.Clause, 2)
	if err != nil {
		return err
	}
	point, err := compileLevel("point", c.Patterns.Point, 2)
	if err != nil {
		return err
	}

	c.compiled = statute.NewClassifierFromPatterns(chapter, article, clause, point)
	return nil
}

// IsCompiled returns whether the convention has been compiled.
func (c *Convention) IsCompiled() bool {
	return c.compiled != nil
}

// Classifier returns the compiled line classifier, or nil if the
// convention has not been compiled.
func (c *Convention) Classifier() *statute.Classifier {
	return c.compiled
}

// Parser returns a statute parser that recognizes this convention.
// The convention must have been compiled.
func (c *Convention) Parser() (*statute.Parser, error) {
	if !c.IsCompiled() {
		if err := c.Compile(); err != nil {
			return nil, err
		}
	}
	return statute.NewParserWithClassifier(c.compiled), nil
}
