package dataset

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	filter := DefaultFilter()

	testCases := []struct {
		subject string
		want    bool
	}{
		{"Luật Đất đai 2024 (mới nhất)", true},
		{"Luật Đất đai 2024 (sửa đổi)", false},
		{"Luật Nhà ở 2023 (mới nhất, sửa đổi)", false},
		{"Nghị định 52/2013/NĐ-CP", false},
		{"mới nhất", true},
		{"", false},
	}

	for _, tc := range testCases {
		if got := filter.Keep(tc.subject); got != tc.want {
			t.Errorf("Keep(%q) = %v, want %v", tc.subject, got, tc.want)
		}
	}
}

func TestFilterCustomMarkers(t *testing.T) {
	filter := Filter{KeepMarker: "hiện hành", ExcludeMarker: "dự thảo"}

	testCases := []struct {
		subject string
		want    bool
	}{
		{"Luật A (hiện hành)", true},
		{"Luật B (dự thảo, hiện hành)", false},
		{"Luật C (mới nhất)", false},
	}

	for _, tc := range testCases {
		if got := filter.Keep(tc.subject); got != tc.want {
			t.Errorf("Keep(%q) = %v, want %v", tc.subject, got, tc.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	testdataPath := filepath.Join("..", "..", "testdata", "laws.csv")

	laws, report, err := LoadFile(testdataPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if report.Rows != 4 {
		t.Errorf("Rows = %d, want 4", report.Rows)
	}
	if report.Kept != 1 {
		t.Errorf("Kept = %d, want 1", report.Kept)
	}
	if report.FilteredOut != 3 {
		t.Errorf("FilteredOut = %d, want 3", report.FilteredOut)
	}
	if report.Malformed != 0 {
		t.Errorf("Malformed = %d, want 0", report.Malformed)
	}

	if len(laws) != 1 {
		t.Fatalf("Law count mismatch: got %d, want 1", len(laws))
	}
	if laws[0].Subject != "Luật Giao dịch điện tử (mới nhất)" {
		t.Errorf("Subject mismatch: got %q", laws[0].Subject)
	}

	// The quoted text field spans multiple lines
	if !strings.Contains(laws[0].Text, "\n") {
		t.Errorf("Text should preserve line breaks, got %q", laws[0].Text)
	}
	if !strings.HasPrefix(laws[0].Text, "Điều 1. Phạm vi điều chỉnh") {
		t.Errorf("Text prefix mismatch: got %q", laws[0].Text)
	}
}

func TestLoad_HeaderVariants(t *testing.T) {
	// Columns may come in any order and casing; extras are ignored.
	input := "id,Text,SUBJECT\n1,\"Điều 1. Phạm vi\",\"Luật A (mới nhất)\"\n"

	laws, report, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if report.Kept != 1 {
		t.Errorf("Kept = %d, want 1", report.Kept)
	}
	if len(laws) != 1 {
		t.Fatalf("Law count mismatch: got %d, want 1", len(laws))
	}
	if laws[0].Subject != "Luật A (mới nhất)" {
		t.Errorf("Subject mismatch: got %q", laws[0].Subject)
	}
	if laws[0].Text != "Điều 1. Phạm vi" {
		t.Errorf("Text mismatch: got %q", laws[0].Text)
	}
}

func TestLoad_MissingColumns(t *testing.T) {
	input := "subject,body\n\"Luật A (mới nhất)\",\"Điều 1.\"\n"

	if _, _, err := Load(strings.NewReader(input)); err == nil {
		t.Error("Load should fail when the text column is missing")
	}
}

func TestLoad_ShortRowsAreMalformed(t *testing.T) {
	input := "subject,text\n\"Luật A (mới nhất)\"\n\"Luật B (mới nhất)\",\"Điều 1. Phạm vi\"\n"

	laws, report, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if report.Rows != 2 {
		t.Errorf("Rows = %d, want 2", report.Rows)
	}
	if report.Malformed != 1 {
		t.Errorf("Malformed = %d, want 1", report.Malformed)
	}
	if report.Kept != 1 {
		t.Errorf("Kept = %d, want 1", report.Kept)
	}
	if len(laws) != 1 || laws[0].Subject != "Luật B (mới nhất)" {
		t.Errorf("Laws mismatch: got %+v", laws)
	}
}

func TestLoad_EmptyFieldsAreMalformed(t *testing.T) {
	// Rows with a blank subject or blank text are unusable whatever the
	// filter says; they count as malformed, not filtered.
	input := "subject,text\n\"\",\"nội dung\"\n\"Luật X (mới nhất)\",\"\"\n"

	laws, report, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if report.Rows != 2 {
		t.Errorf("Rows = %d, want 2", report.Rows)
	}
	if report.Malformed != 2 {
		t.Errorf("Malformed = %d, want 2", report.Malformed)
	}
	if report.Kept != 0 {
		t.Errorf("Kept = %d, want 0", report.Kept)
	}
	if report.FilteredOut != 0 {
		t.Errorf("FilteredOut = %d, want 0", report.FilteredOut)
	}
	if len(laws) != 0 {
		t.Errorf("Law count mismatch: got %d, want 0", len(laws))
	}
}

func TestLoaderFilterFields(t *testing.T) {
	loader := &Loader{Filter: Filter{KeepMarker: "hiện hành", ExcludeMarker: "dự thảo"}}
	input := "subject,text\n\"Luật A (hiện hành)\",\"Điều 1. Phạm vi\"\n\"Luật B (mới nhất)\",\"Điều 1. Phạm vi\"\n"

	laws, report, err := loader.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if report.Kept != 1 {
		t.Errorf("Kept = %d, want 1", report.Kept)
	}
	if report.FilteredOut != 1 {
		t.Errorf("FilteredOut = %d, want 1", report.FilteredOut)
	}
	if len(laws) != 1 || laws[0].Subject != "Luật A (hiện hành)" {
		t.Errorf("Laws mismatch: got %+v", laws)
	}
}

func TestLoad_EmptyDataset(t *testing.T) {
	laws, report, err := Load(strings.NewReader("subject,text\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(laws) != 0 {
		t.Errorf("Law count mismatch: got %d, want 0", len(laws))
	}
	if report.Rows != 0 {
		t.Errorf("Rows = %d, want 0", report.Rows)
	}
}

func TestLoad_HeaderOnlyError(t *testing.T) {
	if _, _, err := Load(strings.NewReader("")); err == nil {
		t.Error("Load should fail on an empty input with no header")
	}
}
