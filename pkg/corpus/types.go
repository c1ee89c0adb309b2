package corpus

import "time"

const (
	manifestFileName = "corpus.json"
	recordsDirName   = "records"
	manifestVersion  = "1.0.0"
)

// Manifest is the on-disk inventory of every record set in a corpus.
type Manifest struct {
	Version   string    `json:"version"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Entries   []Entry   `json:"entries"`
}

// Entry describes one ingested record set.
type Entry struct {
	ID        string    `json:"id"`
	Dataset   string    `json:"dataset"`
	Laws      int       `json:"laws"`
	Records   int       `json:"records"`
	Truncated int       `json:"truncated"`
	AddedAt   time.Time `json:"added_at"`
	Checksum  string    `json:"checksum"`
}

// Stats aggregates the manifest for display.
type Stats struct {
	Entries   int `json:"entries"`
	Laws      int `json:"laws"`
	Records   int `json:"records"`
	Truncated int `json:"truncated"`
}
