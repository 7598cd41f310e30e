package model

import (
	"encoding/json"
	"time"
)

// FileMeta describes the uploaded document as shown to the user.
type FileMeta struct {
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	MediaType string `json:"media_type"`
	PageCount int    `json:"page_count,omitempty"`
}

// ExtractionResult is one successful processor run. Immutable after creation;
// history entries are appended in extraction order and never updated.
type ExtractionResult struct {
	ID             string            `json:"id"`
	SourceFilename string            `json:"source_filename"`
	Timestamp      time.Time         `json:"timestamp"`
	Fields         map[string]string `json:"extracted_fields"`
	FieldOrder     []string          `json:"field_order"`
	RawResponse    json.RawMessage   `json:"raw_response"`
	File           FileMeta          `json:"file"`
}

// FieldCount reports how many non-empty fields the run produced.
func (r *ExtractionResult) FieldCount() int {
	n := 0
	for _, v := range r.Fields {
		if v != "" {
			n++
		}
	}
	return n
}
