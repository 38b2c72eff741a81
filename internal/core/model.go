package core

import (
	"time"
)

// Result is the opaque structured payload returned by the remote analysis
// service. It is formatted and written out, never interpreted.
type Result map[string]interface{}

// Detection is a single detection rule sent with an analyze request
type Detection struct {
	Detection string `json:"detection"`
}

// AnalyzeRequest carries either a raw email message or an enriched message
// data model, plus the detection rules to evaluate it against. Exactly one
// of Message and DataModel is set.
type AnalyzeRequest struct {
	Message    string
	DataModel  string
	Detections []Detection
}

// CacheEntry is a cached analysis result keyed by request digest
type CacheEntry struct {
	Digest    string
	Operation string
	Payload   []byte
	LastSeen  time.Time
	ExpiresAt time.Time
}
