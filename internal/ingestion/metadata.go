package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one ingested document or page.
type Metadata struct {
	Source       string `json:"source"`
	URL          string `json:"url,omitempty"`
	Type         string `json:"type,omitempty"`
	Platform     string `json:"platform,omitempty"`
	Timestamp    string `json:"timestamp"` // RFC3339
	Hash         string `json:"hash"`      // SHA256 of the cleaned text
	RawChars     int    `json:"raw_chars"`
	CleanedChars int    `json:"cleaned_chars"`
	FromCache    bool   `json:"from_cache,omitempty"`
}

// NewMetadata stamps cleaned content taken from source.
func NewMetadata(source, raw, cleaned string) *Metadata {
	return &Metadata{
		Source:       source,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Hash:         computeHash(cleaned),
		RawChars:     len([]rune(raw)),
		CleanedChars: len([]rune(cleaned)),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return data, nil
}
