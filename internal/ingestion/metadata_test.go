package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("resume.pdf", "Résumé  text", "Résumé text")

	assert.Equal(t, "resume.pdf", meta.Source)
	assert.Equal(t, 12, meta.RawChars)
	assert.Equal(t, 11, meta.CleanedChars)
	assert.Equal(t, computeHash("Résumé text"), meta.Hash)
	assert.Len(t, meta.Hash, 64)

	_, err := time.Parse(time.RFC3339, meta.Timestamp)
	assert.NoError(t, err)
}

func TestComputeHash(t *testing.T) {
	assert.Equal(t, computeHash("a"), computeHash("a"))
	assert.NotEqual(t, computeHash("a"), computeHash("b"))
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := &Metadata{Source: "jd.txt", Timestamp: "2024-01-01T00:00:00Z", Hash: "abcd", Type: "txt"}

	data, err := meta.ToJSON()
	require.NoError(t, err)

	var back Metadata
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *meta, back)
	assert.NotContains(t, string(data), "platform")
}
