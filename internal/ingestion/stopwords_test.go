package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"Built", "Node.js", "APIs", ",", "in", "C++", "."},
		Tokenize("Built Node.js APIs, in C++."))
}

func TestRemoveStopWords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"I have experience with C and R and Go.", "experience C R Go"},
		{"The team is using Kubernetes!", "team Kubernetes"},
		{"", ""},
		{"... , ;", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RemoveStopWords(tt.input), "input %q", tt.input)
	}
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("The"))
	assert.False(t, IsStopWord("Python"))
}
