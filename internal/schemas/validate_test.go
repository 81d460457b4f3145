package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for _, name := range []string{SkillDatabase, Analysis} {
		t.Run(name, func(t *testing.T) {
			data, err := Load(name)
			require.NoError(t, err)

			var v map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &v))
			assert.Equal(t, "object", v["type"])
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("nope.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_SkillDatabase(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{
			name:      "minimal",
			doc:       `{"categories":[{"name":"tools","skills":["Git"]}]}`,
			wantError: false,
		},
		{
			name:      "with tables",
			doc:       `{"categories":[{"name":"tools","skills":["Docker"]}],"abbreviations":{"K8s":"Kubernetes"},"synonyms":{"Docker":["docker-ce"]},"relationships":{"Docker":["Kubernetes"]}}`,
			wantError: false,
		},
		{
			name:      "missing categories",
			doc:       `{"abbreviations":{}}`,
			wantError: true,
		},
		{
			name:      "empty category name",
			doc:       `{"categories":[{"name":"","skills":[]}]}`,
			wantError: true,
		},
		{
			name:      "synonyms wrong type",
			doc:       `{"categories":[{"name":"tools","skills":[]}],"synonyms":{"Git":"git"}}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(SkillDatabase, []byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type, got %T", err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_AnalysisStatusEnum(t *testing.T) {
	doc := `{
		"candidate": {"categories": [], "all_skills": []},
		"requirement": {"categories": [], "all_skills": []},
		"report": {"match_percentage": 0, "matched": [], "missing": []},
		"status": "Great",
		"recommendations": []
	}`

	err := Validate(Analysis, []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(SkillDatabase, []byte("{ invalid json }"))
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "malformed input should surface as SchemaLoadError, got %T", err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "skills.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"categories":[{"name":"lang","skills":["Go"]}]}`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"categories":[{"name":"lang"}]}`), 0644))

	assert.NoError(t, ValidateFile(SkillDatabase, good))

	err := ValidateFile(SkillDatabase, bad)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)

	err = ValidateFile(SkillDatabase, filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "not found")

	err = ValidateFile("nope.schema.json", good)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
