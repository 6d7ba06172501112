package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		fields []string
	}{
		{name: "empty object", doc: `{}`},
		{name: "full", doc: `{"port": 9000, "listing_sources": ["internshala", "linkedin"], "use_browser": true, "max_upload_mb": 5}`},
		{name: "port out of range", doc: `{"port": 70000}`, fields: []string{"port"}},
		{name: "unknown source", doc: `{"listing_sources": ["indeed"]}`, fields: []string{"listing_sources.0"}},
		{name: "duplicate sources", doc: `{"listing_sources": ["linkedin", "linkedin"]}`, fields: []string{"listing_sources"}},
		{name: "wrong type", doc: `{"use_browser": "yes"}`, fields: []string{"use_browser"}},
		{name: "unknown field", doc: `{"api_key": "x"}`, fields: []string{"(root)"}},
		{name: "zero timeout", doc: `{"fetch_timeout_seconds": 0}`, fields: []string{"fetch_timeout_seconds"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig([]byte(tt.doc))
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "config", verr.Document)
			var got []string
			for _, fe := range verr.Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidateConfig_NotJSON(t *testing.T) {
	err := ValidateConfig([]byte(`{ not json`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "document is not valid JSON", verr.Errors[0].Message)
}

func TestValidationError_Format(t *testing.T) {
	err := ValidateConfig([]byte(`{"port": "eighty"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config failed validation:\n  1. port: ")
}

func TestCompile_BadSchema(t *testing.T) {
	_, err := compile("broken.schema.json", `{"type": 12}`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken.schema.json", loadErr.Schema)
	assert.NotNil(t, errors.Unwrap(err))
}
