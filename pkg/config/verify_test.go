package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
	})

	t.Run("minimum violated", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.Pipeline.MaxItems = 0
		err = VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pipeline.max_items must be at least 1")
	})

	t.Run("required key missing", func(t *testing.T) {
		schema := `{"$ref":"#/$defs/Config","$defs":{"Config":{"type":"object","required":["nope"]}}}`
		err := verifyAgainstSchema(&Config{}, []byte(schema))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope is required")
	})

	t.Run("bad schema", func(t *testing.T) {
		err := verifyAgainstSchema(&Config{}, []byte("{"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse schema")
	})
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)
	require.NotNil(t, schema.Definitions["Config"])
	assert.NotNil(t, schema.Definitions["NewsAPIConfig"])
}
