package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var names = []string{"Acme Supply", "Blue River Plumbing"}

func TestVendorMatchSchemaAcceptsListedName(t *testing.T) {
	schema := BuildVendorMatchSchema(names, "NO_MATCH")
	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"vendor": "Acme Supply"}`)))
	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"vendor": "NO_MATCH"}`)))
}

func TestVendorMatchSchemaRejectsUnlistedName(t *testing.T) {
	schema := BuildVendorMatchSchema(names, "NO_MATCH")
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"vendor": "Acme Supply Inc"}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"vendor": "acme supply"}`)), "case matters")
}

func TestVendorMatchSchemaRejectsShapeErrors(t *testing.T) {
	schema := BuildVendorMatchSchema(names, "NO_MATCH")
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{}`)), "vendor is required")
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"vendor": "NO_MATCH", "extra": 1}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`"Acme Supply"`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`not json`)))
}

func TestBuildVendorUserPromptNumbersTheList(t *testing.T) {
	prompt := BuildVendorUserPrompt(names, "some document text")
	assert.Contains(t, prompt, "1. Acme Supply\n")
	assert.Contains(t, prompt, "2. Blue River Plumbing\n")
	assert.True(t, strings.HasSuffix(prompt, "some document text"))
}

func TestBuildVendorSystemPromptCarriesSentinel(t *testing.T) {
	assert.Contains(t, BuildVendorSystemPrompt("NO_MATCH"), "NO_MATCH")
}
