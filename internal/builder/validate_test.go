package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaFirstFailingRuleWins(t *testing.T) {
	schema := Schema{
		"tagline": {
			{Required: true, Message: "Tagline is required"},
			{MaxLength: 5, Message: "Tagline must be less than 5 characters"},
		},
	}

	errs := schema.Validate(map[string]string{"tagline": ""})
	assert.Equal(t, "Tagline is required", errs["tagline"])

	errs = schema.Validate(map[string]string{"tagline": "much too long"})
	assert.Equal(t, "Tagline must be less than 5 characters", errs["tagline"])

	errs = schema.Validate(map[string]string{"tagline": "ok"})
	assert.True(t, errs.Ok())
}

func TestSchemaOptionalFieldSkipsChecksWhenEmpty(t *testing.T) {
	schema := Schema{
		"email": {
			{Pattern: EmailPattern, Message: "Please enter a valid email address"},
		},
	}

	// No Required rule: an empty value passes, a bad value fails.
	assert.True(t, schema.Validate(map[string]string{"email": ""}).Ok())
	assert.False(t, schema.Validate(map[string]string{"email": "nope"}).Ok())
	assert.True(t, schema.Validate(map[string]string{"email": "jane@example.com"}).Ok())
}

func TestSchemaValidateField(t *testing.T) {
	schema := Schema{
		"website": {
			{Pattern: URLPattern, Message: "Please enter a valid URL starting with http:// or https://"},
		},
	}

	assert.Empty(t, schema.ValidateField("website", "https://example.com"))
	assert.Equal(t,
		"Please enter a valid URL starting with http:// or https://",
		schema.ValidateField("website", "example.com"))
	assert.Empty(t, schema.ValidateField("unknown_field", "anything"))
}

func TestSchemaRequiredTrimsWhitespace(t *testing.T) {
	schema := Schema{
		"overview": {
			{Required: true, Message: "About section is required"},
			{MinLength: 20, Message: "About section must be at least 20 characters"},
		},
	}

	assert.Equal(t, "About section is required",
		schema.Validate(map[string]string{"overview": "   "})["overview"])
	assert.Equal(t, "About section must be at least 20 characters",
		schema.Validate(map[string]string{"overview": "too short"})["overview"])
}

func TestSchemaCheckRule(t *testing.T) {
	schema := Schema{
		"level": {
			{Check: func(v string) string {
				if v == "Guru" {
					return "Unknown level"
				}
				return ""
			}},
		},
	}

	assert.True(t, schema.Validate(map[string]string{"level": "Expert"}).Ok())
	assert.Equal(t, "Unknown level", schema.Validate(map[string]string{"level": "Guru"})["level"])
}
