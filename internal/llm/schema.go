package llm

// BuildVendorMatchSchema returns the JSON-Schema (draft 2020-12 subset) the
// model's reply must satisfy: one required "vendor" string constrained to the
// listed names plus the no-match sentinel.
func BuildVendorMatchSchema(vendors []string, noMatch string) map[string]any {
	allowed := make([]any, 0, len(vendors)+1)
	for _, v := range vendors {
		allowed = append(allowed, v)
	}
	allowed = append(allowed, noMatch)

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"vendor": map[string]any{
				"type": "string",
				"enum": allowed,
			},
		},
		"required": []string{"vendor"},
	}
}
