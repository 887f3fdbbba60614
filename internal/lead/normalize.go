package lead

import (
	"encoding/json"
	"io"
	"strings"
)

// Normalize coerces an arbitrary untrusted JSON object into a Submission.
// Non-string values become absent, strings are trimmed, and empty-after-trim
// becomes absent. Normalization never fails; it only narrows types, so a
// body that is not a JSON object yields an empty Submission and falls out at
// validation.
func Normalize(raw map[string]any) Submission {
	return Submission{
		Name:         field(raw, "name"),
		Email:        field(raw, "email"),
		Phone:        field(raw, "phone"),
		City:         field(raw, "city"),
		State:        field(raw, "state"),
		AverageBill:  field(raw, "averageBill"),
		PropertyType: field(raw, "propertyType"),
		Message:      field(raw, "message"),
		Website:      field(raw, "website"),
		PagePath:     field(raw, "page_path"),
		Referrer:     field(raw, "referrer"),
		UTMSource:    field(raw, "utm_source"),
		UTMMedium:    field(raw, "utm_medium"),
		UTMCampaign:  field(raw, "utm_campaign"),
		UTMTerm:      field(raw, "utm_term"),
		UTMContent:   field(raw, "utm_content"),
	}
}

// Decode reads a request body into the generic object Normalize expects.
// Malformed JSON is treated as an empty payload.
func Decode(body io.Reader) map[string]any {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil
	}
	return raw
}

func field(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
