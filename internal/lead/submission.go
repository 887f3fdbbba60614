package lead

// Submission is the normalized, not-yet-validated contact form data. Every
// field is a trimmed string; the empty string means the field was absent from
// the request (or was not a string at all). A Submission is built once per
// request and never mutated after validation.
type Submission struct {
	Name         string
	Email        string
	Phone        string
	City         string
	State        string
	AverageBill  string
	PropertyType string
	Message      string

	// Website is the honeypot field. Humans never see it; a non-empty value
	// marks the submission as automated.
	Website string

	PagePath    string
	Referrer    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMTerm     string
	UTMContent  string
}

// IsBot reports whether the hidden honeypot field was filled in.
func (s Submission) IsBot() bool {
	return s.Website != ""
}
