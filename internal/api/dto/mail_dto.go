package dto

// SendEmailRequest is the transactional email payload relayed to the
// delivery provider.
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
