package domain

// InsightKind names the request shapes accepted by the insight collaborator.
type InsightKind string

const (
	InsightItemDescription InsightKind = "item_description"
	InsightEmailBody       InsightKind = "email_body"
	InsightDashboard       InsightKind = "dashboard"
)

// InsightResult is generated text plus whether it came from the local
// fallback instead of the collaborator.
type InsightResult struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// EmailDraft is a mail-client draft for sending an invoice. Nothing is delivered.
type EmailDraft struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailtoURL"`
}
