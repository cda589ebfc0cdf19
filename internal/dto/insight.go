package dto

// ItemDescriptionRequest asks for a description of a single invoice item.
type ItemDescriptionRequest struct {
	ItemName string `json:"itemName" binding:"required" example:"Logo design"`
}

// InsightResponse carries generated text. Fallback is true when the text is
// the local substitute used after a collaborator failure.
type InsightResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// EmailDraftResponse is a ready-to-open mail client draft.
type EmailDraftResponse struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailtoURL"`
	Fallback  bool   `json:"fallback"`
}
