package models

// UserProfile is the page owner's public profile, supplied by the data
// source and read-only here.
type UserProfile struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	ShowAmounts bool   `json:"show_amounts"`
	Name        string `json:"name,omitempty"`
}

// SubscribeRequest is the payload for the outbound notification
// registration call.
type SubscribeRequest struct {
	OwnerID string `json:"owner_id"`
	Phone   string `json:"phone"`
	Name    string `json:"name,omitempty"`
}
