package dto

// EmailWebhookRequest is the payload delivered by the mailbox forwarder.
// The forwarder has already stripped MIME framing; at least one of the
// body fields must carry the confirmation text.
type EmailWebhookRequest struct {
	FromEmail string `json:"from_email" validate:"omitempty,email"`
	Subject   string `json:"subject"`
	BodyText  string `json:"body_text"`
	BodyHTML  string `json:"body_html"`
}

// ManualBlockRequest blocks a date range without a source reservation,
// e.g. for walk-in guests or maintenance windows.
type ManualBlockRequest struct {
	Checkin      string `json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout     string `json:"checkout" validate:"required,datetime=2006-01-02"`
	PropertyID   string `json:"property_id"`
	BlockAirbnb  bool   `json:"block_airbnb"`
	BlockBooking bool   `json:"block_booking"`
}

// SyncAcceptedResponse acknowledges an ingestion request. The blocking work
// itself runs in the background; callers poll the booking endpoints for the
// task outcome.
type SyncAcceptedResponse struct {
	BookingID string   `json:"booking_id"`
	TaskIDs   []string `json:"task_ids"`
	Status    string   `json:"status"`
}
