package model

// RSVP statuses.  There is no CANCELLED status: cancelling deletes the
// record, so the absence of an RSVP means "not going".
const (
	RsvpGoing      = "GOING"
	RsvpInterested = "INTERESTED"
)

// Rsvp links a user to an event.  The (UserID, EventID) pair is unique on
// the server.
type Rsvp struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	EventID   string `json:"eventId"`
	Status    string `json:"status"`
	CreatedAt Time   `json:"createdAt"`
	UpdatedAt Time   `json:"updatedAt"`
}
