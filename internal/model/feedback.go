package model

// MaxFeedbackComment caps the optional comment length, mirroring the
// server-side column limit.
const MaxFeedbackComment = 1000

// Feedback is one user's rating of one event.  The server upserts on the
// (UserID, EventID) pair, so submitting twice updates the earlier record.
// UserName and UserEmail are hints the organizer view displays; they are
// empty in responses about the caller's own feedback.
type Feedback struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	EventID   string `json:"eventId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	CreatedAt Time   `json:"createdAt"`
	UpdatedAt Time   `json:"updatedAt"`
}
