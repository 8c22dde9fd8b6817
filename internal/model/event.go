package model

// Approval states an event moves through.  Events are created PENDING and
// become visible to students once an admin approves them.
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Event is the client-side projection of an event as returned by the
// backend.  IDs are opaque strings (the server uses UUIDs).  The client
// never mutates these snapshots in place; edits go through the API and the
// fresh copy is re-fetched.
//
// Fields:
//  ID              – opaque identifier of the event.
//  Title           – display title.
//  Description     – free-text description, may be empty.
//  StartTime       – when the event starts.
//  Location        – free-text venue.
//  Category        – free-text category label.
//  OrganizerEmail  – email of the creating organizer; drives ownership checks.
//  ApprovalStatus  – PENDING, APPROVED or REJECTED.
//  RejectionReason – reason supplied by the admin when rejected, else empty.
type Event struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartTime       Time   `json:"startTime"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	OrganizerEmail  string `json:"organizerEmail,omitempty"`
	ApprovalStatus  string `json:"approvalStatus,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}
