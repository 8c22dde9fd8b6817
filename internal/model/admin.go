package model

// Records returned by the admin analytics endpoints.

// Counts is the headline dashboard numbers.
type Counts struct {
	Users          int64 `json:"users"`
	EventsTotal    int64 `json:"eventsTotal"`
	EventsApproved int64 `json:"eventsApproved"`
	EventsPending  int64 `json:"eventsPending"`
	RsvpsTotal     int64 `json:"rsvpsTotal"`
}

// PopularEvent ranks an event by RSVP count.
type PopularEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	RsvpCount int64  `json:"rsvpCount"`
}

// ActivityRecord is one row of the recent-activity feed.
type ActivityRecord struct {
	Timestamp   Time   `json:"timestamp"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// OrganizerStats is one row of the organizer leaderboard.
type OrganizerStats struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	EventsCreated int64  `json:"eventsCreated"`
	TotalRsvps    int64  `json:"totalRsvps"`
}
