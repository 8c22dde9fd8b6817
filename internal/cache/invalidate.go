package cache

// Mutation identifies a state-changing operation for the purpose of cache
// invalidation.  The mapping below is deliberately exact: invalidating
// more would waste refetches, invalidating less would leave stale views.
type Mutation int

const (
	RsvpUpsert Mutation = iota
	RsvpCancel
	EventUpdate
	EventDelete
	PhotoUpload
	PhotoDelete
	FeedbackUpsert
)

// Invalidations returns the partitions a successful mutation dirties.
//
//	RSVP upsert/cancel   -> my RSVPs, the event, the events list
//	event update         -> the event, the events list, categories (set may grow)
//	event delete         -> the events list, categories
//	photo upload/delete  -> the event's gallery
//	feedback upsert      -> my feedback; plus the organizer's feedback list,
//	                        but only when the viewer is the organizer (no one
//	                        else ever fetched that partition)
//
// Callers apply this only after the mutation's success response, never
// speculatively.
func Invalidations(m Mutation, eventID string, viewerIsOrganizer bool) []Key {
	switch m {
	case RsvpUpsert, RsvpCancel:
		return []Key{MyRsvps, EventKey(eventID), Events}
	case EventUpdate:
		return []Key{EventKey(eventID), Events, Categories}
	case EventDelete:
		return []Key{Events, Categories}
	case PhotoUpload, PhotoDelete:
		return []Key{PhotosKey(eventID)}
	case FeedbackUpsert:
		keys := []Key{MyFeedbackKey(eventID)}
		if viewerIsOrganizer {
			keys = append(keys, EventFeedbackKey(eventID))
		}
		return keys
	}
	return nil
}

// ApplyMutation drops every partition the mutation dirties.
func (c *Cache) ApplyMutation(m Mutation, eventID string, viewerIsOrganizer bool) {
	c.Invalidate(Invalidations(m, eventID, viewerIsOrganizer)...)
}
