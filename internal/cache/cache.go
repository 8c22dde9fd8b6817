// Package cache is the client's synchronization layer: a transient
// in-process store of fetched resources, keyed by logical resource name.
// Mutations never patch cached values optimistically; they invalidate the
// partitions they could have changed, and the next read re-fetches.  The
// cache lives only as long as the process; the client keeps no durable
// local store beyond the session file.
package cache

// Key names one cached resource partition.
type Key string

// Singleton partitions.
const (
	Events     Key = "events"     // public events listing
	MyRsvps    Key = "my-rsvps"   // the caller's RSVPs across events
	Categories Key = "categories" // derived category set
)

// EventKey is the partition for one event snapshot.
func EventKey(id string) Key { return Key("event/" + id) }

// PhotosKey is the partition for one event's gallery.
func PhotosKey(eventID string) Key { return Key("photos/" + eventID) }

// MyFeedbackKey is the partition for the caller's feedback on one event.
func MyFeedbackKey(eventID string) Key { return Key("my-feedback/" + eventID) }

// EventFeedbackKey is the partition for the organizer's feedback list.
func EventFeedbackKey(eventID string) Key { return Key("event-feedback/" + eventID) }

// Cache maps keys to the last fetched value.  Values are stored as-is;
// each call site knows the concrete type it put in.  Single-goroutine by
// design, matching the event-loop execution model of the UI this layer
// serves.
type Cache struct {
	entries map[Key]any
}

func New() *Cache {
	return &Cache{entries: make(map[Key]any)}
}

// Get returns the cached value for key and whether one is present.
func (c *Cache) Get(key Key) (any, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a freshly fetched value.
func (c *Cache) Put(key Key, v any) {
	c.entries[key] = v
}

// Invalidate drops the given partitions so the next read re-fetches.
// Unknown keys are ignored.
func (c *Cache) Invalidate(keys ...Key) {
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// Len reports how many partitions currently hold a value.
func (c *Cache) Len() int { return len(c.entries) }
