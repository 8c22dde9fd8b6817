package model

// Limits the client enforces before uploading a photo.  The server applies
// the same rules; checking here avoids a doomed network round-trip.
const (
	MaxPhotoBytes = 10 << 20 // 10 MiB per file
)

// AllowedPhotoTypes are the only MIME types accepted for gallery uploads.
var AllowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo belongs to exactly one event.  URL is a backend-relative path
// (/api/photos/{id}/raw) suitable for joining onto the API base URL.
type Photo struct {
	ID               string `json:"id"`
	EventID          string `json:"eventId"`
	URL              string `json:"url"`
	ContentType      string `json:"contentType"`
	SizeBytes        int64  `json:"sizeBytes"`
	OriginalFilename string `json:"originalFilename"`
	CreatedAt        Time   `json:"createdAt"`
}
