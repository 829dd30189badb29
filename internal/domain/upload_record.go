package domain

import "time"

// UploadRecord is the gallery's local trace of a successful upload.
type UploadRecord struct {
	ID         int
	PhotoID    string
	UserID     string
	FileURL    string
	UploadedAt time.Time
}
