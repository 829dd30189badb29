package domain

import "time"

// Photo is a single uploaded image record with EXIF-like metadata and ownership.
type Photo struct {
	ID           string    `json:"id" validate:"required"`
	FileURL      string    `json:"file_url" validate:"omitempty,url"`
	Width        int       `json:"width" validate:"gte=0"`
	Height       int       `json:"height" validate:"gte=0"`
	CameraModel  string    `json:"camera_model"`
	ISO          int       `json:"iso" validate:"gte=0"`
	FValue       float64   `json:"f_value" validate:"gte=0"`
	ShutterSpeed string    `json:"shutter_speed"`
	TakenAt      time.Time `json:"taken_at"`
	CreatedAt    time.Time `json:"created_at"`
	User         *User     `json:"user,omitempty"`
}

// AspectRatio is height/width, or 1 when either dimension is absent.
func (p *Photo) AspectRatio() float64 {
	if p == nil || p.Width <= 0 || p.Height <= 0 {
		return 1
	}
	return float64(p.Height) / float64(p.Width)
}
