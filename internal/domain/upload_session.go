package domain

// UploadSession holds the image staged for submission while the upload modal is open.
// Bytes stays empty until a non-empty file has been chosen and decoded.
type UploadSession struct {
	Bytes    []byte
	MIMEType string
}

// Ready reports whether an image has been captured.
func (s *UploadSession) Ready() bool {
	return s != nil && len(s.Bytes) > 0
}
