package photoapiimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
)

type uploadResponse struct {
	Photo json.RawMessage `json:"photo"`
}

// UploadPhoto succeeds only on a 2xx answer carrying a schema-valid photo field.
func (c *HttpClient) UploadPhoto(ctx context.Context, upload photoapi.Upload) (*domain.Photo, error) {
	body, contentType, err := multipartBody(upload)
	if err != nil {
		return nil, perrors.Transport(err, "failed to encode upload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/photos"), body)
	if err != nil {
		return nil, perrors.Transport(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Info("Uploading photo", "user_id", upload.UserID, "bytes", len(upload.Image), "mime", upload.MIMEType)

	res, err := c.do(req, "upload")
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return nil, perrors.Upload(fmt.Sprintf("upload rejected with status %d", res.status))
	}

	var envelope uploadResponse
	if err := json.Unmarshal(res.body, &envelope); err != nil {
		return nil, perrors.Transport(err, "upload response is not valid JSON")
	}
	if len(envelope.Photo) == 0 || string(envelope.Photo) == "null" {
		return nil, perrors.Upload("upload response has no photo")
	}

	var photo domain.Photo
	if err := json.Unmarshal(envelope.Photo, &photo); err != nil {
		return nil, perrors.Schema(err, "upload response photo is malformed")
	}
	if err := c.check(&photo, "upload"); err != nil {
		return nil, err
	}

	c.logger.Info("Photo uploaded", "photo_id", photo.ID)
	return &photo, nil
}

func (c *HttpClient) GetPhoto(ctx context.Context, id string) (*domain.Photo, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, c.endpoint("/photos/%s", url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.do(req, "get photo")
	if err != nil {
		return nil, err
	}
	if res.status == http.StatusNotFound {
		return nil, perrors.NotFound(fmt.Sprintf("photo %s not found", id))
	}
	if !res.ok() {
		return nil, perrors.UnexpectedStatus(res.status, "get photo failed")
	}

	var photo domain.Photo
	if err := c.decode(res.body, &photo, "get photo"); err != nil {
		return nil, err
	}
	return &photo, nil
}

func multipartBody(upload photoapi.Upload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, imageFilename(upload.MIMEType)))
	if upload.MIMEType != "" {
		header.Set("Content-Type", upload.MIMEType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(upload.Image); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("user_id", upload.UserID); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func imageFilename(mimeType string) string {
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return "blob"
	}
	return "blob" + exts[0]
}
