package photoapiimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/orgball2608/photoshare-client/internal/domain"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
)

type commentRequest struct {
	Content string `json:"content"`
}

func (c *HttpClient) ListComments(ctx context.Context, photoID string) ([]domain.Comment, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, c.endpoint("/photos/%s/comments", url.PathEscape(photoID)), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.do(req, "list comments")
	if err != nil {
		return nil, err
	}
	if res.status == http.StatusNotFound {
		return nil, perrors.NotFound("photo " + photoID + " not found")
	}
	if !res.ok() {
		return nil, perrors.UnexpectedStatus(res.status, "list comments failed")
	}

	var comments []domain.Comment
	if err := json.Unmarshal(res.body, &comments); err != nil {
		return nil, perrors.Transport(err, "list comments response is not valid JSON")
	}
	for i := range comments {
		if err := c.check(&comments[i], "list comments"); err != nil {
			return nil, err
		}
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	c.logger.Debug("Comments fetched", "photo_id", photoID, "count", len(comments))
	return comments, nil
}

func (c *HttpClient) PostComment(ctx context.Context, photoID, content, idToken string) (*domain.Comment, error) {
	payload, err := json.Marshal(commentRequest{Content: content})
	if err != nil {
		return nil, perrors.Transport(err, "failed to encode comment")
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, c.endpoint("/photos/%s/comments", url.PathEscape(photoID)), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+idToken)

	res, err := c.do(req, "post comment")
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return nil, perrors.UnexpectedStatus(res.status, "post comment failed")
	}

	var comment domain.Comment
	if err := c.decode(res.body, &comment, "post comment"); err != nil {
		return nil, err
	}

	c.logger.Info("Comment posted", "photo_id", photoID, "comment_id", comment.ID)
	return &comment, nil
}
