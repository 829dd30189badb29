package photoapiimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	"github.com/orgball2608/photoshare-client/pkg/config"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

const apiPrefix = "/api/v1"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type HttpClient struct {
	baseURL  string
	client   *http.Client
	validate *validator.Validate
	logger   logger.Logger
}

func New(opts Opts) *HttpClient {
	return NewWithHTTPClient(opts.Config.API.BaseURL, &http.Client{}, opts.Logger)
}

// NewWithHTTPClient builds a client against baseURL. The http.Client must not
// carry a timeout; requests are bounded by their context only.
func NewWithHTTPClient(baseURL string, client *http.Client, log logger.Logger) *HttpClient {
	return &HttpClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log.WithComponent("PhotoAPI"),
	}
}

var _ photoapi.Client = (*HttpClient)(nil)

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *HttpClient) endpoint(format string, args ...any) string {
	return c.baseURL + apiPrefix + fmt.Sprintf(format, args...)
}

// do sends req and reads the whole body. Only transport failures are errors here.
func (c *HttpClient) do(req *http.Request, operation string) (response, error) {
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Request failed", "operation", operation, "url", req.URL.String(), "error", err)
		return response{}, perrors.Transport(err, operation+" request failed")
	}
	defer safeClose(res.Body, c.logger)

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.Error("Failed to read response body", "operation", operation, "error", err)
		return response{}, perrors.Transport(err, operation+" response unreadable")
	}

	if res.StatusCode >= 300 {
		c.logger.Warn("Non-2xx response", "operation", operation, "status", res.StatusCode, "body", truncate(body, 256))
	}

	return response{status: res.StatusCode, body: body}, nil
}

func (c *HttpClient) newJSONRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, perrors.Transport(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// decode parses body into v and validates it. Unparsable bodies are transport
// failures; parsed values that break the schema are schema failures.
func (c *HttpClient) decode(body []byte, v any, operation string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return perrors.Transport(err, operation+" response is not valid JSON")
	}
	return c.check(v, operation)
}

func (c *HttpClient) check(v any, operation string) error {
	if err := c.validate.Struct(v); err != nil {
		return perrors.Schema(err, operation+" response does not match schema")
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func safeClose(closer io.Closer, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
