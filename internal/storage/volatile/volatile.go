package volatile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/file-uploader-mcp/internal/upload"
)

// UploadPath is the endpoint path, relative to the base URL
const UploadPath = "/upload_volatile"

// Multipart field names
const (
	FieldFile        = "file"
	FieldExpireAfter = "expire_after"
)

// Response is the JSON contract of the upload endpoint
type Response struct {
	Result *bool   `json:"result" validate:"required"`
	URL    *string `json:"url,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// decode fills r from the exact lowercase keys of body. encoding/json alone
// would also accept "RESULT" or "Url".
func (r *Response) decode(body []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return err
	}
	for _, f := range []struct {
		key string
		dst any
	}{
		{"result", &r.Result},
		{"url", &r.URL},
		{"error", &r.Error},
	} {
		v, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
	}
	return nil
}

// Config contains configuration for the volatile storage client
type Config struct {
	BaseURL   string
	AuthToken string        // Optional, sent as a bearer credential
	Timeout   time.Duration // Optional, zero means no client-side timeout
}

// Client uploads files to a volatile storage HTTP endpoint
type Client struct {
	client    *resty.Client
	authToken string
	validate  *validator.Validate
}

// New creates a new volatile storage client
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetLogger(restyLogger{})
	if cfg.Timeout > 0 {
		cli.SetTimeout(cfg.Timeout)
	}

	return &Client{
		client:    cli,
		authToken: cfg.AuthToken,
		validate:  validator.New(),
	}, nil
}

// Upload sends req in a single multipart POST and returns the URL of the stored file
func (c *Client) Upload(ctx context.Context, req upload.Request) (string, error) {
	r := c.client.R().
		SetContext(ctx).
		SetMultipartField(FieldFile, req.File.Filename, req.MimeType, bytes.NewReader(req.File.Data)).
		SetMultipartFormData(map[string]string{
			FieldExpireAfter: strconv.FormatInt(req.ExpireAfter, 10),
		})
	if c.authToken != "" {
		r.SetAuthToken(c.authToken)
	}

	log.Debug().
		Str("filename", req.File.Filename).
		Str("mime_type", req.MimeType).
		Int("size", len(req.File.Data)).
		Int64("expire_after", req.ExpireAfter).
		Msg("sending volatile upload")

	resp, err := r.Post(UploadPath)
	if err != nil {
		// a client timeout is a transport failure, only the caller's context cancels
		return "", upload.TransportError(ctx, "", err)
	}

	return c.parseResponse(resp.StatusCode(), resp.Body())
}

// parseResponse checks status, JSON syntax, contract shape and contract
// invariants, in that order
func (c *Client) parseResponse(status int, body []byte) (string, error) {
	raw := string(body)

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", &upload.Error{Kind: upload.KindHTTP, Status: status, Body: raw}
	}

	if !json.Valid(body) {
		return "", &upload.Error{Kind: upload.KindMalformedResponse, Body: raw}
	}

	var parsed Response
	if err := parsed.decode(body); err != nil {
		return "", &upload.Error{Kind: upload.KindInvalidResponseSchema, Detail: err.Error(), Body: raw}
	}
	if err := c.validate.Struct(parsed); err != nil {
		return "", &upload.Error{Kind: upload.KindInvalidResponseSchema, Detail: err.Error(), Body: raw}
	}

	if !*parsed.Result {
		msg := "Unknown error"
		if parsed.Error != nil && *parsed.Error != "" {
			msg = *parsed.Error
		}
		return "", &upload.Error{Kind: upload.KindUploadRejected, Detail: msg, Body: raw}
	}

	if parsed.URL == nil || *parsed.URL == "" {
		return "", &upload.Error{Kind: upload.KindMissingURL, Body: raw}
	}

	return *parsed.URL, nil
}

// restyLogger sends resty's internal messages to the global zerolog logger
type restyLogger struct{}

// Errorf logs at debug level, the error itself is returned to the caller
func (restyLogger) Errorf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}
