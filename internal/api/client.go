// Package api is the REST collaborator for the futsal booking backend. Every
// response arrives in the {status, message, data} envelope; every failure is
// normalized into *Error with a sentinel mark (see error.go). Authentication
// rides on a server-managed session cookie held in the client's jar.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/pkg/config"
	"futsalku-client/internal/pkg/errs"
)

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

func New(cfg config.APIConfig, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create cookie jar")
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		logger: logger,
	}, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs a JSON round trip. body may be nil; out may be nil for calls
// whose data payload is irrelevant to the caller.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "failed to encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart performs a multipart/form-data round trip for the field
// create/update endpoints. upload may be nil to omit the image part.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, upload *request.FieldUpload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return errs.Wrap(err, "failed to write form field")
		}
	}
	if upload != nil && upload.Reader != nil {
		part, err := w.CreateFormFile("image", upload.Filename)
		if err != nil {
			return errs.Wrap(err, "failed to create image part")
		}
		if _, err := io.Copy(part, upload.Reader); err != nil {
			return errs.Wrap(err, "failed to copy image data")
		}
	}
	if err := w.Close(); err != nil {
		return errs.Wrap(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed before a response arrived",
			"method", req.Method, "path", req.URL.Path, "error", err)
		return newTransportError(err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return newTransportError(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errs.Wrap(err, fmt.Sprintf("malformed envelope (status %d)", res.StatusCode))
	}

	if res.StatusCode >= 400 || env.Status == "error" {
		c.logger.Debug("request rejected",
			"method", req.Method, "path", req.URL.Path, "status", res.StatusCode)
		return newStatusError(res.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errs.Wrap(err, "failed to decode envelope data")
		}
	}
	return nil
}
