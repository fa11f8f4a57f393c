// Package registrysvc is the HTTP client of the alumni Record Store API.
package registrysvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
	"github.com/trezcool/alumni/core/dashboard"
)

const (
	recordsPath        = "/api/alumni/info"
	forgetPasswordPath = "/api/auth/forget-password"

	maxErrorBody = 4 << 10
)

// StatusError is returned for a non-2xx response that is not a validation failure.
type StatusError struct {
	Code    int
	Message string
}

func (err *StatusError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("registry: %d %s", err.Code, http.StatusText(err.Code))
	}
	return fmt.Sprintf("registry: %d %s", err.Code, err.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

var _ dashboard.Client = (*Client)(nil)

func NewClient(conf core.RegistryConfig) *Client {
	return &Client{
		baseURL: conf.BaseURL,
		http:    &http.Client{Timeout: conf.Timeout},
	}
}

type (
	dataEnvelope struct {
		Data json.RawMessage `json:"data"`
	}
	errorEnvelope struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
)

func (c *Client) FetchRecords(ctx context.Context) ([]alumni.Record, error) {
	var recs []alumni.Record
	if err := c.do(ctx, http.MethodGet, recordsPath, nil, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []alumni.Record{}
	}
	return recs, nil
}

func (c *Client) SubmitRecord(ctx context.Context, nr alumni.NewRecord) (alumni.Record, error) {
	var rec alumni.Record
	if err := c.do(ctx, http.MethodPost, recordsPath, nr, &rec); err != nil {
		return alumni.Record{}, err
	}
	return rec, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, forgetPasswordPath, map[string]string{"email": email}, nil)
}

// do sends body as JSON and decodes the `data` of the response into out (if not nil).
// A response carrying field errors is returned as a *core.ValidationError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}

	var env dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	if len(env.Data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(env.Data, out), "decoding response data")
}

func decodeError(resp *http.Response) error {
	var env errorEnvelope
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&env)

	if len(env.Errors) > 0 {
		names := make([]string, 0, len(env.Errors))
		for name := range env.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]core.FieldError, 0, len(names))
		for _, name := range names {
			fields = append(fields, core.FieldError{Field: name, Error: env.Errors[name]})
		}
		return core.NewValidationError(nil, fields...)
	}
	return &StatusError{Code: resp.StatusCode, Message: env.Error}
}
