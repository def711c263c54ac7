package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"shareit/internal/errors"
	"shareit/internal/handler"
	"shareit/internal/logging"
)

// Request is one call forwarded to the server tier.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// UserID is sent as the identity header when positive.
	UserID int64
	// Body is JSON encoded when not nil.
	Body      any
	RequestID string
}

// Response is the server's answer, relayed as is.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Client forwards validated requests to the ShareIt server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewClient constructs a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.Component(logger, "gateway-client"),
	}
}

// Forward performs req against the server. Non-2xx answers are not errors:
// the caller relays them. Transport failures are logged and reported as
// errors.ErrServerUnavailable without details.
func (c *Client) Forward(ctx context.Context, req Request) (*Response, error) {
	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if req.UserID > 0 {
		httpReq.Header.Set(handler.HeaderUserID, strconv.FormatInt(req.UserID, 10))
	}
	if req.RequestID != "" {
		httpReq.Header.Set(echo.HeaderXRequestID, req.RequestID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("server call failed")
		return nil, errors.ErrServerUnavailable
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error().Err(err).Str("path", req.Path).Msg("read server response")
		return nil, errors.ErrServerUnavailable
	}
	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Msg("server call")
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get(echo.HeaderContentType),
		Body:        data,
	}, nil
}
