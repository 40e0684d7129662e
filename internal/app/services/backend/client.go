package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Client talks to the REST backend. It is shared by every dashboard session;
// the bearer token is supplied per call.
type Client struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewClient(baseUrl string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

var errUnsuccessfulEnvelope = errors.New("envelope reported success=false")

type call struct {
	method string
	path   string
	token  string
	query  url.Values
	body   interface{}
}

// send performs the call and decodes the envelope. The returned status is the
// backend's HTTP status, zero when the request never got a response.
func send[T any](ctx context.Context, c *Client, in call) (*responses.Envelope[T], int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	target := c.BaseUrl + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	var reqBody io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return nil, 0, exceptions.ErrCannotMarshalJSON(err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, reqBody)
	if err != nil {
		c.Log.Error("backend.Client error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, target),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}
	if in.token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+in.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("backend.Client error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, in.method),
			zap.String(constvars.LoggingURLKey, target),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, exceptions.ErrBackendDecodeResponse(err, in.path)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		c.Log.Error("backend.Client unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, in.method),
			zap.String(constvars.LoggingURLKey, target),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, resp.StatusCode, exceptions.ErrBackendStatus(resp.StatusCode, in.path)
	}

	envelope := new(responses.Envelope[T])
	if resp.StatusCode == constvars.StatusNoContent || len(bytes.TrimSpace(bodyBytes)) == 0 {
		envelope.Success = true
		return envelope, resp.StatusCode, nil
	}

	if err := json.Unmarshal(bodyBytes, envelope); err != nil {
		c.Log.Error("backend.Client error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, target),
			zap.Int(constvars.LoggingResponseLenKey, len(bodyBytes)),
			zap.Error(err),
		)
		return nil, resp.StatusCode, exceptions.ErrBackendDecodeResponse(err, in.path)
	}
	if !envelope.Success {
		c.Log.Error("backend.Client unsuccessful envelope",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, target),
			zap.String("backend_message", envelope.Message),
		)
		return nil, resp.StatusCode, exceptions.ErrBackendUnsuccessful(fmt.Errorf("%w: %s", errUnsuccessfulEnvelope, envelope.Message), in.path)
	}
	return envelope, resp.StatusCode, nil
}
