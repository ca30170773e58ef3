package oneinch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/httpclient"
)

// errorBody is the shape 1inch uses for failures across API families.
type errorBody struct {
	StatusCode  int    `json:"statusCode"`
	Error       string `json:"error"`
	Description string `json:"description"`
	Message     string `json:"message"`
	RequestID   string `json:"requestId"`
}

// ErrorHandler maps non-2xx responses to UPSTREAM_API_ERROR carrying the
// upstream description, else its error field, else the HTTP status text.
func ErrorHandler(statusCode int, body []byte) error {
	if statusCode < http.StatusBadRequest {
		return nil
	}

	msg := upstreamMessage(statusCode, body)
	return apperror.New(apperror.CodeUpstreamAPIError,
		apperror.WithContext(msg),
		apperror.WithStatusCode(statusCode))
}

func upstreamMessage(statusCode int, body []byte) string {
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		switch {
		case eb.Description != "":
			return eb.Description
		case eb.Error != "":
			return eb.Error
		case eb.Message != "":
			return eb.Message
		}
	}
	return fmt.Sprintf("Request failed with status code %d", statusCode)
}

// WrapTransportError converts a client-side failure into UPSTREAM_API_ERROR,
// leaving errors that already carry a code untouched.
func WrapTransportError(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	msg := err.Error()
	if errors.Is(err, httpclient.ErrDecode) {
		msg = "malformed response: " + strings.TrimPrefix(msg, httpclient.ErrDecode.Error()+": ")
	}
	return apperror.New(apperror.CodeUpstreamAPIError,
		apperror.WithCause(err),
		apperror.WithContext(msg))
}
