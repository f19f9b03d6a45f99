package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/errutil"
)

var ErrEmptyBody = errors.New("unexpected empty response body")

func ReadResponseBody(ctx context.Context, resp *http.Response) ([]byte, error) {
	respBody, err := io.ReadAll(resp.Body)
	if nil != err {
		switch {
		case errutil.IsContext(ctx):
			return nil, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			return nil, context.DeadlineExceeded
		default:
			flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP()}
			return nil, flaw.From(fmt.Errorf("failed to read response body: %v", err)).Append(flawP)
		}
	}
	if len(respBody) == 0 {
		return nil, ErrEmptyBody
	}
	return respBody, nil
}

func ReadOptionalResponseBody(ctx context.Context, resp *http.Response) ([]byte, error) {
	respBody, err := ReadResponseBody(ctx, resp)
	if nil != err && !errors.Is(err, ErrEmptyBody) {
		return nil, err
	}
	return respBody, nil
}

// APIError is the regular error object of the Spotify Web API.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func ParseAPIError(b []byte) (*APIError, error) {
	var body struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(b, &body); nil != err {
		flawP := flaw.P{"response_body": string(b), "err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, flaw.From(fmt.Errorf("failed to decode error response body: %v", err)).Append(flawP)
	}
	if nil == body.Error {
		return nil, flaw.From(errors.New("error response body has no error object")).Append(flaw.P{"response_body": string(b)})
	}
	return body.Error, nil
}

func IsTokenExpiredUnauthorizedResponse(b []byte) (bool, error) {
	apiErr, err := ParseAPIError(b)
	if nil != err {
		return false, err
	}
	return apiErr.Status == http.StatusUnauthorized && apiErr.Message == "The access token expired", nil
}
