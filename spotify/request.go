package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/errutil"
	"github.com/xeptore/promptgen/httputil"
	"github.com/xeptore/promptgen/must"
)

func (c *Client) do(ctx context.Context, req *http.Request, timeout time.Duration) (*http.Response, error) {
	client := http.Client{Transport: c.transport, Timeout: timeout} //nolint:exhaustruct
	if nil == c.queue {
		return client.Do(req)
	}

	var resp *http.Response
	err := c.queue.SendSingle(ctx, func() error {
		r, err := client.Do(req)
		if nil != err {
			return err
		}
		resp = r
		return nil
	})
	return resp, err
}

// get sends a GET request to the API path p and returns the body of a
// successful response. what names the requested resource in error messages.
func (c *Client) get(ctx context.Context, what, p string, reqParams url.Values, timeout time.Duration) (respBytes []byte, err error) {
	reqURL, err := url.Parse(c.baseURL + p)
	if nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, flaw.From(fmt.Errorf("failed to parse %s URL: %v", what, err)).Append(flawP)
	}
	if nil == reqParams {
		reqParams = make(url.Values, 1)
	}
	if c.market != "" {
		reqParams.Set("market", c.market)
	}
	reqURL.RawQuery = reqParams.Encode()
	flawP := flaw.P{"url": reqURL.String()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if nil != err {
		if errutil.IsContext(ctx) {
			return nil, ctx.Err()
		}

		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return nil, flaw.From(fmt.Errorf("failed to create get %s request: %v", what, err)).Append(flawP)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.do(ctx, req, timeout)
	if nil != err {
		switch {
		case errutil.IsContext(ctx):
			return nil, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			return nil, context.DeadlineExceeded
		default:
			flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
			return nil, flaw.From(fmt.Errorf("failed to send get %s request: %v", what, err)).Append(flawP)
		}
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr {
			flawP["err_debug_tree"] = errutil.Tree(closeErr).FlawP()
			closeErr = flaw.From(fmt.Errorf("failed to close get %s response body: %v", what, closeErr)).Append(flawP)
			switch {
			case nil == err:
				err = closeErr
			case errutil.IsContext(ctx):
				err = flaw.From(errors.New("context was ended")).Join(closeErr)
			case errors.Is(err, context.DeadlineExceeded):
				err = flaw.From(errors.New("timeout has reached")).Join(closeErr)
			case errors.Is(err, ErrTooManyRequests):
				err = flaw.From(errors.New("too many requests")).Join(closeErr)
			case errors.Is(err, ErrUnauthorized):
				err = flaw.From(errors.New("unauthorized")).Join(closeErr)
			case errors.Is(err, ErrNotFound):
				err = flaw.From(errors.New("not found")).Join(closeErr)
			case errutil.IsFlaw(err):
				err = must.BeFlaw(err).Join(closeErr)
			default:
				panic(errutil.UnknownError(err))
			}
		}
	}()
	flawP["response"] = errutil.HTTPResponseFlawPayload(resp)

	switch code := resp.StatusCode; code {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		retryAfter, _ := errutil.RetryAfter(resp)
		return nil, &TooManyRequestsError{RetryAfter: retryAfter}
	default:
		respBytes, err := httputil.ReadOptionalResponseBody(ctx, resp)
		if nil != err {
			return nil, err
		}
		flawP["response_body"] = string(respBytes)
		if apiErr, err := httputil.ParseAPIError(respBytes); nil == err {
			flawP["api_error_message"] = apiErr.Message
		}
		return nil, flaw.From(fmt.Errorf("unexpected status code: %d", code)).Append(flawP)
	}

	respBytes, err = httputil.ReadResponseBody(ctx, resp)
	if nil != err {
		if errors.Is(err, httputil.ErrEmptyBody) {
			return nil, flaw.From(fmt.Errorf("received empty get %s response body", what)).Append(flawP)
		}
		return nil, err
	}
	return respBytes, nil
}
