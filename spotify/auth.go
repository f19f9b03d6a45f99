package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xeptore/flaw/v8"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/xeptore/promptgen/config"
	"github.com/xeptore/promptgen/errutil"
)

const TokenURL = "https://accounts.spotify.com/api/token"

// NewHTTPClient returns an HTTP client authorizing every request with an app
// token obtained through the client credentials flow. Tokens are refreshed
// transparently on expiry.
func NewHTTPClient(ctx context.Context, clientID, clientSecret string) (*http.Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("client ID and client secret are required")
	}

	cfg := &clientcredentials.Config{ //nolint:exhaustruct
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	tokenCtx, cancel := context.WithTimeout(ctx, config.TokenRequestTimeout)
	defer cancel()
	tok, err := cfg.Token(tokenCtx)
	if nil != err {
		if errutil.IsContext(ctx) {
			return nil, ctx.Err()
		}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && nil != retrieveErr.Response && retrieveErr.Response.StatusCode == http.StatusBadRequest {
			return nil, ErrUnauthorized
		}
		flawP := flaw.P{"token_url": TokenURL, "err_debug_tree": errutil.Tree(err).FlawP()}
		return nil, flaw.From(fmt.Errorf("failed to obtain access token: %v", err)).Append(flawP)
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, cfg.TokenSource(ctx))), nil
}
