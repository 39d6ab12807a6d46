package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/skillhub/skills-dashboard/internal/ports"
)

type anonymousKey struct{}

// anonymous marks a call that must not carry the session token. A 401 on such a
// call is a credential failure rather than an expired session.
func anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// authTransport attaches the bearer token and static headers to outbound
// requests and reports 401 responses to the session.
type authTransport struct {
	base           http.RoundTripper
	headers        map[string]string
	tokens         ports.TokenSource
	onUnauthorized ports.UnauthorizedHandler
	logger         *slog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	anon := isAnonymous(ctx)

	out := req.Clone(ctx)
	for k, v := range t.headers {
		if out.Header.Get(k) == "" {
			out.Header.Set(k, v)
		}
	}
	if !anon && t.tokens != nil {
		token, err := t.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("read access token: %w", err)
		}
		if token != "" {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && !anon && t.onUnauthorized != nil {
		if herr := t.onUnauthorized.HandleUnauthorized(ctx); herr != nil {
			t.logger.WarnContext(ctx, "session teardown after 401 incomplete",
				"path", req.URL.Path, "error", herr)
		}
	}
	return resp, nil
}
