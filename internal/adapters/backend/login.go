package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
)

const (
	defaultTokenPath = "access_token"
	defaultUserPath  = "user"
)

// loginExtractor pulls the token and user out of a login response body using
// JMESPath expressions, so differently shaped backends can be configured.
type loginExtractor struct {
	tokenPath string
	userPath  string
}

func newLoginExtractor(tokenPath, userPath string) (loginExtractor, error) {
	le := loginExtractor{
		tokenPath: strings.TrimSpace(tokenPath),
		userPath:  strings.TrimSpace(userPath),
	}
	if le.tokenPath == "" {
		le.tokenPath = defaultTokenPath
	}
	if le.userPath == "" {
		le.userPath = defaultUserPath
	}
	if _, err := jmespath.Compile(le.tokenPath); err != nil {
		return loginExtractor{}, fmt.Errorf("invalid login token path %q: %w", le.tokenPath, err)
	}
	if _, err := jmespath.Compile(le.userPath); err != nil {
		return loginExtractor{}, fmt.Errorf("invalid login user path %q: %w", le.userPath, err)
	}
	return le, nil
}

func (le loginExtractor) extract(body []byte) (domainauth.LoginResponse, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return domainauth.LoginResponse{}, err
	}

	rawToken, err := jmespath.Search(le.tokenPath, doc)
	if err != nil {
		return domainauth.LoginResponse{}, fmt.Errorf("token path: %w", err)
	}
	token, _ := rawToken.(string)
	if strings.TrimSpace(token) == "" {
		return domainauth.LoginResponse{}, errors.New("access token is missing")
	}

	rawUser, err := jmespath.Search(le.userPath, doc)
	if err != nil {
		return domainauth.LoginResponse{}, fmt.Errorf("user path: %w", err)
	}
	if rawUser == nil {
		return domainauth.LoginResponse{}, errors.New("user is missing")
	}
	userJSON, err := json.Marshal(rawUser)
	if err != nil {
		return domainauth.LoginResponse{}, err
	}
	var user domainauth.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return domainauth.LoginResponse{}, fmt.Errorf("user: %w", err)
	}
	if user.ID.IsZero() {
		return domainauth.LoginResponse{}, errors.New("user id is missing")
	}
	if user.Role == "" {
		user.Role = domainauth.RoleEmployee
	}
	return domainauth.LoginResponse{AccessToken: token, User: user}, nil
}
