package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Session carries the identity decoded from a bearer token. Claims are
// decoded without signature verification and are used only for display and
// for deciding which UI affordances to show; the server re-authorizes every
// call.
type Session struct {
	Token            string
	UserID           string
	UserType         string
	Name             string
	OrganizationName string
}

// FromToken decodes the payload of a bearer token into a Session. An empty
// token yields an unauthenticated session rather than an error so callers
// can branch on Authenticated.
func FromToken(token string) (*Session, error) {
	s := &Session{Token: token}
	if token == "" {
		return s, nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("could not decode token payload: %w", err)
	}

	s.UserID = claimString(claims, "user_id")
	s.UserType = claimString(claims, "user_type")
	s.Name = claimString(claims, "name")
	s.OrganizationName = claimString(claims, "organization_name")
	return s, nil
}

// Authenticated reports whether a token is present at all. It says nothing
// about validity; only the server can decide that.
func (s *Session) Authenticated() bool {
	return s.Token != ""
}

// DisplayName picks the best human-readable name the token offers.
func (s *Session) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.OrganizationName != "":
		return s.OrganizationName
	default:
		return "You"
	}
}

// claimString reads a claim that may arrive as a string or a JSON number.
func claimString(claims jwt.MapClaims, key string) string {
	v, ok := claims[key]
	if !ok || v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
