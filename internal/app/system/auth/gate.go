package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// Gate resolves the caller identity for a request.
type Gate interface {
	Identity(r *http.Request) (string, bool)
}

// SessionGate reads the user LoadSessionUser placed in the request context.
type SessionGate struct{}

// Identity returns the signed-in username.
func (SessionGate) Identity(r *http.Request) (string, bool) {
	u, ok := CurrentUser(r)
	if !ok || u.Username == "" {
		return "", false
	}
	return u.Username, true
}

// QueryGate takes the identity from a query parameter. It trusts the caller
// and exists for deployments that sit behind a proxy which sets the value.
type QueryGate struct {
	Param string
}

// Identity returns the trimmed, non-empty parameter value.
func (g QueryGate) Identity(r *http.Request) (string, bool) {
	param := g.Param
	if param == "" {
		param = DefaultQueryParam
	}
	v := strings.TrimSpace(r.URL.Query().Get(param))
	return v, v != ""
}

// DefaultQueryParam is the parameter QueryGate reads when Param is empty.
const DefaultQueryParam = "username"

// Gate names accepted by NewGate.
const (
	GateSession = "session"
	GateQuery   = "query"
)

// NewGate returns the gate registered under name.
func NewGate(name string) (Gate, error) {
	switch name {
	case GateSession, "":
		return SessionGate{}, nil
	case GateQuery:
		return QueryGate{Param: DefaultQueryParam}, nil
	default:
		return nil, fmt.Errorf("unknown auth gate %q (want %q or %q)", name, GateSession, GateQuery)
	}
}
