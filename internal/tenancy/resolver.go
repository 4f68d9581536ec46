// Package tenancy implements tenant resolution and tenant data isolation:
// deriving the active tenant from the request host or persisted session
// state, threading it through the request context, and validating that
// records returned from storage belong to the resolved tenant.
package tenancy

import (
	"context"
	"net"
	"strings"
)

// SubdomainFromHost extracts the tenant subdomain from a request host.
//
// Hosts of the form a.b.c (three or more labels) resolve to "a", and the
// development pattern a.localhost[:port] also resolves to "a". Bare hosts
// ("localhost", "example.com") and IP addresses carry no subdomain and
// resolve to "".
func SubdomainFromHost(host string) string {
	if host == "" {
		return ""
	}

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	if net.ParseIP(host) != nil {
		return ""
	}

	labels := strings.Split(host, ".")
	switch {
	case len(labels) >= 3:
		return labels[0]
	case len(labels) == 2 && labels[1] == "localhost":
		return labels[0]
	}
	return ""
}

// Resolver derives the active tenant subdomain for a session: first from the
// hostname, then from the session's persisted tenant. Returns "" when
// nothing resolves; callers treat that as "no tenant".
type Resolver struct {
	store *Store
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

func (r *Resolver) Resolve(ctx context.Context, host, sessionID string) (string, error) {
	if sub := SubdomainFromHost(host); sub != "" {
		return sub, nil
	}
	if r.store == nil || sessionID == "" {
		return "", nil
	}
	return r.store.ActiveSubdomain(ctx, sessionID)
}
