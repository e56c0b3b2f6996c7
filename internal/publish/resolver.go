package publish

import (
	"net/http"
	"net/url"
	"strings"
)

// Origin is the scheme and host an inbound request was addressed to, plus the
// forwarding headers a proxy may have set.
type Origin struct {
	Scheme         string
	Host           string
	ForwardedProto string
	ForwardedHost  string
}

// OriginFromRequest captures the addressing details of r.
func OriginFromRequest(r *http.Request) Origin {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return Origin{
		Scheme:         scheme,
		Host:           r.Host,
		ForwardedProto: firstValue(r.Header.Get("X-Forwarded-Proto")),
		ForwardedHost:  firstValue(r.Header.Get("X-Forwarded-Host")),
	}
}

// BaseURLResolver yields the externally reachable base URL, or "" when it
// cannot tell.
type BaseURLResolver interface {
	BaseURL(origin Origin) string
}

// StaticBase always resolves to a configured base URL.
type StaticBase string

// BaseURL implements BaseURLResolver.
func (s StaticBase) BaseURL(Origin) string {
	return strings.TrimRight(strings.TrimSpace(string(s)), "/")
}

// RequestBase derives the base URL from the inbound request.
type RequestBase struct {
	// TrustForwarded honors X-Forwarded-Proto/Host; enable only behind a proxy
	// that sets them.
	TrustForwarded bool
}

// BaseURL implements BaseURLResolver.
func (r RequestBase) BaseURL(o Origin) string {
	scheme, host := o.Scheme, o.Host
	if r.TrustForwarded {
		if p := strings.ToLower(o.ForwardedProto); p == "http" || p == "https" {
			scheme = p
		}
		if o.ForwardedHost != "" {
			host = o.ForwardedHost
		}
	}
	if scheme == "" {
		scheme = "http"
	}
	if !validHost(host) {
		return ""
	}
	return scheme + "://" + host
}

// Chain tries each resolver in order and returns the first non-empty result.
type Chain []BaseURLResolver

// BaseURL implements BaseURLResolver.
func (c Chain) BaseURL(o Origin) string {
	for _, r := range c {
		if r == nil {
			continue
		}
		if base := r.BaseURL(o); base != "" {
			return base
		}
	}
	return ""
}

func validHost(host string) bool {
	host = strings.TrimSpace(host)
	if host == "" || strings.ContainsAny(host, "/\\@?# ") {
		return false
	}
	u, err := url.Parse("http://" + host)
	return err == nil && u.Host == host
}

func firstValue(header string) string {
	if i := strings.IndexByte(header, ','); i >= 0 {
		header = header[:i]
	}
	return strings.TrimSpace(header)
}
