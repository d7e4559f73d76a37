package server

import "net/url"

// redactCode masks the code query parameter so access logs never hold a usable link.
func redactCode(uri string) string {
	u, err := url.ParseRequestURI(uri)
	if err != nil {
		return uri
	}
	q := u.Query()
	if !q.Has("code") {
		return uri
	}
	q.Set("code", "***")
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
