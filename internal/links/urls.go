package links

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	RouteStream       = "stream"
	RouteDownload     = "dl"
	RoutePlayer       = "player"
	RouteStreamPlayer = "stream-player"
)

// BuildURL renders {base}/{route}/{id}?code={code}.
func BuildURL(baseURL, route string, mediaID int64, code string) string {
	return strings.TrimRight(baseURL, "/") + "/" + route + "/" +
		strconv.FormatInt(mediaID, 10) + "?code=" + url.QueryEscape(code)
}
