package geo

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	pairPattern   = regexp.MustCompile(`^\s*([+-]?\d{1,3}(?:\.\d+)?)\s*,\s*([+-]?\d{1,3}(?:\.\d+)?)\s*$`)
	atPattern     = regexp.MustCompile(`@([+-]?\d{1,3}(?:\.\d+)?),([+-]?\d{1,3}(?:\.\d+)?)`)
	bangPattern   = regexp.MustCompile(`!3d([+-]?\d{1,3}(?:\.\d+)?)!4d([+-]?\d{1,3}(?:\.\d+)?)`)
	placePattern  = regexp.MustCompile(`/place/([^/@?#]+)`)
	minusReplacer = strings.NewReplacer("−", "-", "‒", "-", "–", "-", "—", "-", "﹣", "-", "－", "-")
)

// normalizeMinus maps unicode minus and dash look-alikes to ASCII '-'
func normalizeMinus(s string) string {
	return minusReplacer.Replace(s)
}

// IsShortLink reports whether s is a map-service short link that needs expansion
func IsShortLink(s string) bool {
	_, ok := ShortLinkURL(s)
	return ok
}

// ShortLinkURL returns s as an expandable short link URL. Links pasted
// without a scheme get https.
func ShortLinkURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, ok := parseHTTPURL(s)
	if !ok {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "maps.app.goo.gl":
	case host == "goo.gl" && strings.HasPrefix(u.Path, "/maps"):
	case host == "g.co" && strings.HasPrefix(u.Path, "/kgs"):
	default:
		return "", false
	}
	return u.String(), true
}

// IsURL reports whether s looks like an http(s) URL
func IsURL(s string) bool {
	_, ok := parseHTTPURL(s)
	return ok
}

func parseHTTPURL(s string) (*url.URL, bool) {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

// ParseCoordinatePair parses a literal "lat,lng". Unicode minus signs are
// accepted. Out-of-bounds pairs are rejected so they fall through to text search.
func ParseCoordinatePair(s string) (Coordinates, bool) {
	m := pairPattern.FindStringSubmatch(normalizeMinus(s))
	if m == nil {
		return Coordinates{}, false
	}
	return toCoordinates(m[1], m[2])
}

func toCoordinates(latS, lngS string) (Coordinates, bool) {
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(lngS, 64)
	if err != nil {
		return Coordinates{}, false
	}
	c := Coordinates{Lat: lat, Lng: lng}
	if !c.Valid() {
		return Coordinates{}, false
	}
	return c, true
}

// LinkInfo is what a map URL revealed
type LinkInfo struct {
	Coordinates *Coordinates
	PlaceName   string
}

// ParseMapURL extracts coordinates and a place name from a map URL.
// Coordinates are tried as "@lat,lng", then a query=lat,lng parameter,
// then the "!3dLAT!4dLNG" marker.
func ParseMapURL(raw string) LinkInfo {
	var info LinkInfo
	raw = normalizeMinus(strings.TrimSpace(raw))
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}

	if m := atPattern.FindStringSubmatch(decoded); m != nil {
		if c, ok := toCoordinates(m[1], m[2]); ok {
			info.Coordinates = &c
		}
	}

	u, parsed := parseHTTPURL(raw)
	var query url.Values
	if parsed {
		query = u.Query()
	}

	if info.Coordinates == nil && query != nil {
		for _, key := range []string{"query", "q", "ll", "destination"} {
			if c, ok := ParseCoordinatePair(query.Get(key)); ok {
				info.Coordinates = &c
				break
			}
		}
	}

	if info.Coordinates == nil {
		if m := bangPattern.FindStringSubmatch(decoded); m != nil {
			if c, ok := toCoordinates(m[1], m[2]); ok {
				info.Coordinates = &c
			}
		}
	}

	if m := placePattern.FindStringSubmatch(decoded); m != nil {
		info.PlaceName = cleanPlaceName(m[1])
	}
	if info.PlaceName == "" && query != nil {
		for _, key := range []string{"q", "query"} {
			v := query.Get(key)
			if _, isPair := ParseCoordinatePair(v); v != "" && !isPair {
				info.PlaceName = cleanPlaceName(v)
				break
			}
		}
	}

	return info
}

func cleanPlaceName(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if unescaped, err := url.QueryUnescape(s); err == nil {
		s = unescaped
	}
	return strings.Join(strings.Fields(s), " ")
}
