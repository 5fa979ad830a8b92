package samsungdocs

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// DefaultBaseURL is the root of the Samsung Developer portal.
const DefaultBaseURL = "https://developer.samsung.com"

// PageKey is the canonical, filesystem-safe identifier for a logical page
// variant. It is derived from the URL path plus the sorted query parameters,
// so distinct query variants of the same path (e.g., a device-specific view)
// cache and index independently.
type PageKey string

// keyByteSafe reports whether a byte passes through the key encoding
// unchanged. Underscore is excluded so that "__" can only ever come from a
// path separator, keeping the encoding bijective.
func keyByteSafe(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '.' || b == '-':
		return true
	}
	return false
}

func encodeKeyPart(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '/':
			sb.WriteString("__")
		case keyByteSafe(b):
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "%%%02X", b)
		}
	}
	return sb.String()
}

func decodeKeyPart(s string) (string, error) {
	s = strings.ReplaceAll(s, "__", "/")
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != '%' {
			sb.WriteByte(b)
			continue
		}
		if i+3 > len(s) {
			return "", Errorf(EINVALID, "truncated escape in key %q", s)
		}
		var v byte
		if _, err := fmt.Sscanf(s[i+1:i+3], "%02X", &v); err != nil {
			return "", Errorf(EINVALID, "bad escape in key %q", s)
		}
		sb.WriteByte(v)
		i += 2
	}
	return sb.String(), nil
}

// KeyForURL derives the canonical PageKey for a documentation URL or path.
// The derivation is a pure function of (path, query-parameter set): the same
// logical page always yields the same key and no two distinct pages collide.
func KeyForURL(rawURL string) (PageKey, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		path = "index"
	}

	key := encodeKeyPart(path)

	if u.RawQuery != "" {
		params := u.Query()
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		// Each name and value is encoded on its own; the raw "="/"&"
		// separators are never emitted by encodeKeyPart, so a literal
		// separator inside a value cannot collide with the pair structure.
		var pairs []string
		for _, name := range names {
			values := append([]string(nil), params[name]...)
			sort.Strings(values)
			for _, v := range values {
				pairs = append(pairs, encodeKeyPart(name)+"="+encodeKeyPart(v))
			}
		}
		key += "~" + strings.Join(pairs, "&")
	}

	return PageKey(key), nil
}

// PathForKey inverts the key derivation and returns the URL path (with a
// leading slash, without the query).
func PathForKey(key PageKey) (string, error) {
	raw := string(key)
	if i := strings.IndexByte(raw, '~'); i >= 0 {
		raw = raw[:i]
	}
	path, err := decodeKeyPart(raw)
	if err != nil {
		return "", err
	}
	return "/" + path, nil
}

// URLForKey reconstructs the full portal URL for a key.
func URLForKey(key PageKey) (string, error) {
	raw := string(key)
	var query string
	if i := strings.IndexByte(raw, '~'); i >= 0 {
		var pairs []string
		for _, pair := range strings.Split(raw[i+1:], "&") {
			encName, encValue, _ := strings.Cut(pair, "=")
			name, err := decodeKeyPart(encName)
			if err != nil {
				return "", err
			}
			value, err := decodeKeyPart(encValue)
			if err != nil {
				return "", err
			}
			pairs = append(pairs, url.QueryEscape(name)+"="+url.QueryEscape(value))
		}
		query = strings.Join(pairs, "&")
		raw = raw[:i]
	}
	path, err := decodeKeyPart(raw)
	if err != nil {
		return "", err
	}
	u := DefaultBaseURL + "/" + path
	if query != "" {
		u += "?" + query
	}
	return u, nil
}

// FetchState is the tagged pending-or-fetched variant attached to pages and
// to the registry's populate watermark. The zero value is pending.
type FetchState struct {
	fetched bool
	at      time.Time
}

// Pending returns the "known to exist, not yet fetched" state.
func Pending() FetchState {
	return FetchState{}
}

// FetchedAt returns the state for a successful fetch at t.
func FetchedAt(t time.Time) FetchState {
	return FetchState{fetched: true, at: t}
}

// Fetched reports whether a fetch has ever succeeded.
func (s FetchState) Fetched() bool { return s.fetched }

// Time returns the last successful fetch time. Only meaningful when
// Fetched reports true.
func (s FetchState) Time() time.Time { return s.at }

// MarshalJSON encodes the state as a Unix-epoch millisecond timestamp, or
// null while pending.
func (s FetchState) MarshalJSON() ([]byte, error) {
	if !s.fetched {
		return []byte("null"), nil
	}
	return json.Marshal(s.at.UnixMilli())
}

// UnmarshalJSON decodes a millisecond timestamp or null.
func (s *FetchState) UnmarshalJSON(data []byte) error {
	var millis *int64
	if err := json.Unmarshal(data, &millis); err != nil {
		return err
	}
	if millis == nil {
		*s = Pending()
		return nil
	}
	*s = FetchedAt(time.UnixMilli(*millis).UTC())
	return nil
}

// PageStatus describes a registry entry to the list surface.
type PageStatus string

// Page statuses reported by List.
const (
	StatusPending PageStatus = "pending"
	StatusCached  PageStatus = "cached"
)

// PageEntry is the durable record of a known page.
type PageEntry struct {
	Key         PageKey    `json:"key"`
	Title       string     `json:"title"`
	ContentHash string     `json:"contentHash,omitempty"`
	Fetched     FetchState `json:"fetchedAt"`
}

// Stale reports whether the entry is eligible for (re-)fetching: it has
// never been fetched, or its last fetch is at least ttl old.
func (e *PageEntry) Stale(now time.Time, ttl time.Duration) bool {
	if !e.Fetched.Fetched() {
		return true
	}
	return now.Sub(e.Fetched.Time()) >= ttl
}

// Status returns the entry's list status.
func (e *PageEntry) Status() PageStatus {
	if e.Fetched.Fetched() {
		return StatusCached
	}
	return StatusPending
}
