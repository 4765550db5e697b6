package catalog

import "strings"

// Sport identifies a sport covered by the package catalog. The special code
// Multi marks content that spans every sport (bundle packages).
type Sport string

const (
	SportEPL    Sport = "EPL"
	SportNBA    Sport = "NBA"
	SportNFL    Sport = "NFL"
	SportTennis Sport = "TENNIS"
	SportGolf   Sport = "GOLF"
	SportGolf1  Sport = "GOLF1"
	SportGolf2  Sport = "GOLF2"
	SportMulti  Sport = "MULTI"
)

// All lists every recognized sport code, in catalog order.
var All = []Sport{
	SportEPL,
	SportNBA,
	SportNFL,
	SportTennis,
	SportGolf,
	SportGolf1,
	SportGolf2,
	SportMulti,
}

// DisplayNames maps sport codes to the labels shown to users.
var DisplayNames = map[Sport]string{
	SportEPL:    "พรีเมียร์ลีก (EPL)",
	SportNBA:    "บาสเก็ตบอล (NBA)",
	SportNFL:    "อเมริกันฟุตบอล (NFL)",
	SportTennis: "เทนนิส (Tennis)",
	SportGolf:   "กอล์ฟ (Golf)",
	SportGolf1:  "กอล์ฟ 1 (Golf 1)",
	SportGolf2:  "กอล์ฟ 2 (Golf 2)",
	SportMulti:  "รวมทุกกีฬา (Multi-sport)",
}

var valid = func() map[Sport]bool {
	m := make(map[Sport]bool, len(All))
	for _, s := range All {
		m[s] = true
	}
	return m
}()

// Parse normalizes a raw detection string to a catalog sport code.
// Empty strings and the "none"/"null" sentinels the model sometimes emits
// are reported as not-a-sport, as is any code outside the catalog.
func Parse(raw string) (Sport, bool) {
	code := Sport(strings.ToUpper(strings.TrimSpace(raw)))
	switch code {
	case "", "NONE", "NULL":
		return "", false
	}
	if !valid[code] {
		return "", false
	}
	return code, true
}

// ParseTags splits a comma-joined tag string from passage metadata into
// sport codes. Unknown tags are kept verbatim (uppercased) so that a
// mis-tagged passage filters out rather than panicking downstream.
func ParseTags(csv string) []Sport {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	tags := make([]Sport, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		tags = append(tags, Sport(p))
	}
	return tags
}

// JoinTags renders sport tags back to the comma-joined metadata form.
func JoinTags(tags []Sport) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// golfFamily covers the catalog's two golf variants plus the plain code.
// A GOLF lock must match passages tagged GOLF1 or GOLF2 and vice versa,
// since the two packages carry the same sport.
var golfFamily = map[Sport]bool{
	SportGolf:  true,
	SportGolf1: true,
	SportGolf2: true,
}

// Matches reports whether a passage with the given tags satisfies the lock.
// Multi-sport content always passes: bundle packages stay reachable even
// under a single-sport lock. A MULTI lock itself is unconstrained.
func (lock Sport) Matches(tags []Sport) bool {
	if lock == "" || lock == SportMulti {
		return true
	}
	for _, t := range tags {
		if t == lock || t == SportMulti {
			return true
		}
		if golfFamily[lock] && golfFamily[t] {
			return true
		}
	}
	return false
}
