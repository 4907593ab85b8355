// Package address derives a city name from free-text venue addresses.
//
// Sheet addresses are hand-entered and uneven ("Civic Center Park, 101 W
// 14th Ave Pkwy, Denver, CO 80202" vs "Main St, Granby, CO"), so extraction
// is heuristic: locate the state marker and take the segment before it.
package address

import (
	"regexp"
	"strings"
)

// UnknownCity is returned whenever no city can be extracted.
const UnknownCity = "Unknown"

var (
	// stateZipPattern matches a 2-letter state code followed by a 5-digit
	// zip anywhere in a segment, word-boundary delimited.
	stateZipPattern = regexp.MustCompile(`\b[A-Z]{2}\b\s+\b\d{5}\b`)

	// bareStatePattern matches a segment that is exactly a 2-letter state code.
	bareStatePattern = regexp.MustCompile(`^[A-Z]{2}$`)

	// streetNumberPattern rejects candidates that look like a street address
	// (leading house number followed by whitespace).
	streetNumberPattern = regexp.MustCompile(`^\d+\s`)
)

// City extracts a city name from an address. It never fails; any
// non-matching input yields UnknownCity.
func City(addr string) string {
	if strings.TrimSpace(addr) == "" {
		return UnknownCity
	}

	segments := strings.Split(addr, ",")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	// Scan from the end for a state marker; the city is the segment
	// immediately before it.
	for i := len(segments) - 1; i > 0; i-- {
		if !isStateSegment(segments[i]) {
			continue
		}
		if city, ok := cityCandidate(segments[i-1]); ok {
			return city
		}
	}

	// Fallback for addresses where the state marker is the final segment
	// but the scan rejected its neighbor: accept the second-to-last
	// segment under the same street-number rule.
	if len(segments) >= 2 && isStateSegment(segments[len(segments)-1]) {
		if city, ok := cityCandidate(segments[len(segments)-2]); ok {
			return city
		}
	}

	return UnknownCity
}

func isStateSegment(segment string) bool {
	return stateZipPattern.MatchString(segment) || bareStatePattern.MatchString(segment)
}

// cityCandidate validates a would-be city segment. Empty segments and
// segments that open with a street number are rejected.
func cityCandidate(segment string) (string, bool) {
	if segment == "" || streetNumberPattern.MatchString(segment) {
		return "", false
	}
	return segment, true
}
