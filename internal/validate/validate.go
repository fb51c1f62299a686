package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

var (
	// FCM topic names: [a-zA-Z0-9-_.~%]{1,900}
	reTopic = regexp.MustCompile(`^[A-Za-z0-9\-_.~%]{1,900}$`)
	reUser  = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)
)

// ID parses a positive backend identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Index parses a zero-based row index.
func Index(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Name validates a category name. Length is left to the backend.
func Name(s string) (string, bool) {
	return Text(s)
}

// Text trims a required free-text field and rejects it when blank.
func Text(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Topic validates a push topic. Without normalize the trimmed value is sent
// as typed. With normalize set, free text such as "Summer Sale" becomes
// "summer-sale" and must then fit the FCM charset.
func Topic(s string, normalize bool) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !normalize {
		return s, true
	}
	if !reTopic.MatchString(s) {
		s = slug.Make(s)
	}
	return s, reTopic.MatchString(s)
}

// Username only checks shape; the verifier decides whether it matches.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUser.MatchString(s)
}

// Page parses a 1-based page number, defaulting to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// RowsPerPage clamps to the offered options.
func RowsPerPage(s string) int {
	switch n, _ := strconv.Atoi(strings.TrimSpace(s)); n {
	case 5, 10, 25:
		return n
	}
	return 10
}
