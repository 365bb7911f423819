package http_

import (
	"github.com/pkg/errors"
	"time"
)

// TimeFormat is RFC 1123 with the zone fixed to GMT, as HTTP requires.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

var timeDotNow = time.Now

func FormatDate(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// See RFC 7231, section 7.1.1.1
// https://datatracker.ietf.org/doc/html/rfc7231#section-7.1.1.1
var httpDateLayouts = []string{time.RFC1123, time.RFC850, time.ANSIC}

func ParseDate(value string) (time.Time, error) {
	for _, layout := range httpDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized HTTP date %q", value)
}
