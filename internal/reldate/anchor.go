package reldate

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// ParseAnchor reads an anchor date as YYYY-MM-DD (midnight in now's
// location) or RFC 3339. The empty string yields now.
func ParseAnchor(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation(config.DateFormatFullDash, s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(config.DateFormatRFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s: %q", config.ErrAnchorParse, s)
}
