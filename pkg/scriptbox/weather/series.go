package weather

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Report is a decoded current-conditions response.
type Report struct {
	City     string
	Minutely Series
}

// Minute is one minutely forecast point. Local carries the station's wall
// clock with no zone information, as the API sends it.
type Minute struct {
	Local  time.Time
	UTC    time.Time
	Temp   float64
	Precip float64
	Snow   float64
}

// Series is a minutely forecast indexed by local time.
type Series []Minute

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses the timestamp formats the API is known to emit.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", internalerr.ErrMissingField)
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", internalerr.ErrInvalidInput, s)
}

// NewSeries sorts points by local time. Ties keep their input order.
func NewSeries(points []Minute) Series {
	out := make(Series, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Local.Before(out[j].Local) })
	return out
}

// Head returns the first n points, or all of them if there are fewer.
func (s Series) Head(n int) Series {
	if n < 0 || n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// TempRange returns the minimum and maximum temperature. ok is false for
// an empty series.
func (s Series) TempRange() (lo, hi float64, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	lo, hi = s[0].Temp, s[0].Temp
	for _, m := range s[1:] {
		lo = min(lo, m.Temp)
		hi = max(hi, m.Temp)
	}
	return lo, hi, true
}

// Table renders the series as an aligned text table keyed by local time.
func (s Series) Table() string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "timestamp_local\ttimestamp_utc\ttemp\tprecip\tsnow\t")
	for _, m := range s {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%g\t%g\t\n",
			m.Local.Format("2006-01-02 15:04:05"),
			m.UTC.Format("2006-01-02 15:04:05"),
			m.Temp, m.Precip, m.Snow)
	}
	tw.Flush()
	return buf.String()
}
