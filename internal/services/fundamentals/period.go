package fundamentals

import (
	"time"

	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/util"
)

// Default look-back windows per report type.
const (
	lookbackAnnualYears    = 10
	lookbackQuarterlyYears = 3
	lookbackTrailingYears  = 2
)

// PeriodRange derives the statement window as YYYY-MM-DD calendar dates.
// Explicit bounds pass through; a missing end defaults to now, a missing
// start to the type's look-back from the end. No clamping against future
// dates; callers own the sanity of explicit inputs.
func PeriodRange(rt domrepo.ReportType, from, to string, now time.Time) (string, string) {
	end := now
	if t, ok := util.ParseTime(to); ok {
		end = t
	}
	start := end
	if t, ok := util.ParseTime(from); ok {
		start = t
	} else {
		years := lookbackAnnualYears
		switch rt {
		case domrepo.ReportQuarterly:
			years = lookbackQuarterlyYears
		case domrepo.ReportTrailing:
			years = lookbackTrailingYears
		}
		start = end.AddDate(-years, 0, 0)
	}
	return util.FormatYMD(start), util.FormatYMD(end)
}
