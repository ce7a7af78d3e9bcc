package repository

import "fmt"

// ReportType selects statement granularity and the vendor field-name prefix.
type ReportType string

const (
	ReportAnnual    ReportType = "annual"
	ReportQuarterly ReportType = "quarterly"
	ReportTrailing  ReportType = "trailing"
)

// IsValidReportType returns true if rt is a supported report type.
func IsValidReportType(rt ReportType) bool {
	switch rt {
	case ReportAnnual, ReportQuarterly, ReportTrailing:
		return true
	default:
		return false
	}
}

// DefaultReportType returns the default report type.
func DefaultReportType() ReportType { return ReportAnnual }

// ParseReportType converts a raw string to a report type. Empty input falls
// back to the default; anything else invalid is an input error.
func ParseReportType(s string) (ReportType, error) {
	if s == "" {
		return DefaultReportType(), nil
	}
	rt := ReportType(s)
	if !IsValidReportType(rt) {
		return "", fmt.Errorf("invalid report type %q: use annual, quarterly or trailing", s)
	}
	return rt, nil
}

// Prefix returns the vendor field-name prefix for the report type.
// Trailing rows carry their own prefix; everything unrecognized reads as annual.
func (rt ReportType) Prefix() string {
	switch rt {
	case ReportQuarterly:
		return "quarterly"
	case ReportTrailing:
		return "trailing"
	default:
		return "annual"
	}
}
