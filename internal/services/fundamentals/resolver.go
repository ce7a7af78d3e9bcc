package fundamentals

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/util"
)

// RowReader resolves financial concepts against one vendor row. Field names
// are matched case-insensitively, each alias tried in three spellings:
// prefixed ("annualTotalAssets"), as given ("TotalAssets"), and with the
// first character lower-cased ("totalAssets"). Build one reader per row.
type RowReader struct {
	fields map[string]any
	prefix string
}

// NewRowReader builds the case-insensitive view of the row once.
func NewRowReader(row models.VendorRow, prefix string) *RowReader {
	fields := make(map[string]any, len(row))
	for k, v := range row {
		fields[strings.ToLower(k)] = v
	}
	return &RowReader{fields: fields, prefix: prefix}
}

// Number returns the first alias resolving to a finite number, or nil when
// no alias resolves. Alias order encodes preference.
func (r *RowReader) Number(aliases ...string) *float64 {
	for _, name := range aliases {
		if v := r.tryName(name); v != nil {
			return v
		}
	}
	return nil
}

func (r *RowReader) tryName(name string) *float64 {
	for _, candidate := range []string{
		r.prefix + name,
		name,
		lowerFirst(name),
	} {
		if v, ok := asNumber(r.fields[strings.ToLower(candidate)]); ok {
			out := v
			return &out
		}
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// asNumber accepts numeric field values only; a string or date stored under
// the same key reads as absent.
func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// EndDate extracts the row's reporting end date as an ISO-8601 timestamp.
// Vendors send the date as an epoch number, a string, or a parsed time.
// Returns "" when nothing resolves; such rows are dropped by the normalizers.
func EndDate(row models.VendorRow) string {
	switch d := row["date"].(type) {
	case float64:
		return util.FormatISO(util.FromEpoch(d))
	case int64:
		return util.FormatISO(util.FromEpoch(float64(d)))
	case int:
		return util.FormatISO(util.FromEpoch(float64(d)))
	case json.Number:
		if v, err := d.Float64(); err == nil {
			return util.FormatISO(util.FromEpoch(v))
		}
	case string:
		if t, ok := util.ParseTime(d); ok {
			return util.FormatISO(t)
		}
	case time.Time:
		return util.FormatISO(d)
	}
	return ""
}

// TypeTag returns the vendor row type tag ("BALANCE_SHEET", "FINANCIALS"), or "".
func TypeTag(row models.VendorRow) string {
	if s, ok := row["TYPE"].(string); ok {
		return s
	}
	return ""
}

// HasPeriodType reports whether the row carries a periodType marker. Vendor
// payloads are not uniformly tagged, so this is the fallback row filter.
func HasPeriodType(row models.VendorRow) bool {
	_, ok := row["periodType"]
	return ok
}
