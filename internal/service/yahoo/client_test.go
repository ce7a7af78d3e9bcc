package yahoo

import (
	"encoding/json"
	"testing"
)

func TestPivotTimeseries(t *testing.T) {
	payload := `[
		{
			"meta": {"symbol": ["ACME"], "type": ["annualTotalAssets"]},
			"timestamp": [1672444800, 1703980800],
			"annualTotalAssets": [
				{"asOfDate": "2022-12-31", "periodType": "12M", "reportedValue": {"raw": 900, "fmt": "900"}},
				{"asOfDate": "2023-12-31", "periodType": "12M", "reportedValue": {"raw": 1000, "fmt": "1k"}}
			]
		},
		{
			"meta": {"symbol": ["ACME"], "type": ["annualStockholdersEquity"]},
			"timestamp": [1703980800],
			"annualStockholdersEquity": [
				null,
				{"asOfDate": "2023-12-31", "periodType": "12M", "reportedValue": {"raw": 400}}
			]
		}
	]`
	var results []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	rows := pivotTimeseries(results)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Ascending by date.
	if rows[0]["date"] != "2022-12-31" || rows[1]["date"] != "2023-12-31" {
		t.Fatalf("unexpected order: %v, %v", rows[0]["date"], rows[1]["date"])
	}
	if rows[1]["annualTotalAssets"] != 1000.0 {
		t.Fatalf("unexpected assets %v", rows[1]["annualTotalAssets"])
	}
	if rows[1]["annualStockholdersEquity"] != 400.0 {
		t.Fatalf("unexpected equity %v", rows[1]["annualStockholdersEquity"])
	}
	if _, ok := rows[0]["annualStockholdersEquity"]; ok {
		t.Fatalf("null series entry should not produce a value")
	}
	if rows[0]["periodType"] != "12M" {
		t.Fatalf("unexpected periodType %v", rows[0]["periodType"])
	}
}

func TestFlattenRaw(t *testing.T) {
	in := map[string]any{
		"heldByInsiders": map[string]any{"raw": 0.4, "fmt": "40.00%"},
		"ownershipList": []any{
			map[string]any{
				"country": "India",
				"pctHeld": map[string]any{"raw": 0.1, "fmt": "10.00%"},
			},
		},
		"currency": "INR",
	}
	out := flattenRaw(in).(map[string]any)

	if out["heldByInsiders"] != 0.4 {
		t.Fatalf("unexpected heldByInsiders %v", out["heldByInsiders"])
	}
	if out["currency"] != "INR" {
		t.Fatalf("plain values must pass through, got %v", out["currency"])
	}
	holder := out["ownershipList"].([]any)[0].(map[string]any)
	if holder["pctHeld"] != 0.1 {
		t.Fatalf("unexpected pctHeld %v", holder["pctHeld"])
	}
	if holder["country"] != "India" {
		t.Fatalf("unexpected country %v", holder["country"])
	}
}

func TestFlattenRawKeepsNonNumericRaw(t *testing.T) {
	in := map[string]any{"raw": "not a number", "fmt": "x"}
	out := flattenRaw(in).(map[string]any)
	if out["raw"] != "not a number" {
		t.Fatalf("non-numeric raw must not unwrap, got %v", out)
	}
}

func TestBuildBarsSkipsNilCloses(t *testing.T) {
	payload := `{
		"timestamp": [1703808000, 1703894400, 1703980800],
		"indicators": {"quote": [{
			"open":   [90, null, 91],
			"high":   [95, null, 96],
			"low":    [89, null, 90],
			"close":  [92, null, 94],
			"volume": [1000, null, 1200]
		}]}
	}`
	var r chartResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	bars := buildBars(r)
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 92 || bars[1].Close != 94 {
		t.Fatalf("unexpected closes %v %v", bars[0].Close, bars[1].Close)
	}
	if bars[0].Date.Format("2006-01-02") != "2023-12-29" {
		t.Fatalf("unexpected date %v", bars[0].Date)
	}
}
