package model

import "time"

// TimestampLayout matches the ISO-8601 form with milliseconds used by JavaScript clients.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Snapshot is the price snapshot served to clients.
// Some India fields are fixed-decimal strings while the rest are raw floats; clients depend on that shape.
type Snapshot struct {
	Shanghai  Shanghai `json:"shanghai"`
	Western   Western  `json:"western"`
	Premium   Premium  `json:"premium"`
	India     India    `json:"india"`
	Forex     Forex    `json:"forex"`
	Copper    Copper   `json:"copper"`
	Timestamp string   `json:"timestamp"`
	Source    string   `json:"source"`
	Error     string   `json:"error,omitempty"`
	Cached    bool     `json:"cached,omitempty"`
}

type Shanghai struct {
	USDPerOz   float64 `json:"usdPerOz"`
	CNYPerKg   float64 `json:"cnyPerKg"`
	CNYPerGram float64 `json:"cnyPerGram"`
}

type Western struct {
	USDPerOz float64 `json:"usdPerOz"`
}

type Premium struct {
	USD     float64 `json:"usd"`
	Percent float64 `json:"percent"`
}

// India describes the MCX silver estimate. Only INRPerKg is numeric.
type India struct {
	INRPerKg       int64  `json:"inrPerKg"`
	INRPerGram     string `json:"inrPerGram"`     // ex: "270.00"
	USDPerOz       string `json:"usdPerOz"`       // ex: "92.50"
	PremiumUSD     string `json:"premiumUsd"`     // ex: "9.50"
	PremiumPercent string `json:"premiumPercent"` // ex: "10.5"
}

// Forex holds units of each currency per one USD.
type Forex struct {
	USDINR float64 `json:"usdInr"`
	USDCNY float64 `json:"usdCny"`
	USDMYR float64 `json:"usdMyr"`
	USDAUD float64 `json:"usdAud"`
	USDEUR float64 `json:"usdEur"`
}

type Copper struct {
	PerLb float64 `json:"perLb"`
	PerOz float64 `json:"perOz"`
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
