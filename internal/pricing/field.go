package pricing

import "fmt"

// Field is one input value together with where it came from.
// OK is true only when the value was taken from an upstream response.
type Field struct {
	Value  float64
	OK     bool
	Reason string
}

func Scraped(value float64) Field {
	return Field{Value: value, OK: true}
}

func Fallback(value float64, reason string) Field {
	return Field{Value: value, Reason: reason}
}

// Found wraps an optional page value, where zero means the pattern did not match.
func Found(value float64, what string) Field {
	if value > 0 {
		return Scraped(value)
	}

	return Field{Reason: what + " not found"}
}

// Resolve returns the fetched value unless the fetch failed or produced a non-positive number.
func Resolve(value float64, err error, fallback float64) Field {
	if err != nil {
		return Fallback(fallback, err.Error())
	}

	if value <= 0 {
		return Fallback(fallback, fmt.Sprintf("invalid value %v", value))
	}

	return Scraped(value)
}

// Forex holds the rate per USD of each reported currency.
type Forex struct {
	INR Field
	CNY Field
	MYR Field
	AUD Field
	EUR Field
}

// ResolveForex picks each rate from rates, falling back per code when a rate is absent or zero.
// A non-nil err falls back for every code.
func ResolveForex(rates map[string]float64, err error, defaults ForexDefaults) Forex {
	pick := func(code string, fallback float64) Field {
		if err != nil {
			return Fallback(fallback, err.Error())
		}

		rate, ok := rates[code]
		if !ok {
			return Fallback(fallback, "rate "+code+" missing")
		}

		return Resolve(rate, nil, fallback)
	}

	return Forex{
		INR: pick("INR", defaults.INR),
		CNY: pick("CNY", defaults.CNY),
		MYR: pick("MYR", defaults.MYR),
		AUD: pick("AUD", defaults.AUD),
		EUR: pick("EUR", defaults.EUR),
	}
}

// Inputs are the extracted (or fallback) values derivation works from.
type Inputs struct {
	Shanghai    Field
	Spot        Field
	Premium     Field
	Forex       Forex
	CopperPerLb Field
}

// FieldFallback names an input that was not taken from upstream.
type FieldFallback struct {
	Name   string
	Reason string
}

// Fallbacks lists every input that did not come from upstream, in a stable order.
func (that Inputs) Fallbacks() []FieldFallback {
	fields := []struct {
		name  string
		field Field
	}{
		{"shanghai", that.Shanghai},
		{"spot", that.Spot},
		{"premium", that.Premium},
		{"forex.INR", that.Forex.INR},
		{"forex.CNY", that.Forex.CNY},
		{"forex.MYR", that.Forex.MYR},
		{"forex.AUD", that.Forex.AUD},
		{"forex.EUR", that.Forex.EUR},
		{"copper", that.CopperPerLb},
	}

	var fallbacks []FieldFallback
	for _, f := range fields {
		if !f.field.OK {
			fallbacks = append(fallbacks, FieldFallback{Name: f.name, Reason: f.field.Reason})
		}
	}

	return fallbacks
}
