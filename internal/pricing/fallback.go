package pricing

import (
	"time"

	"metalprices/internal/model"
)

// FallbackSource labels a snapshot built without any upstream data.
const FallbackSource = "fallback"

// Figures only the total-failure snapshot uses.
const (
	fallbackIndiaINRPerKg       = 270000
	fallbackIndiaINRPerGram     = "270.00"
	fallbackIndiaUSDPerOz       = "92.50"
	fallbackIndiaPremiumUSD     = "9.50"
	fallbackIndiaPremiumPercent = "10.5"
	fallbackCopperPerOz         = 0.31
)

// FallbackSnapshot returns the fixed snapshot served when the pipeline fails, carrying err as its error message.
func FallbackSnapshot(c Constants, now time.Time, err error) model.Snapshot {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}

	return model.Snapshot{
		Shanghai: model.Shanghai{
			USDPerOz:   c.ShanghaiUSDPerOz,
			CNYPerKg:   c.ShanghaiCNYPerKg,
			CNYPerGram: c.ShanghaiCNYPerGram,
		},
		Western: model.Western{USDPerOz: c.WesternUSDPerOz},
		Premium: model.Premium{USD: c.PremiumUSD, Percent: c.PremiumPercent},
		India: model.India{
			INRPerKg:       fallbackIndiaINRPerKg,
			INRPerGram:     fallbackIndiaINRPerGram,
			USDPerOz:       fallbackIndiaUSDPerOz,
			PremiumUSD:     fallbackIndiaPremiumUSD,
			PremiumPercent: fallbackIndiaPremiumPercent,
		},
		Forex: model.Forex{
			USDINR: c.Forex.INR,
			USDCNY: c.Forex.CNY,
			USDMYR: c.Forex.MYR,
			USDAUD: c.Forex.AUD,
			USDEUR: c.Forex.EUR,
		},
		Copper:    model.Copper{PerLb: c.CopperPerLb, PerOz: fallbackCopperPerOz},
		Timestamp: model.FormatTimestamp(now),
		Source:    FallbackSource,
		Error:     message,
	}
}
