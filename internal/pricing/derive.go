package pricing

import (
	"github.com/shopspring/decimal"

	"metalprices/internal/model"
)

// Derived carries every computed number before output formatting.
type Derived struct {
	ShanghaiUSDPerOz   float64
	ShanghaiCNYPerKg   float64
	ShanghaiCNYPerGram float64

	SpotUSDPerOz float64

	PremiumUSD     float64
	PremiumPercent float64

	IndiaINRPerKg       float64
	IndiaINRPerGram     float64
	IndiaINRPerOz       float64
	IndiaUSDPerOz       float64
	IndiaPremiumUSD     float64
	IndiaPremiumPercent float64

	Forex model.Forex

	CopperPerLb float64
	CopperPerOz float64
}

// Derive combines the inputs into the snapshot figures.
// Whenever both the Shanghai price and the spot price are known, the premium is recomputed from them
// and a premium scraped from the page is ignored.
func Derive(in Inputs, c Constants) Derived {
	var shanghai, spot, premium float64
	if in.Shanghai.OK {
		shanghai = in.Shanghai.Value
	}
	if in.Spot.OK {
		spot = in.Spot.Value
	}
	if in.Premium.OK {
		premium = in.Premium.Value
	}

	if shanghai > 0 && spot > 0 {
		premium = shanghai - spot
	}

	if shanghai == 0 && spot > 0 {
		shanghai = spot * c.ShanghaiSpotRatio
		premium = shanghai - spot
	}

	inr := in.Forex.INR.Value
	cny := in.Forex.CNY.Value

	d := Derived{
		Forex: model.Forex{
			USDINR: inr,
			USDCNY: cny,
			USDMYR: in.Forex.MYR.Value,
			USDAUD: in.Forex.AUD.Value,
			USDEUR: in.Forex.EUR.Value,
		},
		CopperPerLb: in.CopperPerLb.Value,
		CopperPerOz: in.CopperPerLb.Value / c.LbPerOz,
	}

	// India MCX trades in INR/kg with import duty and GST on top of spot.
	d.IndiaINRPerKg = c.IndiaINRPerKg
	if spot > 0 {
		d.IndiaINRPerKg = spot * c.OzPerKg * inr * c.DutyMultiplier
	}
	d.IndiaINRPerGram = d.IndiaINRPerKg / 1000
	d.IndiaINRPerOz = d.IndiaINRPerKg / c.OzPerKg
	d.IndiaUSDPerOz = d.IndiaINRPerOz / inr

	d.IndiaPremiumPercent = c.IndiaPremiumPercent
	if spot > 0 {
		d.IndiaPremiumUSD = d.IndiaUSDPerOz - spot
		d.IndiaPremiumPercent = d.IndiaPremiumUSD / spot * 100
	}

	d.ShanghaiUSDPerOz = c.ShanghaiUSDPerOz
	d.ShanghaiCNYPerKg = c.ShanghaiCNYPerKg
	d.ShanghaiCNYPerGram = c.ShanghaiCNYPerGram
	if shanghai > 0 {
		d.ShanghaiUSDPerOz = shanghai
		d.ShanghaiCNYPerKg = shanghai * c.OzPerKg * cny
		d.ShanghaiCNYPerGram = d.ShanghaiCNYPerKg / 1000
	}

	d.SpotUSDPerOz = c.WesternUSDPerOz
	if spot > 0 {
		d.SpotUSDPerOz = spot
	}

	// A premium of exactly zero is reported as the fallback, the same as a missing one.
	d.PremiumUSD = premium
	if d.PremiumUSD == 0 {
		d.PremiumUSD = c.PremiumUSD
	}

	d.PremiumPercent = c.PremiumPercent
	if spot > 0 {
		d.PremiumPercent = d.PremiumUSD / spot * 100
	}

	return d
}

// Snapshot formats the derived figures. Timestamp and Source are left for the caller.
func (that Derived) Snapshot() model.Snapshot {
	return model.Snapshot{
		Shanghai: model.Shanghai{
			USDPerOz:   that.ShanghaiUSDPerOz,
			CNYPerKg:   that.ShanghaiCNYPerKg,
			CNYPerGram: that.ShanghaiCNYPerGram,
		},
		Western: model.Western{USDPerOz: that.SpotUSDPerOz},
		Premium: model.Premium{USD: that.PremiumUSD, Percent: that.PremiumPercent},
		India: model.India{
			INRPerKg:       decimal.NewFromFloat(that.IndiaINRPerKg).Round(0).IntPart(),
			INRPerGram:     fixed(that.IndiaINRPerGram, 2),
			USDPerOz:       fixed(that.IndiaUSDPerOz, 2),
			PremiumUSD:     fixed(that.IndiaPremiumUSD, 2),
			PremiumPercent: fixed(that.IndiaPremiumPercent, 1),
		},
		Forex:  that.Forex,
		Copper: model.Copper{PerLb: that.CopperPerLb, PerOz: that.CopperPerOz},
	}
}

func fixed(value float64, places int32) string {
	return decimal.NewFromFloat(value).StringFixed(places)
}
