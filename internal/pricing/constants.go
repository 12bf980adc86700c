package pricing

// Constants holds conversion factors and the fallback values used when an upstream value is missing.
type Constants struct {
	OzPerKg           float64 `env-default:"32.1507" yaml:"oz_per_kg"`
	DutyMultiplier    float64 `env-default:"1.105" yaml:"duty_multiplier"` // 7.5% import duty + 3% GST
	ShanghaiSpotRatio float64 `env-default:"1.06" yaml:"shanghai_spot_ratio"`
	LbPerOz           float64 `env-default:"14.583" yaml:"lb_per_oz"`

	ShanghaiUSDPerOz    float64 `env-default:"88.0" yaml:"shanghai_usd_per_oz"`
	ShanghaiCNYPerKg    float64 `env-default:"20500" yaml:"shanghai_cny_per_kg"`
	ShanghaiCNYPerGram  float64 `env-default:"20.5" yaml:"shanghai_cny_per_gram"`
	WesternUSDPerOz     float64 `env-default:"83.0" yaml:"western_usd_per_oz"`
	PremiumUSD          float64 `env-default:"5.0" yaml:"premium_usd"`
	PremiumPercent      float64 `env-default:"6.0" yaml:"premium_percent"`
	IndiaINRPerKg       float64 `env-default:"95000" yaml:"india_inr_per_kg"`
	IndiaPremiumPercent float64 `env-default:"18" yaml:"india_premium_percent"`
	CopperPerLb         float64 `env-default:"4.50" yaml:"copper_per_lb"`

	Forex ForexDefaults `yaml:"forex"`
}

// ForexDefaults holds a fallback rate for every currency code the snapshot reports.
type ForexDefaults struct {
	INR float64 `env-default:"90.74" yaml:"inr"`
	CNY float64 `env-default:"6.92" yaml:"cny"`
	MYR float64 `env-default:"3.92" yaml:"myr"`
	AUD float64 `env-default:"1.40" yaml:"aud"`
	EUR float64 `env-default:"0.842" yaml:"eur"`
}

// DefaultConstants returns the same values the config loader fills in when nothing is overridden.
func DefaultConstants() Constants {
	return Constants{
		OzPerKg:           32.1507,
		DutyMultiplier:    1.105,
		ShanghaiSpotRatio: 1.06,
		LbPerOz:           14.583,

		ShanghaiUSDPerOz:    88.0,
		ShanghaiCNYPerKg:    20500,
		ShanghaiCNYPerGram:  20.5,
		WesternUSDPerOz:     83.0,
		PremiumUSD:          5.0,
		PremiumPercent:      6.0,
		IndiaINRPerKg:       95000,
		IndiaPremiumPercent: 18,
		CopperPerLb:         4.50,

		Forex: ForexDefaults{INR: 90.74, CNY: 6.92, MYR: 3.92, AUD: 1.40, EUR: 0.842},
	}
}
