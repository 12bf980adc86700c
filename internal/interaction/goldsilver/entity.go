package goldsilver

// SilverPrices describes the values found on the Shanghai silver page.
// A zero value means the pattern was not found.
type SilverPrices struct {
	Shanghai    float64 // ex: 88.64 USD/oz
	WesternSpot float64 // ex: 83.62 USD/oz
	Premium     float64 // ex: 5.02 USD
}
