package goldsilver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// spotColor is the inline text color the page uses for the western spot price.
const spotColor = "color:#c0c0c0"

var (
	// ex: font-bold">88.64</span> ... USD/OZ
	shanghaiPattern = regexp.MustCompile(`font-bold[^>]*>(\d+\.\d+)</span>[\s\S]*?USD/OZ`)
	// ex: color:#c0c0c0">$<!-- -->83.62
	spotPattern = regexp.MustCompile(`color:#c0c0c0[^>]*>\$(?:<!--\s*-->)?(\d+\.\d+)`)
	// ex: +<!-- -->$<!-- -->5.02
	premiumPattern = regexp.MustCompile(`\+(?:<!--\s*-->)?\$(?:<!--\s*-->)?(\d+\.\d+)`)
)

func ParseSilverPrices(html string) SilverPrices {
	var prices SilverPrices

	prices.Shanghai, _ = ExtractShanghaiPrice(html)
	prices.WesternSpot, _ = ExtractWesternSpot(html)
	prices.Premium, _ = ExtractPremium(html)

	return prices
}

// ExtractShanghaiPrice returns the Shanghai price in USD/oz.
func ExtractShanghaiPrice(html string) (float64, bool) {
	return matchPrice(shanghaiPattern, html)
}

// ExtractWesternSpot returns the western spot price in USD/oz.
// When the raw markup does not match, the rendered text of silver-colored elements is tried.
func ExtractWesternSpot(html string) (float64, bool) {
	if price, ok := matchPrice(spotPattern, html); ok {
		return price, true
	}

	return findSpotInDocument(html)
}

// ExtractPremium returns the premium the page states explicitly, in USD.
func ExtractPremium(html string) (float64, bool) {
	return matchPrice(premiumPattern, html)
}

func matchPrice(pattern *regexp.Regexp, html string) (float64, bool) {
	match := pattern.FindStringSubmatch(html)
	if match == nil {
		return 0, false
	}

	return parsePrice(match[1])
}

// findSpotInDocument reads the rendered text of silver-colored elements. Only text that is a bare
// dollar amount counts, and more than one distinct amount is ambiguous, so nothing is returned.
func findSpotInDocument(html string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false
	}

	candidates := make(map[float64]struct{})
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if !strings.Contains(strings.ReplaceAll(style, " ", ""), spotColor) {
			return
		}

		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "$") {
			return
		}

		if price, ok := parsePrice(cleanNumber(text)); ok {
			candidates[price] = struct{}{}
		}
	})

	if len(candidates) != 1 {
		return 0, false
	}

	for price := range candidates {
		return price, true
	}

	return 0, false
}

func parsePrice(s string) (float64, bool) {
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || price <= 0 {
		return 0, false
	}

	return price, true
}

func cleanNumber(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	return s
}
