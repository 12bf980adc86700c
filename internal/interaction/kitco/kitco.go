package kitco

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"metalprices/internal/interaction"
)

const (
	DefaultURL       = "https://www.kitco.com/price/base-metals/copper"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var ErrBidNotFound = errors.New("bid not found")

// ex: "bid":4.5125
var bidPattern = regexp.MustCompile(`"bid":([\d.]+)`)

type Interaction struct {
	logger    *slog.Logger
	client    *http.Client
	target    string
	userAgent string
}

// NewInteraction creates a new instance of Interaction with Kitco.
func NewInteraction(logger *slog.Logger, client *http.Client, target string, userAgent string) *Interaction {
	return &Interaction{
		logger:    logger.With("component", "kitco"),
		client:    client,
		target:    target,
		userAgent: userAgent,
	}
}

// GetCopperBid returns the copper bid in USD per pound.
func (that *Interaction) GetCopperBid(ctx context.Context) (float64, error) {
	body, err := interaction.GetPage(ctx, that.client, that.target, that.userAgent)
	if err != nil {
		return 0, err
	}

	bid, ok := ExtractBid(string(body))
	if !ok {
		return 0, ErrBidNotFound
	}

	return bid, nil
}

// ExtractBid returns the first "bid" number embedded in the page data.
func ExtractBid(html string) (float64, bool) {
	match := bidPattern.FindStringSubmatch(html)
	if match == nil {
		return 0, false
	}

	bid, err := strconv.ParseFloat(match[1], 64)
	if err != nil || bid <= 0 {
		return 0, false
	}

	return bid, true
}
