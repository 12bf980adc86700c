package goldsilver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"metalprices/internal/interaction"
)

const (
	DefaultURL       = "https://goldsilver.ai/metal-prices/shanghai-silver-price"
	DefaultUserAgent = "Mozilla/5.0 (compatible; MetalPrices/1.0)"
)

type Interaction struct {
	logger    *slog.Logger
	client    *http.Client
	target    string
	userAgent string
}

// NewInteraction creates a new instance of Interaction with goldsilver.ai.
func NewInteraction(logger *slog.Logger, client *http.Client, target string, userAgent string) *Interaction {
	return &Interaction{
		logger:    logger.With("component", "goldsilver"),
		client:    client,
		target:    target,
		userAgent: userAgent,
	}
}

// GetSilverPrices fetches the Shanghai silver page and extracts the prices from it.
// A page served with a non-200 status yields no prices, so every field falls back on its own.
// Transport and read failures are returned.
func (that *Interaction) GetSilverPrices(ctx context.Context) (SilverPrices, error) {
	body, err := interaction.GetPage(ctx, that.client, that.target, that.userAgent)
	if errors.Is(err, interaction.ErrBadStatus) {
		that.logger.Warn("metal page unavailable, no prices extracted", "error", err)
		return SilverPrices{}, nil
	}
	if err != nil {
		return SilverPrices{}, err
	}

	prices := ParseSilverPrices(string(body))
	that.logger.Debug("parsed silver prices", "shanghai", prices.Shanghai, "spot", prices.WesternSpot, "premium", prices.Premium)

	return prices, nil
}
