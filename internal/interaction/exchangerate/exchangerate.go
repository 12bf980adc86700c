package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"metalprices/internal/interaction"
)

const (
	DefaultURL       = "https://api.exchangerate-api.com/v4/latest/USD"
	DefaultUserAgent = "Mozilla/5.0 (compatible; MetalPrices/1.0)"
)

var ErrNoRates = errors.New("response has no rates")

// LatestResponse is the part of the /latest payload we read.
type LatestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type Interaction struct {
	logger    *slog.Logger
	client    *http.Client
	target    string
	userAgent string
}

// NewInteraction creates a new instance of Interaction with exchangerate-api.com.
func NewInteraction(logger *slog.Logger, client *http.Client, target string, userAgent string) *Interaction {
	return &Interaction{
		logger:    logger.With("component", "exchangerate"),
		client:    client,
		target:    target,
		userAgent: userAgent,
	}
}

// GetRates returns the latest rates keyed by currency code, in units per USD.
func (that *Interaction) GetRates(ctx context.Context) (map[string]float64, error) {
	body, err := interaction.GetPage(ctx, that.client, that.target, that.userAgent)
	if err != nil {
		return nil, err
	}

	var latest LatestResponse
	if err = json.Unmarshal(body, &latest); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}

	if latest.Rates == nil {
		return nil, ErrNoRates
	}

	return latest.Rates, nil
}
