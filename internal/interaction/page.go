package interaction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrBadStatus is wrapped by GetPage when the upstream answers with anything other than 200.
var ErrBadStatus = errors.New("bad status code")

// GetPage sends a GET request with the given User-Agent and returns the response body.
// Any status other than 200 is an error.
func GetPage(ctx context.Context, client *http.Client, target string, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
