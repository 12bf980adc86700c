// Package kvcache provides key-value stores with per-entry expiration.
package kvcache

import "errors"

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("cache entry not found")
