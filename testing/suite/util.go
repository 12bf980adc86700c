package suite

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v4/pkg/cassette"
	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"
)

// GetDateTime returns a time.Time object from a string.
// Example: GetDateTime(t, "2025-11-07T09:15:00Z")
func GetDateTime(t *testing.T, incomingDateTime string) time.Time {
	t.Helper()

	dateTime, err := time.Parse(time.RFC3339Nano, incomingDateTime)
	if err != nil {
		t.Fatalf("could not parse date time: %v", err)
	}
	return dateTime
}

// ReadTestdata returns the content of testdata/<name> relative to the test package.
func ReadTestdata(t *testing.T, name string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(content)
}

// NewReplayClient returns a client replaying the cassette testdata/<test name>.yaml.
// Interactions are matched by method and URL only.
func NewReplayClient(t *testing.T) *http.Client {
	t.Helper()

	r, err := recorder.New(
		filepath.Join("testdata", strings.ReplaceAll(t.Name(), "/", "_")),
		recorder.WithMode(recorder.ModeReplayOnly),
		recorder.WithReplayableInteractions(true),
		recorder.WithMatcher(func(r *http.Request, i cassette.Request) bool {
			return r.Method == i.Method && r.URL.String() == i.URL
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		// Make sure recorder is stopped once done with it.
		require.NoError(t, r.Stop())
	})

	return r.GetDefaultClient()
}
