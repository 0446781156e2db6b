package tracing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeURLDropsQuery(t *testing.T) {
	got := sanitizeURL("https://demo.supabase.co/rest/v1/activity_reports?user_name=eq.Kim&status=eq.approved")
	require.Equal(t, "https://demo.supabase.co/rest/v1/activity_reports", got)
}

func TestSanitizeURLInvalid(t *testing.T) {
	require.Equal(t, "unknown", sanitizeURL(""))
	require.Equal(t, "unknown", sanitizeURL("/relative/path"))
}
