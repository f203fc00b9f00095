package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestConsumableOTPFilterRejectsStaleCodes(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	filter := consumableOTPFilter("User@Example.com", "123456", now)
	require.Equal(t, "user@example.com", filter["email"])
	require.Equal(t, "123456", filter["otp"])

	created, ok := filter["created_at"].(bson.M)
	require.True(t, ok, "filter must bound created_at")
	cutoff, ok := created["$gte"].(time.Time)
	require.True(t, ok)
	require.Equal(t, now.Add(-otpTTL), cutoff)

	// A code issued six minutes ago falls outside the window; one issued
	// four minutes ago is still inside it.
	require.True(t, now.Add(-6*time.Minute).Before(cutoff))
	require.False(t, now.Add(-4*time.Minute).Before(cutoff))
}
