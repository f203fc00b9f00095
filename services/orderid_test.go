package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"brew-commerce/models"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func generatorWithLast(t *testing.T, year int, lastOrderID string) *OrderIDGenerator {
	t.Helper()
	ledger := newMemOrderLedger()
	if lastOrderID != "" {
		require.NoError(t, ledger.Insert(context.Background(), &models.Order{OrderID: lastOrderID}))
	}
	g := NewOrderIDGenerator(ledger)
	g.now = fixedClock(year)
	return g
}

func TestOrderIDFirstOrderOfYear(t *testing.T) {
	g := generatorWithLast(t, 2025, "")

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2025001", id)
}

func TestOrderIDSameYearIncrements(t *testing.T) {
	g := generatorWithLast(t, 2025, "2025041")

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2025042", id)
}

func TestOrderIDYearRolloverResetsSerial(t *testing.T) {
	g := generatorWithLast(t, 2026, "2025999")

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2026001", id)
}

func TestOrderIDSerialIsZeroPadded(t *testing.T) {
	g := generatorWithLast(t, 2025, "2025008")

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2025009", id)
	require.Len(t, id, 7)
}

func TestOrderIDUnparsableLastIDStartsFresh(t *testing.T) {
	g := generatorWithLast(t, 2025, "legacy-id")

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2025001", id)
}
