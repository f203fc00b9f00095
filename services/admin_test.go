package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"brew-commerce/models"
	"brew-commerce/store"
)

// stubDirectory is a canned UserDirectory.
type stubDirectory struct {
	count       int64
	users       []models.User
	googleUsers []models.GoogleUser
	deleted     []string
}

func (s *stubDirectory) CountUsers(context.Context) (int64, error) {
	return s.count, nil
}

func (s *stubDirectory) ListUsers(context.Context) ([]models.User, error) {
	return s.users, nil
}

func (s *stubDirectory) ListGoogleUsers(context.Context) ([]models.GoogleUser, error) {
	return s.googleUsers, nil
}

func (s *stubDirectory) DeleteUser(_ context.Context, userID string) error {
	s.deleted = append(s.deleted, userID)
	return nil
}

func seedOrders(t *testing.T, ledger *memOrderLedger, totals ...float64) {
	t.Helper()
	for i, total := range totals {
		require.NoError(t, ledger.Insert(context.Background(), &models.Order{
			OrderID: string(rune('A' + i)),
			Email:   "alice@example.com",
			Status:  models.OrderStatusPending,
			Total:   total,
		}))
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	ledger := newMemOrderLedger()
	seedOrders(t, ledger, 100)
	svc := NewAdminService(ledger, &stubDirectory{})

	_, err := svc.UpdateStatus(context.Background(), "A", "Shipped")
	var invalid *InvalidStatusError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "Shipped", invalid.Status)

	// Nothing was written.
	require.Equal(t, models.OrderStatusPending, ledger.get("A").Status)
}

func TestUpdateStatusTransitionsAndReturnsOrder(t *testing.T) {
	ledger := newMemOrderLedger()
	seedOrders(t, ledger, 100)
	svc := NewAdminService(ledger, &stubDirectory{})

	order, err := svc.UpdateStatus(context.Background(), "A", "Approved")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusApproved, order.Status)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc := NewAdminService(newMemOrderLedger(), &stubDirectory{})

	_, err := svc.UpdateStatus(context.Background(), "ghost", "Approved")
	require.ErrorIs(t, err, store.ErrOrderNotFound)
}

func TestCancelOrderByOwner(t *testing.T) {
	ledger := newMemOrderLedger()
	seedOrders(t, ledger, 100)
	svc := NewAdminService(ledger, &stubDirectory{})

	err := svc.CancelOrder(context.Background(), "A", "ALICE@example.com", "ordered twice")
	require.NoError(t, err)

	order := ledger.get("A")
	require.Equal(t, models.OrderStatusCancelled, order.Status)
	require.Equal(t, "ordered twice", order.CancelReason)
}

func TestCancelOrderWrongOwner(t *testing.T) {
	ledger := newMemOrderLedger()
	seedOrders(t, ledger, 100)
	svc := NewAdminService(ledger, &stubDirectory{})

	err := svc.CancelOrder(context.Background(), "A", "mallory@example.com", "mine now")
	require.ErrorIs(t, err, ErrCancelForbidden)
	require.Equal(t, models.OrderStatusPending, ledger.get("A").Status)
}

func TestCancelOrderAlreadyCancelled(t *testing.T) {
	ledger := newMemOrderLedger()
	seedOrders(t, ledger, 100)
	require.NoError(t, ledger.Cancel(context.Background(), "A", "first"))
	svc := NewAdminService(ledger, &stubDirectory{})

	err := svc.CancelOrder(context.Background(), "A", "alice@example.com", "again")
	require.ErrorIs(t, err, ErrAlreadyCancelled)
	require.Equal(t, "first", ledger.get("A").CancelReason)
}

func TestStatsRevenueIsRecentWindow(t *testing.T) {
	ledger := newMemOrderLedger()
	// Seven orders; revenue must cover only the five most recent.
	seedOrders(t, ledger, 10, 20, 100, 100, 100, 100, 100)
	svc := NewAdminService(ledger, &stubDirectory{count: 42})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), stats.TotalUsers)
	require.Equal(t, int64(7), stats.TotalOrders)
	require.Equal(t, 500.0, stats.TotalRevenue)
	require.Len(t, stats.RecentOrders, 5)
}

func TestListAccountsMergesAndDedupes(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	dir := &stubDirectory{
		users: []models.User{
			{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com", CreatedAt: older},
			{ID: primitive.NewObjectID(), Username: "bob", Email: "bob@example.com", CreatedAt: older},
		},
		googleUsers: []models.GoogleUser{
			// Same email as the password account, created later: wins the merge.
			{ID: primitive.NewObjectID(), Username: "alice-g", Email: "Alice@Example.com", CreatedAt: newer},
		},
	}
	svc := NewAdminService(newMemOrderLedger(), dir)

	accounts, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	// Newest first; alice's google record replaced the password one.
	require.Equal(t, "alice-g", accounts[0].Username)
	require.Equal(t, "google", accounts[0].LoginMethod)
	require.Equal(t, "bob", accounts[1].Username)
}

func TestListAccountsFallsBackToObjectIDTimestamp(t *testing.T) {
	id := primitive.NewObjectIDFromTimestamp(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
	dir := &stubDirectory{
		users: []models.User{{ID: id, Username: "carol", Email: "carol@example.com"}},
	}
	svc := NewAdminService(newMemOrderLedger(), dir)

	accounts, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, 2023, accounts[0].CreatedAt.Year())
}

func TestDeleteAccount(t *testing.T) {
	dir := &stubDirectory{}
	svc := NewAdminService(newMemOrderLedger(), dir)

	require.NoError(t, svc.DeleteAccount(context.Background(), "user-1"))
	require.Equal(t, []string{"user-1"}, dir.deleted)
}
