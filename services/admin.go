package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"brew-commerce/models"
)

// revenueWindow is the number of most-recent orders the dashboard revenue
// figure is summed over. Intentionally an approximation, not a full-table
// aggregate.
const revenueWindow = 5

// UserDirectory is the account listing surface consumed by the admin
// console.
type UserDirectory interface {
	CountUsers(ctx context.Context) (int64, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListGoogleUsers(ctx context.Context) ([]models.GoogleUser, error)
	DeleteUser(ctx context.Context, userID string) error
}

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	TotalUsers   int64          `json:"totalUsers"`
	TotalOrders  int64          `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	RecentOrders []models.Order `json:"recentOrders"`
}

// AdminService reviews orders, transitions their status, aggregates
// dashboard numbers, and manages accounts. Owner-initiated cancellation also
// lives here since it is a guarded status transition.
type AdminService struct {
	orders OrderLedger
	users  UserDirectory
}

func NewAdminService(orders OrderLedger, users UserDirectory) *AdminService {
	return &AdminService{orders: orders, users: users}
}

// ListOrders returns every order, newest first.
func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

// CustomerOrders returns one customer's order history, newest first.
func (s *AdminService) CustomerOrders(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.FindByEmail(ctx, email)
}

// UpdateStatus transitions an order to one of the recognized statuses and
// returns the updated order. Anything outside the lifecycle is rejected
// before any write happens.
func (s *AdminService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, &InvalidStatusError{Status: status}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, orderID)
}

// CancelOrder is the owner-initiated cancellation: permitted only when the
// order's email matches the caller's authenticated identity and the order is
// not already cancelled. Cancelling records the reason and marks every item
// in the snapshot Cancelled.
func (s *AdminService) CancelOrder(ctx context.Context, orderID, callerEmail, reason string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(order.Email, callerEmail) {
		return ErrCancelForbidden
	}
	if order.Status == models.OrderStatusCancelled {
		return ErrAlreadyCancelled
	}
	return s.orders.Cancel(ctx, orderID, reason)
}

// Stats aggregates the dashboard counters. Revenue is the sum of the
// revenueWindow most recent orders' totals.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	recent, err := s.orders.Recent(ctx, revenueWindow)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	revenue := 0.0
	for _, order := range recent {
		revenue += order.Total
	}

	return &DashboardStats{
		TotalUsers:   totalUsers,
		TotalOrders:  totalOrders,
		TotalRevenue: revenue,
		RecentOrders: recent,
	}, nil
}

// ListAccounts merges both identity partitions into one view, deduplicated
// by lowercased email keeping the most recently created record, newest
// first. Accounts without a created_at fall back to the timestamp embedded
// in their ObjectID.
func (s *AdminService) ListAccounts(ctx context.Context) ([]models.AccountSummary, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	googleUsers, err := s.users.ListGoogleUsers(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]models.AccountSummary, 0, len(users)+len(googleUsers))
	for _, u := range users {
		all = append(all, models.AccountSummary{
			ID:          u.ID.Hex(),
			Username:    u.Username,
			Email:       u.Email,
			Phone:       u.Phone,
			LoginMethod: "email",
			CreatedAt:   accountCreatedAt(u.ID, u.CreatedAt),
		})
	}
	for _, u := range googleUsers {
		all = append(all, models.AccountSummary{
			ID:          u.ID.Hex(),
			Username:    u.Username,
			Email:       u.Email,
			Phone:       u.Phone,
			LoginMethod: "google",
			CreatedAt:   accountCreatedAt(u.ID, u.CreatedAt),
		})
	}

	byKey := make(map[string]models.AccountSummary, len(all))
	for _, account := range all {
		key := strings.ToLower(account.Email)
		if key == "" {
			key = account.ID
		}
		existing, ok := byKey[key]
		if !ok || account.CreatedAt.After(existing.CreatedAt) {
			byKey[key] = account
		}
	}

	merged := make([]models.AccountSummary, 0, len(byKey))
	for _, account := range byKey {
		merged = append(merged, account)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

// DeleteAccount removes a password-based account.
func (s *AdminService) DeleteAccount(ctx context.Context, userID string) error {
	return s.users.DeleteUser(ctx, userID)
}

func accountCreatedAt(id primitive.ObjectID, createdAt time.Time) time.Time {
	if !createdAt.IsZero() {
		return createdAt
	}
	return id.Timestamp()
}
