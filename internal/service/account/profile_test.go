package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	res := register(t, f)

	updated, err := f.svc.UpdateProfile(ctx, testClient, res.User.ID, ProfileUpdate{
		FirstName: "Janet",
		LastName:  "Doe-Smith",
		Email:     "Janet@Example.com ",
		Phone:     "",
	})
	require.NoError(t, err)
	assert.Equal(t, "janet@example.com", updated.Email)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Empty(t, updated.Phone)

	current, err := f.sessions.ForClient(testClient).CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "janet@example.com", current.Email)

	_, err = f.svc.Login(ctx, "client-2", LoginInput{Email: "janet@example.com", Password: "correct-horse"})
	assert.NoError(t, err, "password survives a profile update")
}

func TestUpdateProfile_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	res := register(t, f)

	_, err := f.svc.UpdateProfile(ctx, testClient, res.User.ID, ProfileUpdate{Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = f.svc.UpdateProfile(ctx, testClient, res.User.ID, ProfileUpdate{
		Email: "jane.doe@example.com",
		Phone: "555-CALL-NOW",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	_, err = f.svc.UpdateProfile(ctx, testClient, uuid.New(), ProfileUpdate{Email: "x@example.com"})
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	other := validRegistration()
	other.Email, other.Username = "other@example.com", "Other"
	_, err = f.svc.Register(ctx, "client-2", other)
	require.NoError(t, err)
	_, err = f.svc.UpdateProfile(ctx, testClient, res.User.ID, ProfileUpdate{Email: "OTHER@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	res := register(t, f)
	id := res.User.ID

	tests := []struct {
		name    string
		in      ChangePasswordInput
		wantErr error
	}{
		{"missing", ChangePasswordInput{Current: "correct-horse"}, ErrMissingFields},
		{"mismatch", ChangePasswordInput{"correct-horse", "battery-staple", "battery-stapler"}, ErrPasswordsDoNotMatch},
		{"too short", ChangePasswordInput{"correct-horse", "short", "short"}, ErrPasswordTooShort},
		{"wrong current", ChangePasswordInput{"wrong-horse", "battery-staple", "battery-staple"}, ErrIncorrectPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, f.svc.ChangePassword(ctx, id, tt.in), tt.wantErr)
		})
	}

	require.NoError(t, f.svc.ChangePassword(ctx, id, ChangePasswordInput{
		Current: "correct-horse",
		New:     "battery-staple",
		Confirm: "battery-staple",
	}))

	_, err := f.svc.Login(ctx, testClient, LoginInput{Email: "jane.doe@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, testClient, LoginInput{Email: "jane.doe@example.com", Password: "battery-staple"})
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	res := register(t, f)
	email := res.User.Email

	item := domain.CartItem{
		LineItem: domain.LineItem{ID: "2", Name: "Oud Noir", Brand: "Maison", Price: decimal.NewFromInt(185)},
		Quantity: 1,
	}
	for _, status := range []domain.OrderStatus{domain.OrderDelivered, domain.OrderShipped} {
		order, err := domain.NewOrder([]domain.CartItem{item}, time.Now())
		require.NoError(t, err)
		order.Status = status
		require.NoError(t, f.orders.Add(ctx, email, order))
	}
	require.NoError(t, f.svc.wishlists.Save(ctx, email, []domain.LineItem{item.LineItem}))

	stats, err := f.svc.Stats(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.WishlistItems)
	assert.Equal(t, 2*100+50+10, stats.LoyaltyPoints)
	require.Len(t, stats.RecentActivity, 2)
	assert.Equal(t, "Order Shipped", stats.RecentActivity[0].Action, "newest first")
}

func TestSettings(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	res := register(t, f)

	got, err := f.svc.Settings(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)

	got.MarketingEmails = true
	got.Language = "fr"
	require.NoError(t, f.svc.SaveSettings(ctx, res.User.ID, got))

	again, err := f.svc.Settings(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	got.Language = ""
	assert.ErrorIs(t, f.svc.SaveSettings(ctx, res.User.ID, got), domain.ErrEmptyLanguage)
}
