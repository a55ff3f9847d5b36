package api

import (
	"github.com/phrazzld/scent-api/internal/cart"
	"github.com/phrazzld/scent-api/internal/catalog"
	"github.com/phrazzld/scent-api/internal/domain"
	"github.com/phrazzld/scent-api/internal/notify"
	"github.com/phrazzld/scent-api/internal/wishlist"
	"github.com/shopspring/decimal"
)

// Account requests. Required fields are checked by the account service so
// that every form reports the same message; the tags only bound sizes.

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Email           string `json:"email"           validate:"max=254"`
	Username        string `json:"username"        validate:"max=100"`
	Phone           string `json:"phone"           validate:"max=32"`
	Password        string `json:"password"        validate:"max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=72"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email      string `json:"email"      validate:"max=254"`
	Password   string `json:"password"   validate:"max=72"`
	RememberMe bool   `json:"rememberMe"`
}

// ProfileRequest is the editable part of the profile page.
type ProfileRequest struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName"  validate:"max=100"`
	Email     string `json:"email"     validate:"max=254"`
	Phone     string `json:"phone"     validate:"max=32"`
}

// ChangePasswordRequest is the password form of the profile page.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"max=72"`
	NewPassword     string `json:"newPassword"     validate:"max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=72"`
}

// SettingsRequest replaces all settings at once.
type SettingsRequest struct {
	EmailNotifications bool   `json:"emailNotifications"`
	MarketingEmails    bool   `json:"marketingEmails"`
	OrderUpdates       bool   `json:"orderUpdates"`
	NewArrivals        bool   `json:"newArrivals"`
	Language           string `json:"language"           validate:"required,max=16"`
	Timezone           string `json:"timezone"           validate:"max=64"`
	TwoFactorAuth      bool   `json:"twoFactorAuth"`
}

func (r SettingsRequest) toDomain() domain.Settings {
	return domain.Settings{
		EmailNotifications: r.EmailNotifications,
		MarketingEmails:    r.MarketingEmails,
		OrderUpdates:       r.OrderUpdates,
		NewArrivals:        r.NewArrivals,
		Language:           r.Language,
		Timezone:           r.Timezone,
		TwoFactorAuth:      r.TwoFactorAuth,
	}
}

// Account responses.

// LoginData mirrors the data block of the remote login response.
type LoginData struct {
	Name string `json:"name"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Data    LoginData    `json:"data"`
	Message string       `json:"message"`
}

// UserResponse wraps a user with an optional confirmation message.
type UserResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RememberedEmailResponse prefills the login form.
type RememberedEmailResponse struct {
	Email      string `json:"email"`
	RememberMe bool   `json:"rememberMe"`
}

// SettingsResponse wraps the user's settings.
type SettingsResponse struct {
	Settings domain.Settings `json:"settings"`
	Message  string          `json:"message,omitempty"`
}

// Catalog responses.

// ProductsResponse lists products.
type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

// CategoriesResponse lists the catalog's fragrance families.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// Cart and wishlist requests.

// AddItemRequest names a catalog product or carries a full item.
// ProductID wins when both are given.
type AddItemRequest struct {
	ProductID string          `json:"productId" validate:"max=64"`
	ID        string          `json:"id"        validate:"max=64"`
	Name      string          `json:"name"      validate:"max=200"`
	Brand     string          `json:"brand"     validate:"max=200"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"  validate:"max=2048"`
	InStock   *bool           `json:"inStock"`
}

func (r AddItemRequest) lineItem() domain.LineItem {
	return domain.LineItem{
		ID:       r.ID,
		Name:     r.Name,
		Brand:    r.Brand,
		Price:    r.Price,
		ImageURL: r.ImageURL,
		InStock:  r.InStock,
	}
}

// QuantityRequest sets a cart line's quantity. Zero or less removes the line.
type QuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// Cart and wishlist responses.

// CartBody is the JSON form of a cart snapshot.
type CartBody struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

func newCartBody(v *cart.View) CartBody {
	return CartBody{Items: v.Items, Count: v.Count, Total: v.Total}
}

// WishlistBody is the JSON form of a wishlist snapshot.
type WishlistBody struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

func newWishlistBody(v *wishlist.View) WishlistBody {
	return WishlistBody{Items: v.Items, Count: v.Count, Total: v.Total}
}

// CartResponse is returned by every cart route.
type CartResponse struct {
	CartBody
	Notifications []notify.Notification `json:"notifications"`
}

// WishlistResponse is returned by the wishlist routes. Saved is set by toggle.
type WishlistResponse struct {
	WishlistBody
	Saved         *bool                 `json:"saved,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

// ContainsResponse answers whether an item is saved.
type ContainsResponse struct {
	ID         string `json:"id"`
	InWishlist bool   `json:"inWishlist"`
}

// MoveToCartResponse shows both collections after a move.
type MoveToCartResponse struct {
	Cart          CartBody              `json:"cart"`
	Wishlist      WishlistBody          `json:"wishlist"`
	Notifications []notify.Notification `json:"notifications"`
}

// Order responses.

// CheckoutResponse is returned after an order is placed.
type CheckoutResponse struct {
	Order         *domain.Order         `json:"order"`
	Cart          CartBody              `json:"cart"`
	Notifications []notify.Notification `json:"notifications"`
}

// OrdersResponse lists orders newest first.
type OrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}
