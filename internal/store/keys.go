package store

import "github.com/phrazzld/scent-api/internal/domain"

// Keys of the persisted state layout.
const (
	KeyUsers           = "perfume_users"
	KeyCurrentUser     = "perfume_user"
	KeyLoggedIn        = "isLoggedIn"
	KeyRememberMe      = "rememberMe"
	KeyRememberedEmail = "rememberedEmail"
	KeyToken           = "token"

	PrefixOrders   = "orders_"
	PrefixWishlist = "wishlist_"
	PrefixSettings = "settings_"
)

// OrdersKey returns the key holding the orders of the user with email.
func OrdersKey(email string) string { return PrefixOrders + domain.NormalizeEmail(email) }

// WishlistKey returns the key holding the saved wishlist of the user with email.
func WishlistKey(email string) string { return PrefixWishlist + domain.NormalizeEmail(email) }

// SettingsKey returns the key holding the settings of the user with email.
func SettingsKey(email string) string { return PrefixSettings + domain.NormalizeEmail(email) }

// ScopedKey prefixes key with a client scope. An empty scope leaves the key
// untouched, which is how a single-client deployment such as the CLI stores it.
func ScopedKey(scope, key string) string {
	if scope == "" {
		return key
	}
	return scope + "/" + key
}
