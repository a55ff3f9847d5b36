package domain

// Loyalty point weights.
const (
	PointsPerOrder        = 100
	PointsPerDelivery     = 50
	PointsPerWishlistItem = 10

	recentActivityLimit = 4
)

// UserStats summarizes a user's account activity.
type UserStats struct {
	TotalOrders     int        `json:"totalOrders"`
	DeliveredOrders int        `json:"deliveredOrders"`
	WishlistItems   int        `json:"wishlistItems"`
	LoyaltyPoints   int        `json:"loyaltyPoints"`
	RecentActivity  []Activity `json:"recentActivity"`
}

// ComputeStats derives UserStats from a user's order history and the size
// of their saved wishlist. Orders are taken in stored order.
func ComputeStats(orders []Order, wishlistItems int) UserStats {
	stats := UserStats{
		TotalOrders:    len(orders),
		WishlistItems:  wishlistItems,
		RecentActivity: make([]Activity, 0, recentActivityLimit),
	}
	for i := range orders {
		if orders[i].Status == OrderDelivered {
			stats.DeliveredOrders++
		}
		if i < recentActivityLimit {
			stats.RecentActivity = append(stats.RecentActivity, orders[i].Activity())
		}
	}
	stats.LoyaltyPoints = stats.TotalOrders*PointsPerOrder +
		stats.DeliveredOrders*PointsPerDelivery +
		stats.WishlistItems*PointsPerWishlistItem
	return stats
}
