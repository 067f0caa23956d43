package valueobjects

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// CanUseService reports whether the status alone permits paid-tier access.
// Cancelled subscriptions keep access until the period end; that grace-period
// rule is applied on the aggregate, not here.
func (s SubscriptionStatus) CanUseService() bool {
	return s == StatusActive || s == StatusCancelled
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusCancelled: true,
	StatusExpired:   true,
}
