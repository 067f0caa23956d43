package valueobjects

import "fmt"

// PlanType represents the tier of a subscription plan
type PlanType string

const (
	// PlanTypeFree is the default tier every user starts on
	PlanTypeFree PlanType = "free"
	// PlanTypePro is the paid tier unlocked by checkout
	PlanTypePro PlanType = "pro"
	// PlanTypeEnterprise is the paid tier for organizations
	PlanTypeEnterprise PlanType = "enterprise"
)

// IsValid checks if the plan type is valid
func (pt PlanType) IsValid() bool {
	return pt == PlanTypeFree || pt == PlanTypePro || pt == PlanTypeEnterprise
}

// IsPaid checks if the plan type requires a billing relationship
func (pt PlanType) IsPaid() bool {
	return pt == PlanTypePro || pt == PlanTypeEnterprise
}

// String returns the string representation of the plan type
func (pt PlanType) String() string {
	return string(pt)
}

// NewPlanType creates a new PlanType from a string
func NewPlanType(s string) (PlanType, error) {
	pt := PlanType(s)
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid plan type: %s, must be 'free', 'pro', or 'enterprise'", s)
	}
	return pt, nil
}

var ValidPlanTypes = map[PlanType]bool{
	PlanTypeFree:       true,
	PlanTypePro:        true,
	PlanTypeEnterprise: true,
}
