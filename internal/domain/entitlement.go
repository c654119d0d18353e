package domain

import "time"

// Decision is the computed entitlement for one capped action.
type Decision struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
	Used      int  `json:"used"`
}

// CanCreateStatus reports whether another status may be posted today.
func CanCreateStatus(plan Plan, statusesCreatedToday int) bool {
	return clampUsage(statusesCreatedToday) < CapacityOf(plan).MaxStatuses
}

// CanCreateProduct reports whether another product listing may be activated.
func CanCreateProduct(plan Plan, activeProductCount int) bool {
	return clampUsage(activeProductCount) < CapacityOf(plan).MaxProducts
}

// RemainingStatuses returns how many statuses may still be posted today.
func RemainingStatuses(plan Plan, statusesCreatedToday int) int {
	return remaining(CapacityOf(plan).MaxStatuses, statusesCreatedToday)
}

// RemainingProducts returns how many more product listings may be activated.
func RemainingProducts(plan Plan, activeProductCount int) int {
	return remaining(CapacityOf(plan).MaxProducts, activeProductCount)
}

// StatusDecision bundles the status checks for plan and usage.
func StatusDecision(plan Plan, statusesCreatedToday int) Decision {
	return Decision{
		Allowed:   CanCreateStatus(plan, statusesCreatedToday),
		Remaining: RemainingStatuses(plan, statusesCreatedToday),
		Limit:     CapacityOf(plan).MaxStatuses,
		Used:      clampUsage(statusesCreatedToday),
	}
}

// ProductDecision bundles the product checks for plan and usage.
func ProductDecision(plan Plan, activeProductCount int) Decision {
	return Decision{
		Allowed:   CanCreateProduct(plan, activeProductCount),
		Remaining: RemainingProducts(plan, activeProductCount),
		Limit:     CapacityOf(plan).MaxProducts,
		Used:      clampUsage(activeProductCount),
	}
}

// EffectivePlan is the tier a card is entitled to right now. A subscription
// that has expired, either by date or by the sweep's status flag, falls back
// to the free tier.
func EffectivePlan(plan Plan, status CardStatus, expiresAt *time.Time, now time.Time) Plan {
	if status == CardStatusExpired || IsExpired(expiresAt, now) {
		return PlanFree
	}
	return plan
}

func remaining(capacity, used int) int {
	r := capacity - clampUsage(used)
	if r < 0 {
		return 0
	}
	return r
}

// Counts come from the store; a negative value would otherwise grant extra quota.
func clampUsage(used int) int {
	if used < 0 {
		return 0
	}
	return used
}
