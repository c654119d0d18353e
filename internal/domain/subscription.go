package domain

import "strings"

// Plan is a subscription tier identifier.
type Plan string

const (
	PlanFree      Plan = "free"
	PlanEssential Plan = "essential"
	PlanPremium   Plan = "premium"
	PlanUltimate  Plan = "ultimate"
)

// Capacity holds the creation limits granted by a plan.
//
// MaxStatuses is a per calendar day cap; MaxProducts caps the number of
// concurrently active listings.
type Capacity struct {
	MaxStatuses int    `json:"max_statuses"`
	MaxProducts int    `json:"max_products"`
	DisplayName string `json:"display_name"`
}

// planOrder lists the tiers from most restrictive to most generous.
// Capacities must be non-decreasing along this order.
var planOrder = []Plan{PlanFree, PlanEssential, PlanPremium, PlanUltimate}

var planCapacities = map[Plan]Capacity{
	PlanFree: {
		MaxStatuses: 3,
		MaxProducts: 0,
		DisplayName: "Free",
	},
	PlanEssential: {
		MaxStatuses: 15,
		MaxProducts: 5,
		DisplayName: "Essential",
	},
	PlanPremium: {
		MaxStatuses: 50,
		MaxProducts: 20,
		DisplayName: "Premium",
	},
	PlanUltimate: {
		MaxStatuses: 200,
		MaxProducts: 100,
		DisplayName: "Ultimate",
	},
}

// Plans returns every known tier in ascending order.
func Plans() []Plan {
	out := make([]Plan, len(planOrder))
	copy(out, planOrder)
	return out
}

// ParsePlan maps a stored plan identifier to a known tier.
// Empty or unrecognised identifiers resolve to PlanFree.
func ParsePlan(s string) Plan {
	p, _ := ParsePlanStrict(s)
	return p
}

// ParsePlanStrict is like ParsePlan but also reports whether s named a known tier.
func ParsePlanStrict(s string) (Plan, bool) {
	p := Plan(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := planCapacities[p]; ok {
		return p, true
	}
	return PlanFree, false
}

// CapacityOf returns the limits for a plan, falling back to the free tier.
func CapacityOf(plan Plan) Capacity {
	if c, ok := planCapacities[plan]; ok {
		return c
	}
	return planCapacities[PlanFree]
}

// Capacity returns the limits for p.
func (p Plan) Capacity() Capacity {
	return CapacityOf(p)
}

// Rank is the position of p in the tier order. Unknown plans rank as free.
func (p Plan) Rank() int {
	for i, known := range planOrder {
		if known == p {
			return i
		}
	}
	return 0
}

// AtLeast reports whether p is the same tier as other or a higher one.
func (p Plan) AtLeast(other Plan) bool {
	return p.Rank() >= other.Rank()
}

// String returns the plan identifier.
func (p Plan) String() string {
	return string(p)
}
