package handler

import (
	"net/http"

	"finderid-api/internal/domain"
)

type planResponse struct {
	Plan              domain.Plan `json:"plan"`
	DisplayName       string      `json:"display_name"`
	MaxStatusesPerDay int         `json:"max_statuses_per_day"`
	MaxActiveProducts int         `json:"max_active_products"`
}

// PlanHandler serves the public plan table.
type PlanHandler struct{}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// ListPlans returns every tier in ascending order.
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans := domain.Plans()
	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		c := p.Capacity()
		out = append(out, planResponse{
			Plan:              p,
			DisplayName:       c.DisplayName,
			MaxStatusesPerDay: c.MaxStatuses,
			MaxActiveProducts: c.MaxProducts,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": out})
}
