package handlers

import (
	"encoding/json"
	"net/http"

	"tlux-project/microservices/dashboard-service/models"
	"tlux-project/microservices/dashboard-service/services"
)

type DashboardHandler struct {
	state *services.StateService
}

func NewDashboardHandler(state *services.StateService) *DashboardHandler {
	return &DashboardHandler{state: state}
}

// GetDashboard vraća agregate za upravljački pregled. Zaposleni ga ne vidi.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	viewer := h.state.Viewer()
	if err := checkRole(viewer, models.RoleDirector, models.RoleDeptHead); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	stats := services.BuildDashboardStats(h.state.Tasks(), h.state.Users(), len(h.state.Projects()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}

func (h *DashboardHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.state.Projects())
}
