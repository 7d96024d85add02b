package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tlux-project/microservices/dashboard-service/models"
	"tlux-project/microservices/dashboard-service/services"
)

type ReportHandler struct {
	state   *services.StateService
	service *services.ReportService
}

func NewReportHandler(state *services.StateService, service *services.ReportService) *ReportHandler {
	return &ReportHandler{state: state, service: service}
}

// RequestReport pokreće AI analizu. Zaposleni nema pristup; dok je analiza
// u toku novi zahtev se odbija.
func (h *ReportHandler) RequestReport(w http.ResponseWriter, r *http.Request) {
	viewer := h.state.Viewer()
	if err := checkRole(viewer, models.RoleDirector, models.RoleDeptHead); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	if err := h.service.RequestReport(); err != nil {
		if errors.Is(err, services.ErrReportInProgress) {
			http.Error(w, "Report generation already in progress", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"message": "Report generation started"}`))
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, analyzing := h.service.Report()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"report":    report,
		"analyzing": analyzing,
	})
}

func (h *ReportHandler) ClearReport(w http.ResponseWriter, r *http.Request) {
	h.service.ClearReport()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Report cleared"}`))
}
