package handlers

import (
	"encoding/json"
	"net/http"

	"tlux-project/microservices/dashboard-service/logging"
	"tlux-project/microservices/dashboard-service/models"
	"tlux-project/microservices/dashboard-service/services"
)

type UserHandler struct {
	state   *services.StateService
	service *services.UserService
}

func NewUserHandler(state *services.StateService, service *services.UserService) *UserHandler {
	return &UserHandler{state: state, service: service}
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.state.Users())
}

// GetAssignableUsers vraća kome aktivni nalog sme da delegira zadatke.
func (h *UserHandler) GetAssignableUsers(w http.ResponseWriter, r *http.Request) {
	assignable := services.AssignableUsers(h.state.Users(), h.state.Viewer())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(assignable)
}

// CreateUser dodaje novog korisnika. Dozvoljeno samo direktoru i šefu
// odeljenja.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	viewer := h.state.Viewer()
	if err := checkRole(viewer, models.RoleDirector, models.RoleDeptHead); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateUser(r.Context(), user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logging.Logger.Infof("Event ID: USER_CREATED, Description: User %s (%s) created by %s", created.ID, created.Email, viewer.Email)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *UserHandler) GetViewer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.state.Viewer())
}

// SelectViewer menja aktivni nalog sesije.
func (h *UserHandler) SelectViewer(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	viewer, err := h.state.SelectViewer(r.Context(), request.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(viewer)
}
