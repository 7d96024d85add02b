package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"tlux-project/microservices/dashboard-service/logging"
	"tlux-project/microservices/dashboard-service/models"
	"tlux-project/microservices/dashboard-service/services"
)

type TaskHandler struct {
	state   *services.StateService
	service *services.TaskService
}

func NewTaskHandler(state *services.StateService, service *services.TaskService) *TaskHandler {
	return &TaskHandler{state: state, service: service}
}

// checkRole proverava da li aktivni nalog ima neku od dozvoljenih uloga.
func checkRole(viewer models.User, allowedRoles ...models.Role) error {
	for _, role := range allowedRoles {
		if viewer.Role == role {
			return nil
		}
	}
	return fmt.Errorf("access forbidden: user does not have the required role")
}

// GetTasks vraća zadatke vidljive aktivnom nalogu, pod aktivnim filterom.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	viewer := h.state.Viewer()
	tasks := services.VisibleTasks(h.state.Tasks(), viewer, h.state.Filter())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tasks)
}

// CreateTask kreira zadatak. Dozvoljeno samo direktoru i šefu odeljenja, i
// samo ka osobama kojima nalog sme da delegira.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	viewer := h.state.Viewer()
	if err := checkRole(viewer, models.RoleDirector, models.RoleDeptHead); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if task.AssigneeID == "" {
		http.Error(w, "assigneeId is required", http.StatusBadRequest)
		return
	}

	assignable := services.AssignableUsers(h.state.Users(), viewer)
	allowed := false
	for _, user := range assignable {
		if user.ID == task.AssigneeID {
			allowed = true
			break
		}
	}
	if !allowed {
		http.Error(w, "assignee is not a known delegable user", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateTask(r.Context(), task)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created by %s", created.ID, viewer.Email)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ChangeTaskProgress menja napredak zadatka, uz graničnu proveru prava izmene.
func (h *TaskHandler) ChangeTaskProgress(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TaskID   string `json:"taskId"`
		Progress int    `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, ok := h.findTask(request.TaskID)
	if !ok {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	viewer := h.state.Viewer()
	if !services.CanEditTask(viewer, task) {
		http.Error(w, "Access forbidden: cannot edit tasks assigned to others", http.StatusForbidden)
		return
	}

	updated, err := h.service.UpdateProgress(r.Context(), request.TaskID, request.Progress)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(updated)
}

// ChangeTaskStatus menja status zadatka, uz graničnu proveru prava izmene.
func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TaskID string            `json:"taskId"`
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, ok := h.findTask(request.TaskID)
	if !ok {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	viewer := h.state.Viewer()
	if !services.CanEditTask(viewer, task) {
		http.Error(w, "Access forbidden: cannot edit tasks assigned to others", http.StatusForbidden)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), request.TaskID, request.Status)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(updated)
}

// SetFilter postavlja ceo filter sesije - nepostavljena polja se resetuju.
func (h *TaskHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var filter services.TaskFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	h.state.SetFilter(filter)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Filter applied"}`))
}

func (h *TaskHandler) ClearFilter(w http.ResponseWriter, r *http.Request) {
	h.state.ClearFilter()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Filter cleared"}`))
}

func (h *TaskHandler) findTask(taskID string) (models.Task, bool) {
	for _, task := range h.state.Tasks() {
		if task.ID == taskID {
			return task, true
		}
	}
	return models.Task{}, false
}

func (h *TaskHandler) writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrTaskNotFound) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
