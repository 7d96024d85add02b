package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tlux-project/microservices/dashboard-service/handlers"
	"tlux-project/microservices/dashboard-service/models"
	"tlux-project/microservices/dashboard-service/repositories"
	"tlux-project/microservices/dashboard-service/services"
)

type testEnv struct {
	state       *services.StateService
	taskHandler *handlers.TaskHandler
	userHandler *handlers.UserHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repositories.NewMemoryStateRepository()
	state, err := services.NewStateService(context.Background(), store)
	if err != nil {
		t.Fatalf("NewStateService failed: %v", err)
	}

	return &testEnv{
		state:       state,
		taskHandler: handlers.NewTaskHandler(state, services.NewTaskService(state)),
		userHandler: handlers.NewUserHandler(state, services.NewUserService(state)),
	}
}

func (env *testEnv) selectViewer(t *testing.T, email string) {
	t.Helper()
	if _, err := env.state.SelectViewer(context.Background(), email); err != nil {
		t.Fatalf("SelectViewer failed: %v", err)
	}
}

func decodeTasks(t *testing.T, rec *httptest.ResponseRecorder) []models.Task {
	t.Helper()
	var tasks []models.Task
	if err := json.NewDecoder(rec.Body).Decode(&tasks); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return tasks
}

func TestGetTasks_StaffSeesOnlyOwnTasks(t *testing.T) {
	env := newTestEnv(t)
	env.selectViewer(t, "nhanvien@tlux.vn")

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	env.taskHandler.GetTasks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	tasks := decodeTasks(t, rec)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks for staff viewer, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.AssigneeID != "u3" {
			t.Errorf("staff must not see task %s", task.ID)
		}
	}
}

func TestGetTasks_AppliesSessionFilter(t *testing.T) {
	env := newTestEnv(t)

	filterReq := httptest.NewRequest(http.MethodPost, "/api/filters", strings.NewReader(`{"status":"overdue"}`))
	rec := httptest.NewRecorder()
	env.taskHandler.SetFilter(rec, filterReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("SetFilter returned %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.taskHandler.GetTasks(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	tasks := decodeTasks(t, rec)
	if len(tasks) != 1 || tasks[0].ID != "t3" {
		t.Fatalf("expected only the overdue task t3, got %v", tasks)
	}

	rec = httptest.NewRecorder()
	env.taskHandler.ClearFilter(rec, httptest.NewRequest(http.MethodDelete, "/api/filters", nil))

	rec = httptest.NewRecorder()
	env.taskHandler.GetTasks(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	if tasks := decodeTasks(t, rec); len(tasks) != 4 {
		t.Fatalf("expected full set after clearing filter, got %d", len(tasks))
	}
}

func TestCreateTask_StaffForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.selectViewer(t, "nhanvien@tlux.vn")

	body := `{"title":"X","assigneeId":"u3"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.taskHandler.CreateTask(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff, got %d", rec.Code)
	}
}

func TestCreateTask_MissingAssignee(t *testing.T) {
	env := newTestEnv(t)

	lengthBefore := len(env.state.Tasks())

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"X"}`))
	rec := httptest.NewRecorder()
	env.taskHandler.CreateTask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(env.state.Tasks()) != lengthBefore {
		t.Error("failed creation must not change the collection")
	}
}

func TestCreateTask_DirectorCreatesAtFront(t *testing.T) {
	env := newTestEnv(t)

	body := `{"projectId":"p1","title":"Lát sàn tầng 2","type":"flooring","priority":"high","assigneeId":"u3"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.taskHandler.CreateTask(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.Task
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	tasks := env.state.Tasks()
	if tasks[0].ID != created.ID {
		t.Errorf("new task must be first in the collection, found %s", tasks[0].ID)
	}
}

func TestCreateTask_DeptHeadCannotAssignToDirector(t *testing.T) {
	env := newTestEnv(t)
	env.selectViewer(t, "truongphong@tlux.vn")

	body := `{"title":"X","assigneeId":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.taskHandler.CreateTask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-delegable assignee, got %d", rec.Code)
	}
}

func TestChangeTaskStatus_StaffCannotEditForeignTask(t *testing.T) {
	env := newTestEnv(t)
	env.selectViewer(t, "nhanvien@tlux.vn")

	// t3 je dodeljen korisniku u2.
	body := `{"taskId":"t3","status":"done"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.taskHandler.ChangeTaskStatus(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestChangeTaskStatus_StaffEditsOwnTask(t *testing.T) {
	env := newTestEnv(t)
	env.selectViewer(t, "nhanvien@tlux.vn")

	body := `{"taskId":"t2","status":"done"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.taskHandler.ChangeTaskStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated models.Task
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Status != models.StatusDone || updated.Progress != 100 {
		t.Errorf("expected done/100, got %s/%d", updated.Status, updated.Progress)
	}
}

func TestChangeTaskProgress_FullProgress(t *testing.T) {
	env := newTestEnv(t)

	body := `{"taskId":"t2","progress":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/progress", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.taskHandler.ChangeTaskProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var updated models.Task
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Status != models.StatusDone {
		t.Errorf("expected status done at 100%%, got %s", updated.Status)
	}
}

func TestChangeTaskProgress_UnknownTask(t *testing.T) {
	env := newTestEnv(t)

	body := `{"taskId":"t-missing","progress":50}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/progress", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.taskHandler.ChangeTaskProgress(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
