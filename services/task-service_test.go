package services_test

import (
	"context"
	"strings"
	"testing"

	"tlux-project/microservices/dashboard-service/models"
	"tlux-project/microservices/dashboard-service/repositories"
	"tlux-project/microservices/dashboard-service/services"
)

func newTestState(t *testing.T) (*services.StateService, *repositories.MemoryStateRepository) {
	t.Helper()

	store := repositories.NewMemoryStateRepository()
	state, err := services.NewStateService(context.Background(), store)
	if err != nil {
		t.Fatalf("NewStateService failed: %v", err)
	}
	return state, store
}

func findByID(t *testing.T, tasks []models.Task, id string) models.Task {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not found", id)
	return models.Task{}
}

func TestUpdateProgress_FullProgressForcesDone(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	// t2 je u seed podacima "doing" sa 45%.
	updated, err := service.UpdateProgress(context.Background(), "t2", 100)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	if updated.Progress != 100 {
		t.Errorf("expected progress 100, got %d", updated.Progress)
	}
	if updated.Status != models.StatusDone {
		t.Errorf("expected status done, got %s", updated.Status)
	}
}

func TestUpdateProgress_PartialProgressLeavesStatus(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	before := findByID(t, state.Tasks(), "t2").Status

	updated, err := service.UpdateProgress(context.Background(), "t2", 99)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	if updated.Progress != 99 {
		t.Errorf("expected progress 99, got %d", updated.Progress)
	}
	if updated.Status != before {
		t.Errorf("status must stay %s, got %s", before, updated.Status)
	}
}

func TestUpdateProgress_RejectsOutOfRange(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	for _, progress := range []int{-1, 101} {
		if _, err := service.UpdateProgress(context.Background(), "t2", progress); err == nil {
			t.Errorf("expected error for progress %d", progress)
		}
	}

	if task := findByID(t, state.Tasks(), "t2"); task.Progress != 45 {
		t.Errorf("rejected update must not change state, progress is %d", task.Progress)
	}
}

func TestUpdateStatus_DoneForcesFullProgress(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	updated, err := service.UpdateStatus(context.Background(), "t2", models.StatusDone)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if updated.Status != models.StatusDone {
		t.Errorf("expected status done, got %s", updated.Status)
	}
	if updated.Progress != 100 {
		t.Errorf("expected progress 100, got %d", updated.Progress)
	}
}

func TestUpdateStatus_LeavingDoneKeepsStaleProgress(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	// t1 je u seed podacima "done" sa 100%. Skidanje sa "done" namerno
	// ostavlja napredak na 100%.
	updated, err := service.UpdateStatus(context.Background(), "t1", models.StatusDoing)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if updated.Status != models.StatusDoing {
		t.Errorf("expected status doing, got %s", updated.Status)
	}
	if updated.Progress != 100 {
		t.Errorf("stale progress must remain 100, got %d", updated.Progress)
	}
}

func TestUpdateStatus_UnknownTask(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	if _, err := service.UpdateStatus(context.Background(), "t-missing", models.StatusDone); err != services.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestCreateTask_RequiresAssignee(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	lengthBefore := len(state.Tasks())

	_, err := service.CreateTask(context.Background(), models.Task{Title: "Bez zaduzenog"})
	if err == nil {
		t.Fatal("expected validation error for missing assignee")
	}

	if len(state.Tasks()) != lengthBefore {
		t.Errorf("failed creation must not change the collection, length went from %d to %d", lengthBefore, len(state.Tasks()))
	}
}

func TestCreateTask_PrependsWithFreshID(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	existing := make(map[string]bool)
	for _, task := range state.Tasks() {
		existing[task.ID] = true
	}

	created, err := service.CreateTask(context.Background(), models.Task{
		ProjectID:  "p1",
		Title:      "Lát sàn tầng 2",
		Type:       models.TypeFlooring,
		AssigneeID: "u3",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if created.ID == "" || existing[created.ID] {
		t.Errorf("expected fresh unique id, got %q", created.ID)
	}
	if !strings.HasPrefix(created.ID, "t-") {
		t.Errorf("expected task id prefix t-, got %q", created.ID)
	}
	if created.Status != models.StatusTodo {
		t.Errorf("expected default status todo, got %s", created.Status)
	}

	tasks := state.Tasks()
	if tasks[0].ID != created.ID {
		t.Errorf("new task must be at index 0, found %s there", tasks[0].ID)
	}
	if len(tasks) != len(existing)+1 {
		t.Errorf("expected %d tasks, got %d", len(existing)+1, len(tasks))
	}
}

func TestCreateTask_DoesNotValidateProject(t *testing.T) {
	state, _ := newTestState(t)
	service := services.NewTaskService(state)

	// projectId se namerno ne proverava.
	if _, err := service.CreateTask(context.Background(), models.Task{ProjectID: "p-unknown", Title: "X", AssigneeID: "u3"}); err != nil {
		t.Fatalf("unknown projectId must be accepted, got %v", err)
	}
}

func TestUpdateProgress_EndToEndScenario(t *testing.T) {
	// Scenario: [{t1, u3, doing, 40}] + updateProgress(t1, 100)
	// -> [{t1, u3, done, 100}].
	store := repositories.NewMemoryStateRepository()
	seedStateTasks(t, store, []models.Task{{ID: "t1", AssigneeID: "u3", Status: models.StatusDoing, Progress: 40}})

	state, err := services.NewStateService(context.Background(), store)
	if err != nil {
		t.Fatalf("NewStateService failed: %v", err)
	}
	service := services.NewTaskService(state)

	if _, err := service.UpdateProgress(context.Background(), "t1", 100); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	tasks := state.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Status != models.StatusDone || tasks[0].Progress != 100 || tasks[0].AssigneeID != "u3" {
		t.Fatalf("unexpected final task state: %+v", tasks[0])
	}
}
