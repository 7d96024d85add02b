package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tlux-project/microservices/dashboard-service/models"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskService struct {
	state *StateService
	mu    sync.Mutex
}

func NewTaskService(state *StateService) *TaskService {
	return &TaskService{state: state}
}

// UpdateProgress postavlja napredak zadatka. Na 100% se status automatski
// prebacuje na "done"; u suprotnom se status ne dira.
func (s *TaskService) UpdateProgress(ctx context.Context, taskID string, progress int) (*models.Task, error) {
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("progress must be between 0 and 100, got %d", progress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.state.Tasks()
	index := findTask(tasks, taskID)
	if index < 0 {
		return nil, ErrTaskNotFound
	}

	tasks[index].Progress = progress
	if progress == 100 {
		tasks[index].Status = models.StatusDone
	}

	if err := s.state.SetTasks(ctx, tasks); err != nil {
		return nil, err
	}
	updated := tasks[index]
	return &updated, nil
}

// UpdateStatus postavlja status zadatka. Status "done" povlači napredak na
// 100%; skidanje sa "done" NE vraća napredak nazad - zatečena vrednost od
// 100% uz drugi status je dozvoljeno stanje.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.state.Tasks()
	index := findTask(tasks, taskID)
	if index < 0 {
		return nil, ErrTaskNotFound
	}

	tasks[index].Status = status
	if status == models.StatusDone {
		tasks[index].Progress = 100
	}

	if err := s.state.SetTasks(ctx, tasks); err != nil {
		return nil, err
	}
	updated := tasks[index]
	return &updated, nil
}

// CreateTask pravi novi zadatak sa svežim ID-jem i ubacuje ga na početak
// kolekcije (najnoviji prvi). Zadatak bez zaduženog se odbija; projectId se
// namerno ne proverava - projekti su referentni podaci van ovog servisa.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	if task.AssigneeID == "" {
		return nil, fmt.Errorf("assigneeId is required")
	}

	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityNormal
	}
	task.ID = "t-" + uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := append([]models.Task{task}, s.state.Tasks()...)
	if err := s.state.SetTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

func findTask(tasks []models.Task, taskID string) int {
	for i := range tasks {
		if tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}
