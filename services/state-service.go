package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tlux-project/microservices/dashboard-service/logging"
	"tlux-project/microservices/dashboard-service/models"
	"tlux-project/microservices/dashboard-service/repositories"
)

// StateService drži deljeno stanje jedne sesije: kolekcije korisnika i
// zadataka, izbor naloga i aktivni filter. Kolekcije se pri startu učitavaju
// iz trajnog skladišta (ili iz seed podataka), čuvaju se u memoriji i upisuju
// u celini pri svakoj promeni. Promene drugih sesija stižu preko Subscribe i
// menjaju celu kolekciju - poslednji upis pobeđuje, bez spajanja.
type StateService struct {
	store repositories.StateStore

	mu        sync.RWMutex
	users     []models.User
	tasks     []models.Task
	projects  []models.Project
	viewer    models.User
	filter    TaskFilter
	listeners []func(repositories.StateEvent)
}

// NewStateService učitava stanje iz skladišta. Nepostojeće ili neispravno
// sačuvano stanje se zamenjuje seed podacima; greška skladišta je fatalna
// za pozivaoca.
func NewStateService(ctx context.Context, store repositories.StateStore) (*StateService, error) {
	s := &StateService{
		store:    store,
		projects: models.SeedProjects(),
	}

	users, err := loadCollection[models.User](ctx, store, repositories.KeyUsers)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		users = models.SeedUsers()
	}
	s.users = users

	tasks, err := loadCollection[models.Task](ctx, store, repositories.KeyTasks)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = models.SeedTasks()
	}
	s.tasks = tasks

	// Izbor naloga se čita samo jednom, pri startu sesije.
	s.viewer = s.users[0]
	if raw, err := store.Load(ctx, repositories.KeyViewer); err == nil {
		for _, user := range s.users {
			if user.Email == string(raw) {
				s.viewer = user
				break
			}
		}
	}

	return s, nil
}

// loadCollection vraća nil i kada ključ ne postoji i kada je sadržaj
// neispravan - pozivalac tada koristi seed podatke.
func loadCollection[T any](ctx context.Context, store repositories.StateStore, key string) ([]T, error) {
	raw, err := store.Load(ctx, key)
	if err != nil {
		if err == repositories.ErrKeyNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %v", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logging.Logger.Warnf("Event ID: STATE_CORRUPT, Description: Stored %s is not valid JSON, falling back to seed data: %v", key, err)
		return nil, nil
	}
	return items, nil
}

// Start otvara pretplatu na promene deljenog skladišta.
func (s *StateService) Start(ctx context.Context) error {
	return s.store.Subscribe(ctx, s.handleEvent)
}

// AddListener registruje dodatnog primaoca store događaja (npr. websocket
// fan-out ka otvorenim tabovima).
func (s *StateService) AddListener(listener func(repositories.StateEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// handleEvent primenjuje obaveštenje o promeni: cela kolekcija se menja
// dolazećom vrednošću. Ključ izabranog naloga je privatan po sesiji i
// ne primenjuje se.
func (s *StateService) handleEvent(event repositories.StateEvent) {
	switch event.Key {
	case repositories.KeyUsers:
		var users []models.User
		if err := json.Unmarshal(event.NewValue, &users); err != nil {
			logging.Logger.Warnf("Event ID: SYNC_DECODE_ERROR, Description: Ignoring malformed %s event: %v", event.Key, err)
			return
		}
		s.mu.Lock()
		s.users = users
		s.mu.Unlock()
	case repositories.KeyTasks:
		var tasks []models.Task
		if err := json.Unmarshal(event.NewValue, &tasks); err != nil {
			logging.Logger.Warnf("Event ID: SYNC_DECODE_ERROR, Description: Ignoring malformed %s event: %v", event.Key, err)
			return
		}
		s.mu.Lock()
		s.tasks = tasks
		s.mu.Unlock()
	default:
		return
	}

	s.mu.RLock()
	listeners := make([]func(repositories.StateEvent), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

func (s *StateService) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return users
}

func (s *StateService) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

func (s *StateService) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]models.Project, len(s.projects))
	copy(projects, s.projects)
	return projects
}

func (s *StateService) Viewer() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewer
}

func (s *StateService) Filter() TaskFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter menja ceo filter - polja koja nisu poslata se resetuju.
func (s *StateService) SetFilter(filter TaskFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

func (s *StateService) ClearFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = TaskFilter{}
}

// SelectViewer menja aktivni nalog sesije i briše filter, kao pri promeni
// naloga u originalnom UI. Izbor se upisuje u skladište ali se nikad ne
// primenjuje iz tuđih obaveštenja.
func (s *StateService) SelectViewer(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	var selected *models.User
	for i := range s.users {
		if s.users[i].Email == email {
			selected = &s.users[i]
			break
		}
	}
	if selected == nil {
		s.mu.Unlock()
		return models.User{}, fmt.Errorf("no user with email %s", email)
	}
	s.viewer = *selected
	s.filter = TaskFilter{}
	viewer := s.viewer
	s.mu.Unlock()

	if err := s.store.Save(ctx, repositories.KeyViewer, []byte(viewer.Email)); err != nil {
		logging.Logger.Errorf("Event ID: VIEWER_PERSIST_FAILED, Description: Failed to persist viewer selection: %v", err)
	}
	return viewer, nil
}

// SetTasks menja celu kolekciju zadataka i upisuje je u skladište.
func (s *StateService) SetTasks(ctx context.Context, tasks []models.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to serialize tasks: %v", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	if err := s.store.Save(ctx, repositories.KeyTasks, data); err != nil {
		return fmt.Errorf("failed to persist tasks: %v", err)
	}
	return nil
}

// SetUsers menja celu kolekciju korisnika i upisuje je u skladište.
func (s *StateService) SetUsers(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to serialize users: %v", err)
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()

	if err := s.store.Save(ctx, repositories.KeyUsers, data); err != nil {
		return fmt.Errorf("failed to persist users: %v", err)
	}
	return nil
}
