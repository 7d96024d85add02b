package services

import (
	"context"
	"fmt"
	"sync"

	"tlux-project/microservices/dashboard-service/models"

	"github.com/google/uuid"
)

type UserService struct {
	state *StateService
	mu    sync.Mutex
}

func NewUserService(state *StateService) *UserService {
	return &UserService{state: state}
}

// CreateUser pravi novog korisnika sa svežim ID-jem i avatarom izvedenim iz
// ID-ja, i dodaje ga na kraj kolekcije (redosled prikaza se čuva).
func (s *UserService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if user.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if user.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if user.Role == "" {
		user.Role = models.RoleStaff
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.state.Users()
	for _, existing := range users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("user with email %s already exists", user.Email)
		}
	}

	user.ID = "u-" + uuid.New().String()
	user.Avatar = fmt.Sprintf("https://picsum.photos/seed/%s/100", user.ID)

	users = append(users, user)
	if err := s.state.SetUsers(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}
