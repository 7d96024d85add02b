package services

import (
	"tlux-project/microservices/dashboard-service/models"
)

// TaskFilter su nezavisni uslovi jednakosti koji se kombinuju AND logikom.
// Prazno polje znači da se uslov ne primenjuje.
type TaskFilter struct {
	Status     models.TaskStatus `json:"status,omitempty"`
	Type       models.TaskType   `json:"type,omitempty"`
	AssigneeID string            `json:"assigneeId,omitempty"`
}

func (f TaskFilter) IsZero() bool {
	return f.Status == "" && f.Type == "" && f.AssigneeID == ""
}

// VisibleTasks računa podskup zadataka koje dati nalog sme da vidi.
// Zaposleni vidi isključivo svoje zadatke, bez obzira na filter. Redosled
// ulazne kolekcije se čuva, ulaz se ne menja.
func VisibleTasks(tasks []models.Task, viewer models.User, filter TaskFilter) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if viewer.Role == models.RoleStaff && task.AssigneeID != viewer.ID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Type != "" && task.Type != filter.Type {
			continue
		}
		if filter.AssigneeID != "" && task.AssigneeID != filter.AssigneeID {
			continue
		}
		result = append(result, task)
	}
	return result
}

// AssignableUsers vraća kome dati nalog sme da delegira zadatke:
// direktor -> šefovi odeljenja i zaposleni, šef odeljenja -> zaposleni,
// zaposleni (i svaka nepoznata uloga) -> niko.
func AssignableUsers(users []models.User, viewer models.User) []models.User {
	result := make([]models.User, 0, len(users))
	switch viewer.Role {
	case models.RoleDirector:
		for _, user := range users {
			if user.Role == models.RoleDeptHead || user.Role == models.RoleStaff {
				result = append(result, user)
			}
		}
	case models.RoleDeptHead:
		for _, user := range users {
			if user.Role == models.RoleStaff {
				result = append(result, user)
			}
		}
	}
	return result
}

// CanEditTask je granična provera prava izmene: zaposleni sme da menja samo
// svoje zadatke, ostali sve. Mutacije je ne ponavljaju.
func CanEditTask(viewer models.User, task models.Task) bool {
	return viewer.Role != models.RoleStaff || task.AssigneeID == viewer.ID
}
