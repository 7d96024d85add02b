package services

import (
	"math"

	"tlux-project/microservices/dashboard-service/models"
)

// DashboardStats su agregati za upravljački pregled.
type DashboardStats struct {
	TotalTasks      int               `json:"totalTasks"`
	DoneTasks       int               `json:"doneTasks"`
	DoingTasks      int               `json:"doingTasks"`
	TodoTasks       int               `json:"todoTasks"`
	OverdueTasks    int               `json:"overdueTasks"`
	AverageProgress int               `json:"averageProgress"`
	ProjectCount    int               `json:"projectCount"`
	TypeBreakdown   []TypeStatusCount `json:"typeBreakdown"`
	Workloads       []UserWorkload    `json:"workloads"`
}

// TypeStatusCount je raspodela statusa unutar jednog tipa posla.
type TypeStatusCount struct {
	Type    models.TaskType `json:"type"`
	Label   string          `json:"label"`
	Done    int             `json:"done"`
	Doing   int             `json:"doing"`
	Todo    int             `json:"todo"`
	Overdue int             `json:"overdue"`
}

// UserWorkload je opterećenje jednog korisnika.
type UserWorkload struct {
	UserID          string      `json:"userId"`
	Name            string      `json:"name"`
	Role            models.Role `json:"role"`
	TaskCount       int         `json:"taskCount"`
	DoneCount       int         `json:"doneCount"`
	AverageProgress int         `json:"averageProgress"`
}

var allTaskTypes = []models.TaskType{
	models.TypeFlooring,
	models.TypeDesign3D,
	models.TypeWallPanel,
	models.TypePartnerCare,
}

// BuildDashboardStats računa agregate nad celim kolekcijama.
func BuildDashboardStats(tasks []models.Task, users []models.User, projectCount int) DashboardStats {
	stats := DashboardStats{
		TotalTasks:   len(tasks),
		ProjectCount: projectCount,
	}

	progressSum := 0
	for _, task := range tasks {
		progressSum += task.Progress
		switch task.Status {
		case models.StatusDone:
			stats.DoneTasks++
		case models.StatusDoing:
			stats.DoingTasks++
		case models.StatusTodo:
			stats.TodoTasks++
		case models.StatusOverdue:
			stats.OverdueTasks++
		}
	}
	if len(tasks) > 0 {
		stats.AverageProgress = int(math.Round(float64(progressSum) / float64(len(tasks))))
	}

	for _, taskType := range allTaskTypes {
		count := TypeStatusCount{Type: taskType, Label: taskType.Label()}
		for _, task := range tasks {
			if task.Type != taskType {
				continue
			}
			switch task.Status {
			case models.StatusDone:
				count.Done++
			case models.StatusDoing:
				count.Doing++
			case models.StatusTodo:
				count.Todo++
			case models.StatusOverdue:
				count.Overdue++
			}
		}
		stats.TypeBreakdown = append(stats.TypeBreakdown, count)
	}

	for _, user := range users {
		workload := UserWorkload{UserID: user.ID, Name: user.Name, Role: user.Role}
		userProgress := 0
		for _, task := range tasks {
			if task.AssigneeID != user.ID {
				continue
			}
			workload.TaskCount++
			userProgress += task.Progress
			if task.Status == models.StatusDone {
				workload.DoneCount++
			}
		}
		if workload.TaskCount > 0 {
			workload.AverageProgress = int(math.Round(float64(userProgress) / float64(workload.TaskCount)))
		}
		stats.Workloads = append(stats.Workloads, workload)
	}

	return stats
}
