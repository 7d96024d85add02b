package models

type TaskStatus string

const (
	StatusTodo    TaskStatus = "todo"
	StatusDoing   TaskStatus = "doing"
	StatusOverdue TaskStatus = "overdue"
	StatusDone    TaskStatus = "done"
)

type TaskType string

const (
	TypeFlooring    TaskType = "flooring"
	TypeDesign3D    TaskType = "design_3d"
	TypeWallPanel   TaskType = "wall_panel"
	TypePartnerCare TaskType = "partner_care"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

type Task struct {
	ID         string     `json:"id" bson:"_id"`
	ProjectID  string     `json:"projectId" bson:"projectId"`
	Title      string     `json:"title" bson:"title"`
	Type       TaskType   `json:"type" bson:"type"`
	Priority   Priority   `json:"priority" bson:"priority"`
	AssigneeID string     `json:"assigneeId" bson:"assigneeId"`
	StartDate  string     `json:"startDate" bson:"startDate"`
	EndDate    string     `json:"endDate" bson:"endDate"`
	Status     TaskStatus `json:"status" bson:"status"`
	Progress   int        `json:"progress" bson:"progress"` // 0-100
	Notes      string     `json:"notes" bson:"notes"`
}
