package models

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
)

// Project je referentni podatak - lifecycle se vodi van ovog servisa.
type Project struct {
	ID     string        `json:"id" bson:"_id"`
	Name   string        `json:"name" bson:"name"`
	Client string        `json:"client" bson:"client"`
	Status ProjectStatus `json:"status" bson:"status"`
}
