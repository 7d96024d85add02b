package models

type Role string

const (
	RoleDirector Role = "director"
	RoleDeptHead Role = "department_head"
	RoleStaff    Role = "staff"
)

type User struct {
	ID     string `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Role   Role   `bson:"role" json:"role"`
	Avatar string `bson:"avatar" json:"avatar"`
}
