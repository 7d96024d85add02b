package models

// Mapiranje logičkih vrednosti na display labele (vijetnamski, kao u T-Lux UI).
// Nepoznata vrednost se prikazuje kakva jeste - nikad greška.

var roleLabels = map[Role]string{
	RoleDirector: "Giám đốc",
	RoleDeptHead: "Trưởng phòng",
	RoleStaff:    "Nhân viên",
}

var statusLabels = map[TaskStatus]string{
	StatusTodo:    "Chưa làm",
	StatusDoing:   "Đang làm",
	StatusOverdue: "Trễ",
	StatusDone:    "Xong",
}

var typeLabels = map[TaskType]string{
	TypeFlooring:    "Lát sàn",
	TypeDesign3D:    "Thiết kế 3D",
	TypeWallPanel:   "Thi công tấm ốp",
	TypePartnerCare: "Chăm sóc đối tác (khách hàng)",
}

var priorityLabels = map[Priority]string{
	PriorityHigh:   "Quan trọng",
	PriorityNormal: "Bình thường",
}

func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

func (s TaskStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (t TaskType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}
