package models

// Početni podaci - koriste se kada u bazi još nema sačuvanog stanja.

func SeedUsers() []User {
	return []User{
		{ID: "u1", Name: "Nguyễn Văn Giám Đốc", Email: "giamdoc@tlux.vn", Role: RoleDirector, Avatar: "https://picsum.photos/seed/director/100"},
		{ID: "u2", Name: "Trần Thị Trưởng Phòng", Email: "truongphong@tlux.vn", Role: RoleDeptHead, Avatar: "https://picsum.photos/seed/manager/100"},
		{ID: "u3", Name: "Lê Văn Nhân Viên", Email: "nhanvien@tlux.vn", Role: RoleStaff, Avatar: "https://picsum.photos/seed/staff/100"},
	}
}

func SeedProjects() []Project {
	return []Project{
		{ID: "p1", Name: "Chung cư Vinhomes Central Park", Client: "Anh Hùng", Status: ProjectActive},
		{ID: "p2", Name: "Biệt thự Thảo Điền", Client: "Chị Lan", Status: ProjectActive},
		{ID: "p3", Name: "Văn phòng FPT Tower", Client: "FPT Corp", Status: ProjectCompleted},
	}
}

func SeedTasks() []Task {
	return []Task{
		{
			ID:         "t1",
			ProjectID:  "p1",
			Title:      "Lát sàn gỗ phòng khách",
			Type:       TypeFlooring,
			Priority:   PriorityHigh,
			AssigneeID: "u3",
			StartDate:  "2024-05-10",
			EndDate:    "2024-05-12",
			Status:     StatusDone,
			Progress:   100,
			Notes:      "Sàn gỗ công nghiệp 12mm cao cấp",
		},
		{
			ID:         "t2",
			ProjectID:  "p1",
			Title:      "Thi công tấm ốp tường PVC",
			Type:       TypeWallPanel,
			Priority:   PriorityNormal,
			AssigneeID: "u3",
			StartDate:  "2025-02-10",
			EndDate:    "2025-02-25",
			Status:     StatusDoing,
			Progress:   45,
			Notes:      "Kiểm tra kỹ các mối nối keo",
		},
		{
			ID:         "t3",
			ProjectID:  "p2",
			Title:      "Phối cảnh 3D phòng ngủ",
			Type:       TypeDesign3D,
			Priority:   PriorityHigh,
			AssigneeID: "u2",
			StartDate:  "2024-01-01",
			EndDate:    "2024-01-05",
			Status:     StatusOverdue,
			Progress:   80,
			Notes:      "Khách hàng yêu cầu thêm hiệu ứng ánh sáng",
		},
		{
			ID:         "t4",
			ProjectID:  "p2",
			Title:      "Tư vấn hợp đồng sàn nhựa",
			Type:       TypePartnerCare,
			Priority:   PriorityNormal,
			AssigneeID: "u2",
			StartDate:  "2025-02-15",
			EndDate:    "2025-02-20",
			Status:     StatusTodo,
			Progress:   0,
			Notes:      "Dự án nhà phố Quận 7",
		},
	}
}
