package domain

// Role роль сотрудника, от имени которого выполняется операция
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleReception Role = "reception"
	RoleTherapist Role = "therapist"
)

// Actor — явный контекст вызывающей стороны: кто, с какой ролью и в рамках какого филиала
// Передается аргументом в каждую операцию; никакого ambient-состояния
type Actor struct {
	UserID   int64
	Role     Role
	BranchID int64
}

// CanManageBranch проверяет, что actor имеет право управлять данными филиала
// Admin видит все филиалы, остальные роли — только свой
func (a Actor) CanManageBranch(branchID int64) bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.BranchID == branchID
}

// CanCreateBookings проверяет, что роль допускает создание и изменение бронирований
func (a Actor) CanCreateBookings() bool {
	switch a.Role {
	case RoleAdmin, RoleManager, RoleReception:
		return true
	default:
		return false
	}
}

// CanRecordRevenue проверяет, что роль допускает записи в журнал выручки
func (a Actor) CanRecordRevenue() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}
