package domain

// Role роль учетной записи, разрешенная сервисом каталога пользователей
type Role string

const (
	RoleClient Role = "client"
	RoleShop   Role = "shop"
	RoleRider  Role = "rider"
	RoleAdmin  Role = "admin"
)

// IsValid сообщает, известна ли роль
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleShop, RoleRider, RoleAdmin:
		return true
	}
	return false
}

// Actor разрешенная пара (accountId, role) вызывающего
type Actor struct {
	AccountID int64
	Role      Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
