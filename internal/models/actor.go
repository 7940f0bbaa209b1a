package models

import "github.com/google/uuid"

// Role - роль пользователя, выданная провайдером идентификации
type Role string

const (
	RoleUser      Role = "user"
	RoleResponder Role = "responder"
	RoleAdmin     Role = "admin"
)

// Actor - проверенный пользователь, от имени которого выполняется операция
type Actor struct {
	ID   uuid.UUID
	Role Role
	Name string
}

// DisplayName возвращает имя для сообщений пользователям
func (a Actor) DisplayName() string {
	if a.Name == "" {
		return "A volunteer"
	}
	return a.Name
}
