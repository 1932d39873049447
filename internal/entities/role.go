package entities

// Role — закрытый перечислимый тип ролей. Единственный источник правды
// для всех компонентов: сверка строки с ролью происходит один раз на
// границе (при логине/загрузке пользователя), дальше везде ходит Role.
type Role string

const (
	RoleManager    Role = "MANAGER"
	RoleDispatcher Role = "DISPATCHER"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleDispatcher, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole приводит строку из БД/запроса к Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
