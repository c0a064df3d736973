package entity

const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analista"
)

// Identity é o usuário autenticado da requisição, extraído do cookie de sessão
type Identity struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role"`
	TokenID string `json:"-"`
}

// IsAdmin verifica se o usuário pode editar encuestas e importar nóminas
func (u *Identity) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// HasRole verifica se o papel do usuário está entre os informados
func (u *Identity) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// MenuSections devolve as seções do menu visíveis para o papel
func (u *Identity) MenuSections() []string {
	sections := []string{"dashboard", "reportes", "incidencias"}
	if u.IsAdmin() {
		sections = append(sections, "encuestas", "importar")
	}
	return sections
}

// ValidRole indica se o papel é conhecido
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleAnalyst
}
