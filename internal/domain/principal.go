package domain

const (
	RoleClient = "CLIENT"
	RoleSeller = "SELLER"
)

type Principal struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

func (p Principal) IsSeller() bool {
	return p.Role == RoleSeller
}
