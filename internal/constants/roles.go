package constants

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
