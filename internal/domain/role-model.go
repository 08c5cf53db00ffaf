package domain

// Platform roles, issued by the identity provider as a JWT claim.
const (
	RoleCreator    = "creator"
	RoleInvestor   = "investor"
	RoleProduction = "production"
)
