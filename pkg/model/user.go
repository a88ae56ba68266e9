package model

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// User exists for credential issuance; there is no password flow here.
type User struct {
	Model `bson:",inline"`

	Name  string `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Email string `json:"email" bson:"email" validate:"required,email"`
	Role  string `json:"role" bson:"role" validate:"required,oneof=admin staff customer"`
}
