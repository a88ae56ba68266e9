package model

const (
	VehicleActive      = "active"
	VehicleInactive    = "inactive"
	VehicleMaintenance = "maintenance"
)

type Vehicle struct {
	Model `bson:",inline"`

	Name   string `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Status string `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=active inactive maintenance"`
}
