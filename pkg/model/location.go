package model

// Location is a named point referenced by trips as departure or destination.
type Location struct {
	Model `bson:",inline"`

	Name string `json:"name" bson:"name" validate:"required,min=1,max=120"`
}
