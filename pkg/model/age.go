package model

// AgeCategory is a passenger age bracket with its fare discount percentage.
type AgeCategory struct {
	Model `bson:",inline"`

	Name     string  `json:"name" bson:"name" validate:"required,min=1,max=60"`
	Discount float64 `json:"discount,omitempty" bson:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
}
