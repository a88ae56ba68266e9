package store

// Collection names shared by the generic resources and the ticket domain.
const (
	Locations      = "locations"
	Vehicles       = "vehicles"
	SeatCatalogs   = "seat_catalogs"
	Seats          = "seats"
	TicketCatalogs = "ticket_catalogs"
	Trips          = "trips"
	Tickets        = "tickets"
	AgeCategories  = "age_categories"
	Users          = "users"
)
