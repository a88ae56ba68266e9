package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"busline/internal/store"
	apperrors "busline/pkg/errors"
	"busline/pkg/sanitizer"
)

// SearchParams carries the four optional free-text criteria. Empty
// parameters impose no constraint; supplied parameters combine with AND.
type SearchParams struct {
	TicketCatalogName    string
	SeatName             string
	DeparturePointName   string
	DestinationPointName string
}

func (p *SearchParams) normalize() {
	p.TicketCatalogName = sanitizer.TrimAndNormalize(p.TicketCatalogName)
	p.SeatName = sanitizer.TrimAndNormalize(p.SeatName)
	p.DeparturePointName = sanitizer.TrimAndNormalize(p.DeparturePointName)
	p.DestinationPointName = sanitizer.TrimAndNormalize(p.DestinationPointName)
}

func (p SearchParams) empty() bool {
	return p.TicketCatalogName == "" &&
		p.SeatName == "" &&
		p.DeparturePointName == "" &&
		p.DestinationPointName == ""
}

func noMatch() error {
	return apperrors.NotFound("Matching tickets")
}

// Search resolves each supplied name into an identifier set over the
// related collection, ANDs the sets into one ticket filter, and returns the
// matches with relations expanded. A supplied name that matches nothing
// anywhere is a definitive miss: the whole search reports no match instead
// of silently dropping that constraint.
func (s *ticketService) Search(ctx context.Context, params SearchParams) ([]bson.M, error) {
	params.normalize()
	if params.empty() {
		return nil, noMatch()
	}

	filter := bson.M{}

	if params.TicketCatalogName != "" {
		ids, err := s.repo.CatalogIDsByName(ctx, params.TicketCatalogName)
		if err != nil {
			s.log.Error("Failed to resolve ticket catalog name", "name", params.TicketCatalogName, "error", err)
			return nil, apperrors.Internal("Failed to search tickets", err)
		}
		if len(ids) == 0 {
			return nil, noMatch()
		}
		filter["ticket_catalog_id"] = bson.M{"$in": ids}
	}

	if params.SeatName != "" {
		ids, err := s.repo.SeatIDsByName(ctx, params.SeatName)
		if err != nil {
			s.log.Error("Failed to resolve seat name", "name", params.SeatName, "error", err)
			return nil, apperrors.Internal("Failed to search tickets", err)
		}
		if len(ids) == 0 {
			return nil, noMatch()
		}
		filter["seat_id"] = bson.M{"$in": ids}
	}

	tripFilter := bson.M{}
	if params.DeparturePointName != "" {
		id, err := s.repo.LocationIDByName(ctx, params.DeparturePointName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, noMatch()
			}
			s.log.Error("Failed to resolve departure point name", "name", params.DeparturePointName, "error", err)
			return nil, apperrors.Internal("Failed to search tickets", err)
		}
		tripFilter["departure_point"] = id
	}
	if params.DestinationPointName != "" {
		id, err := s.repo.LocationIDByName(ctx, params.DestinationPointName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, noMatch()
			}
			s.log.Error("Failed to resolve destination point name", "name", params.DestinationPointName, "error", err)
			return nil, apperrors.Internal("Failed to search tickets", err)
		}
		tripFilter["destination_point"] = id
	}

	if len(tripFilter) > 0 {
		ids, err := s.repo.TripIDs(ctx, tripFilter)
		if err != nil {
			s.log.Error("Failed to resolve trips for search", "error", err)
			return nil, apperrors.Internal("Failed to search tickets", err)
		}
		if len(ids) == 0 {
			return nil, noMatch()
		}
		filter["trip_id"] = bson.M{"$in": ids}
	}

	docs, err := s.repo.FindExpanded(ctx, filter)
	if err != nil {
		s.log.Error("Failed to execute ticket search", "error", err)
		return nil, apperrors.Internal("Failed to search tickets", err)
	}
	if len(docs) == 0 {
		return nil, noMatch()
	}

	s.log.Info("Ticket search completed", "matches", len(docs))
	return docs, nil
}
