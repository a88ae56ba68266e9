package main

import (
	authhandler "busline/internal/auth/handler"
	authservice "busline/internal/auth/service"
	"busline/internal/resource"
	"busline/internal/store"
	tickethandler "busline/internal/ticket/handler"
	ticketrepository "busline/internal/ticket/repository"
	ticketservice "busline/internal/ticket/service"
	"busline/pkg/app"
	"busline/pkg/config"
	"busline/pkg/contracts"
	"busline/pkg/kafka"
	kafkaconfig "busline/pkg/kafka/config"
	"busline/pkg/model"
	"busline/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg := config.Load("busline")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	joiner := store.NewJoiner(db, cfg.RequestTimeout)

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	handlers := resourceHandlers(cfg, db, joiner)
	handlers = append(handlers,
		initTicketHandler(cfg, db, joiner, producer),
		initAuthHandler(cfg, db),
	)

	application := app.NewApplication(cfg)
	application.SetApp(handlers...)
	application.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, ticket events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(kafkaconfig.Default(cfg.KafkaBrokers), cfg.KafkaTicketTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaTicketTopic)
	return producer
}

func initTicketHandler(cfg *config.Config, db *mongo.Database, joiner *store.Joiner, producer *kafka.Producer) contracts.Handler {
	repo := ticketrepository.NewMongoTicketRepository(db, joiner, cfg.RequestTimeout, cfg.RequestTimeout)

	var events ticketservice.EventPublisher
	if producer != nil {
		events = producer
	}

	svc := ticketservice.NewTicketService(repo, events, cfg.Log)
	return tickethandler.NewTicketHandler(svc, cfg.Log)
}

func initAuthHandler(cfg *config.Config, db *mongo.Database) contracts.Handler {
	users := store.NewCollection[model.User](db, store.Users, cfg.RequestTimeout, cfg.RequestTimeout)
	tokens := authservice.NewTokenService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.Log)
	return authhandler.NewAuthHandler(tokens, cfg.Log)
}

// resourceHandlers wires the plain entity types through the one generic
// CRUD stack. Relations mirror what each resource's list/get responses
// embed for display.
func resourceHandlers(cfg *config.Config, db *mongo.Database, joiner *store.Joiner) []contracts.Handler {
	normalizeName := func(name *string) { *name = sanitizer.NormalizeName(*name) }

	locations := newResource(cfg, "Location", "/api/v1/locations", resource.Config[model.Location]{
		Store:     store.NewCollection[model.Location](db, store.Locations, cfg.RequestTimeout, cfg.RequestTimeout),
		Normalize: func(l *model.Location) { normalizeName(&l.Name) },
	})

	vehicles := newResource(cfg, "Vehicle", "/api/v1/vehicles", resource.Config[model.Vehicle]{
		Store:     store.NewCollection[model.Vehicle](db, store.Vehicles, cfg.RequestTimeout, cfg.RequestTimeout),
		Normalize: func(v *model.Vehicle) { normalizeName(&v.Name) },
	})

	seatCatalogs := newResource(cfg, "SeatCatalog", "/api/v1/seat-catalogs", resource.Config[model.SeatCatalog]{
		Store:     store.NewCollection[model.SeatCatalog](db, store.SeatCatalogs, cfg.RequestTimeout, cfg.RequestTimeout),
		Joiner:    joiner,
		Normalize: func(sc *model.SeatCatalog) { normalizeName(&sc.Name) },
		Relations: []store.Relation{
			{Field: "vehicle_id", Collection: store.Vehicles, Include: []string{"name", "status"}},
		},
	})

	seats := newResource(cfg, "Seat", "/api/v1/seats", resource.Config[model.Seat]{
		Store:     store.NewCollection[model.Seat](db, store.Seats, cfg.RequestTimeout, cfg.RequestTimeout),
		Joiner:    joiner,
		Normalize: func(s *model.Seat) { normalizeName(&s.Name) },
		Relations: []store.Relation{
			{
				Field:      "seat_catalog_id",
				Collection: store.SeatCatalogs,
				Include:    []string{"name"},
				Relations: []store.Relation{
					{Field: "vehicle_id", Collection: store.Vehicles, Include: []string{"name", "status"}},
				},
			},
		},
	})

	ticketCatalogs := newResource(cfg, "TicketCatalog", "/api/v1/ticket-catalogs", resource.Config[model.TicketCatalog]{
		Store:     store.NewCollection[model.TicketCatalog](db, store.TicketCatalogs, cfg.RequestTimeout, cfg.RequestTimeout),
		Normalize: func(tc *model.TicketCatalog) { normalizeName(&tc.Name) },
	})

	trips := newResource(cfg, "Trip", "/api/v1/trips", resource.Config[model.Trip]{
		Store:  store.NewCollection[model.Trip](db, store.Trips, cfg.RequestTimeout, cfg.RequestTimeout),
		Joiner: joiner,
		Relations: []store.Relation{
			{Field: "departure_point", Collection: store.Locations, Include: []string{"name"}},
			{Field: "destination_point", Collection: store.Locations, Include: []string{"name"}},
		},
	})

	ageCategories := newResource(cfg, "AgeCategory", "/api/v1/age-categories", resource.Config[model.AgeCategory]{
		Store:     store.NewCollection[model.AgeCategory](db, store.AgeCategories, cfg.RequestTimeout, cfg.RequestTimeout),
		Normalize: func(a *model.AgeCategory) { normalizeName(&a.Name) },
	})

	users := newResource(cfg, "User", "/api/v1/users", resource.Config[model.User]{
		Store:     store.NewCollection[model.User](db, store.Users, cfg.RequestTimeout, cfg.RequestTimeout),
		Normalize: func(u *model.User) { normalizeName(&u.Name) },
	})

	return []contracts.Handler{
		locations, vehicles, seatCatalogs, seats,
		ticketCatalogs, trips, ageCategories, users,
	}
}

func newResource[T any](cfg *config.Config, name, path string, rc resource.Config[T]) contracts.Handler {
	rc.Name = name
	rc.Validator = resource.NewValidator[T]()
	rc.Log = cfg.Log
	return resource.NewHandler(name, path, resource.NewService(rc), cfg.Log)
}
