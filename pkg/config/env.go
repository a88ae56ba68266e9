package config

import "time"

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret      = "JWT_SECRET"
	EnvTokenTTL       = "TOKEN_TTL"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"

	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvKafkaTicketTopic = "KAFKA_TICKET_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "busline"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTokenTTL = time.Hour

	DefaultKafkaTicketTopic = "busline.ticket.events"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 << 20 // 1 MiB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// DefaultAllowedOrigins are the two first-party frontends allowed to call
// the API cross-origin when ALLOWED_ORIGINS is not set.
var DefaultAllowedOrigins = []string{
	"https://user.example.com",
	"https://dashboard.example.com",
}
