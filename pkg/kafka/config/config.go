package config

import "time"

type Config struct {
	Brokers []string

	ProducerCompression  string
	ProducerRequireAcks  int
	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerAsync        bool
}

func Default(brokers []string) *Config {
	return &Config{
		Brokers:              brokers,
		ProducerCompression:  "snappy",
		ProducerRequireAcks:  -1,
		ProducerMaxAttempts:  3,
		ProducerBatchTimeout: 100 * time.Millisecond,
		ProducerAsync:        false,
	}
}
