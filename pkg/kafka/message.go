package kafka

import "time"

// Message is the transport-agnostic shape handed to the producer. Key
// selects the partition (hash balancing), so events for one entity keep
// their relative order.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}
