package events

import "time"

// Source identifies this service in every published envelope.
const Source = "service-dog-registry"

// Event types published on the dog change topic.
const (
	DogRegistered   = "dog.registered"
	DogUpdated      = "dog.updated"
	DogTableDropped = "dog.table.dropped"
)

// DogRegisteredEvent is emitted after a new row is inserted.
type DogRegisteredEvent struct {
	DogID      int64     `json:"dog_id"`
	Name       string    `json:"name"`
	Breed      string    `json:"breed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DogUpdatedEvent is emitted after a row is overwritten.
type DogUpdatedEvent struct {
	DogID      int64     `json:"dog_id"`
	Name       string    `json:"name"`
	Breed      string    `json:"breed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DogTableDroppedEvent is emitted after the dogs table is dropped.
type DogTableDroppedEvent struct {
	OccurredAt time.Time `json:"occurred_at"`
}
