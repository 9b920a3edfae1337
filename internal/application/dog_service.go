package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/domain"
	dogDomain "github.com/Kilat-Pet-Delivery/service-dog-registry/internal/domain/dog"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/events"
	"go.uber.org/zap"
)

// UpdateDogRequest carries the new values for an existing dog. Nil fields
// keep their stored value.
type UpdateDogRequest struct {
	Name  *string `json:"name"`
	Breed *string `json:"breed"`
}

// DogDTO is the output representation of a dog.
type DogDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Breed string `json:"breed"`
}

// DogService implements the registry use cases on top of the record store.
type DogService struct {
	repo      dogDomain.DogRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewDogService creates a new DogService.
func NewDogService(repo dogDomain.DogRepository, publisher events.Publisher, logger *zap.Logger) *DogService {
	return &DogService{repo: repo, publisher: publisher, logger: logger}
}

// PrepareStore creates the dogs table if it does not exist.
func (s *DogService) PrepareStore(ctx context.Context) error {
	if err := s.repo.CreateTable(ctx); err != nil {
		s.logger.Error("failed to create dogs table", zap.Error(err))
		return err
	}
	s.logger.Info("dogs table ready")
	return nil
}

// ResetStore drops the dogs table and all of its rows.
func (s *DogService) ResetStore(ctx context.Context) error {
	if err := s.repo.DropTable(ctx); err != nil {
		s.logger.Error("failed to drop dogs table", zap.Error(err))
		return err
	}
	s.logger.Warn("dogs table dropped")
	s.publishEvent(ctx, events.DogTableDropped, "dogs", events.DogTableDroppedEvent{
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// RegisterDog inserts a new dog.
func (s *DogService) RegisterDog(ctx context.Context, name, breed string) (*DogDTO, error) {
	dog, err := s.repo.Create(ctx, name, breed)
	if err != nil {
		s.logger.Error("failed to register dog", zap.Error(err))
		return nil, fmt.Errorf("failed to register dog: %w", err)
	}

	s.logger.Info("dog registered",
		zap.Int64("dog_id", dog.ID()),
		zap.String("name", dog.Name()),
	)
	s.publishRegistered(ctx, dog)
	result := toDogDTO(dog)
	return &result, nil
}

// ListDogs returns every dog in storage order.
func (s *DogService) ListDogs(ctx context.Context) ([]DogDTO, error) {
	dogs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}
	dtos := make([]DogDTO, len(dogs))
	for i, d := range dogs {
		dtos[i] = toDogDTO(d)
	}
	return dtos, nil
}

// GetDog returns the dog with the given id or a NotFoundError.
func (s *DogService) GetDog(ctx context.Context, id int64) (*DogDTO, error) {
	dog, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get dog: %w", err)
	}
	if !found {
		return nil, domain.NewNotFoundError("Dog", strconv.FormatInt(id, 10))
	}
	result := toDogDTO(dog)
	return &result, nil
}

// GetDogByName returns the first dog with exactly this name or a NotFoundError.
func (s *DogService) GetDogByName(ctx context.Context, name string) (*DogDTO, error) {
	dog, found, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get dog: %w", err)
	}
	if !found {
		return nil, domain.NewNotFoundError("Dog", name)
	}
	result := toDogDTO(dog)
	return &result, nil
}

// FindOrRegisterDog returns the dog matching name and breed, registering it
// first when absent.
func (s *DogService) FindOrRegisterDog(ctx context.Context, name, breed string) (*DogDTO, error) {
	dog, created, err := s.repo.FindOrCreate(ctx, name, breed)
	if err != nil {
		s.logger.Error("failed to find or register dog", zap.Error(err))
		return nil, fmt.Errorf("failed to find or register dog: %w", err)
	}

	if created {
		s.logger.Info("dog registered",
			zap.Int64("dog_id", dog.ID()),
			zap.String("name", dog.Name()),
		)
		s.publishRegistered(ctx, dog)
	}
	result := toDogDTO(dog)
	return &result, nil
}

// UpdateDog applies req to an existing dog. Unlike the record store, an
// unknown id is reported as a NotFoundError.
func (s *DogService) UpdateDog(ctx context.Context, id int64, req UpdateDogRequest) (*DogDTO, error) {
	dog, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get dog: %w", err)
	}
	if !found {
		return nil, domain.NewNotFoundError("Dog", strconv.FormatInt(id, 10))
	}

	if req.Name != nil {
		dog.SetName(*req.Name)
	}
	if req.Breed != nil {
		dog.SetBreed(*req.Breed)
	}

	if err := s.repo.Update(ctx, dog); err != nil {
		s.logger.Error("failed to update dog", zap.Error(err))
		return nil, fmt.Errorf("failed to update dog: %w", err)
	}

	s.logger.Info("dog updated", zap.Int64("dog_id", id))
	s.publishEvent(ctx, events.DogUpdated, strconv.FormatInt(id, 10), events.DogUpdatedEvent{
		DogID:      dog.ID(),
		Name:       dog.Name(),
		Breed:      dog.Breed(),
		OccurredAt: time.Now().UTC(),
	})
	result := toDogDTO(dog)
	return &result, nil
}

func (s *DogService) publishRegistered(ctx context.Context, dog *dogDomain.Dog) {
	s.publishEvent(ctx, events.DogRegistered, strconv.FormatInt(dog.ID(), 10), events.DogRegisteredEvent{
		DogID:      dog.ID(),
		Name:       dog.Name(),
		Breed:      dog.Breed(),
		OccurredAt: time.Now().UTC(),
	})
}

// publishEvent is best effort: the write already happened, so failures are
// only logged.
func (s *DogService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toDogDTO(d *dogDomain.Dog) DogDTO {
	return DogDTO{
		ID:    d.ID(),
		Name:  d.Name(),
		Breed: d.Breed(),
	}
}
