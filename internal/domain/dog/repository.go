package dog

import "context"

// DogRepository defines the persistence contract for dogs.
//
// Lookups report absence through the found flag rather than an error.
type DogRepository interface {
	// CreateTable ensures the dogs table exists, keeping existing rows.
	CreateTable(ctx context.Context) error

	// DropTable removes the dogs table and every row in it, if present.
	DropTable(ctx context.Context) error

	// Save inserts the dog as a new row and assigns the generated id to it.
	Save(ctx context.Context, dog *Dog) error

	// Create builds a dog from name and breed and saves it.
	Create(ctx context.Context, name, breed string) (*Dog, error)

	// FindAll returns every dog in storage order.
	FindAll(ctx context.Context) ([]*Dog, error)

	// FindByName returns the first dog whose name matches exactly.
	FindByName(ctx context.Context, name string) (*Dog, bool, error)

	// FindByID returns the dog with the given id.
	FindByID(ctx context.Context, id int64) (*Dog, bool, error)

	// FindOrCreate returns the first dog matching both name and breed,
	// inserting a new row when none exists. created reports whether the
	// insert happened. The lookup and the insert are separate statements.
	FindOrCreate(ctx context.Context, name, breed string) (dog *Dog, created bool, err error)

	// Update overwrites name and breed of the row with the dog's id.
	// An id with no row is a no-op.
	Update(ctx context.Context, dog *Dog) error
}
