package dog

// Dog is the aggregate for a single row of the dogs table.
// A zero id means the dog has not been persisted yet.
type Dog struct {
	id    int64
	name  string
	breed string
}

// NewDog creates an unsaved dog. Name and breed are not validated.
func NewDog(name, breed string) *Dog {
	return &Dog{name: name, breed: breed}
}

// Reconstruct rebuilds a Dog from persistence data.
func Reconstruct(id int64, name, breed string) *Dog {
	return &Dog{id: id, name: name, breed: breed}
}

// --- Getters ---

func (d *Dog) ID() int64 { return d.id }
func (d *Dog) Name() string { return d.name }
func (d *Dog) Breed() string { return d.breed }

// --- Behavior ---

// IsPersisted reports whether the storage engine has assigned an id.
func (d *Dog) IsPersisted() bool {
	return d.id != 0
}

// SetName changes the in-memory name. Call Update on the repository to sync it.
func (d *Dog) SetName(name string) {
	d.name = name
}

// SetBreed changes the in-memory breed. Call Update on the repository to sync it.
func (d *Dog) SetBreed(breed string) {
	d.breed = breed
}

// AssignID binds the storage-assigned row identifier after an insert.
// Only the persistence layer should call it.
func (d *Dog) AssignID(id int64) {
	d.id = id
}
