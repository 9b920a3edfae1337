package repository

import (
	"context"
	"errors"
	"fmt"

	dogDomain "github.com/Kilat-Pet-Delivery/service-dog-registry/internal/domain/dog"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DogModel is the GORM model for the dogs table. Field order matches the
// column order id, name, breed.
type DogModel struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:name;type:text"`
	Breed string `gorm:"column:breed;type:text"`
}

func (DogModel) TableName() string { return "dogs" }

// GormDogRepository implements DogRepository using GORM.
type GormDogRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ dogDomain.DogRepository = (*GormDogRepository)(nil)

func NewGormDogRepository(db *gorm.DB, logger *zap.Logger) *GormDogRepository {
	return &GormDogRepository{db: db, logger: logger}
}

// CreateTable creates the dogs table when it is missing. An existing table is
// left untouched, including one created outside this service.
func (r *GormDogRepository) CreateTable(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&DogModel{}) {
		return nil
	}
	if err := migrator.CreateTable(&DogModel{}); err != nil {
		return fmt.Errorf("create dogs table: %w", err)
	}
	return nil
}

func (r *GormDogRepository) DropTable(ctx context.Context) error {
	// gorm emits DROP TABLE IF EXISTS
	if err := r.db.WithContext(ctx).Migrator().DropTable(&DogModel{}); err != nil {
		return fmt.Errorf("drop dogs table: %w", err)
	}
	return nil
}

// Save always inserts. A dog that already has an id gets a second row and the
// new id.
func (r *GormDogRepository) Save(ctx context.Context, dog *dogDomain.Dog) error {
	model := toDogModel(dog)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("insert dog: %w", err)
	}
	dog.AssignID(model.ID)
	return nil
}

func (r *GormDogRepository) Create(ctx context.Context, name, breed string) (*dogDomain.Dog, error) {
	dog := dogDomain.NewDog(name, breed)
	if err := r.Save(ctx, dog); err != nil {
		return nil, err
	}
	return dog, nil
}

func (r *GormDogRepository) FindAll(ctx context.Context) ([]*dogDomain.Dog, error) {
	var models []DogModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("select dogs: %w", err)
	}
	dogs := make([]*dogDomain.Dog, len(models))
	for i := range models {
		dogs[i] = toDogDomain(&models[i])
	}
	return dogs, nil
}

func (r *GormDogRepository) FindByName(ctx context.Context, name string) (*dogDomain.Dog, bool, error) {
	return r.takeOne(ctx, "name = ?", name)
}

func (r *GormDogRepository) FindByID(ctx context.Context, id int64) (*dogDomain.Dog, bool, error) {
	return r.takeOne(ctx, "id = ?", id)
}

// FindOrCreate runs the lookup and the insert as two statements with no
// transaction around them, so two concurrent callers can both insert.
func (r *GormDogRepository) FindOrCreate(ctx context.Context, name, breed string) (*dogDomain.Dog, bool, error) {
	dog, found, err := r.takeOne(ctx, "name = ? AND breed = ?", name, breed)
	if err != nil {
		return nil, false, err
	}
	if found {
		return dog, false, nil
	}
	dog, err = r.Create(ctx, name, breed)
	if err != nil {
		return nil, false, err
	}
	return dog, true, nil
}

// Update writes both columns, empty strings included. No matching row is not
// an error.
func (r *GormDogRepository) Update(ctx context.Context, dog *dogDomain.Dog) error {
	result := r.db.WithContext(ctx).
		Model(&DogModel{}).
		Where("id = ?", dog.ID()).
		Updates(map[string]interface{}{
			"name":  dog.Name(),
			"breed": dog.Breed(),
		})
	if result.Error != nil {
		return fmt.Errorf("update dog %d: %w", dog.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Debug("update matched no rows", zap.Int64("dog_id", dog.ID()))
	}
	return nil
}

// takeOne returns the first row in storage order (LIMIT 1, no ORDER BY).
func (r *GormDogRepository) takeOne(ctx context.Context, query string, args ...interface{}) (*dogDomain.Dog, bool, error) {
	var model DogModel
	err := r.db.WithContext(ctx).Where(query, args...).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select dog: %w", err)
	}
	return toDogDomain(&model), true, nil
}

// --- Conversions ---

func toDogModel(d *dogDomain.Dog) *DogModel {
	return &DogModel{
		ID:    d.ID(),
		Name:  d.Name(),
		Breed: d.Breed(),
	}
}

func toDogDomain(m *DogModel) *dogDomain.Dog {
	return dogDomain.Reconstruct(m.ID, m.Name, m.Breed)
}
