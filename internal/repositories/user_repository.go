package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"auction-service/internal/db"
	"auction-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines interactions for account documents.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, bool, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepo is a mongo-backed repository.
type UserRepo struct {
	col *mongo.Collection
}

// NewUserRepo constructs UserRepo.
func NewUserRepo(database *mongo.Database) *UserRepo {
	return &UserRepo{col: database.Collection(db.UsersCollection)}
}

// List returns every user document.
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByEmail looks a user up by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// Create stores a new user. When a document with the same email already
// exists it is returned unchanged and created is false.
func (r *UserRepo) Create(ctx context.Context, user models.User) (models.User, bool, error) {
	existing, err := r.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, false, err
	}

	if user.Role == "" {
		user.Role = models.RoleBuyer
	}
	user.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		// Unique email index: a concurrent insert won the race.
		if mongo.IsDuplicateKeyError(err) {
			existing, getErr := r.GetByEmail(ctx, user.Email)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return models.User{}, false, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, true, nil
}

// UpdateRole sets the role on a user document.
func (r *UserRepo) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user document.
func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
