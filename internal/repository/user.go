package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sawant8123/storefront-service/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	NormalizeUser(user)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}})
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	NormalizeUser(user)

	res, err := r.coll.UpdateOne(ctx,
		versionFilter(user.ID, user.Version),
		bson.M{"$set": bson.M{
			"email":    user.Email,
			"phone":    user.Phone,
			"password": user.PasswordDigest,
			"orders":   user.Orders,
			"cart":     user.Cart,
			"wishlist": user.Wishlist,
			"version":  user.Version + 1,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}

	user.Version++
	return nil
}

// versionFilter matches the stored revision. Documents written before
// versioning have no version field and count as revision zero.
func versionFilter(id primitive.ObjectID, version int64) bson.M {
	if version == 0 {
		return bson.M{"_id": id, "$or": bson.A{
			bson.M{"version": 0},
			bson.M{"version": bson.M{"$exists": false}},
		}}
	}
	return bson.M{"_id": id, "version": version}
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	for _, u := range users {
		NormalizeUser(u)
	}
	return users, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	NormalizeUser(&user)
	return &user, nil
}
