package repository

import (
	"context"
	"testing"

	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestVersionFilter(t *testing.T) {
	id := primitive.NewObjectID()

	assert.Equal(t, bson.M{"_id": id, "version": int64(4)}, versionFilter(id, 4))
	assert.Equal(t, bson.M{"_id": id, "$or": bson.A{
		bson.M{"version": 0},
		bson.M{"version": bson.M{"$exists": false}},
	}}, versionFilter(id, 0))
}

// updateQuery returns the filter of the first update statement sent.
func updateQuery(mt *mtest.T) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "update", evt.CommandName)
	return evt.Command.Lookup("updates", "0", "q").Document()
}

func TestUserRepository_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("saves a document without version field", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + UsersCollection
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "legacy@x.com"},
			{Key: "phone", Value: "555"},
			{Key: "password", Value: "digest"},
		}))
		user, err := repo.GetByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), user.Version)
		assert.NotNil(mt, user.Cart)

		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		user.Cart = append(user.Cart, model.CartItem{ProductID: 1, Quantity: 1})
		require.NoError(mt, repo.Save(context.Background(), user))
		assert.Equal(mt, int64(1), user.Version)

		_, err = updateQuery(mt).LookupErr("$or")
		assert.NoError(mt, err, "legacy documents must match")
	})

	mt.Run("stale copy conflicts", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		user := &model.User{ID: primitive.NewObjectID(), Version: 3}
		err := repo.Save(context.Background(), user)
		assert.ErrorIs(mt, err, ErrVersionConflict)
		assert.Equal(mt, int64(3), user.Version)

		assert.Equal(mt, int64(3), updateQuery(mt).Lookup("version").Int64())
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing document", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + UsersCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		_, err := repo.GetByID(context.Background(), "not-an-id")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestOrderRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create rejects unknown status", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		err := repo.Create(context.Background(), &model.Order{Status: "Lost"})
		assert.ErrorIs(mt, err, ErrInvalidStatus)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		order := &model.Order{Status: model.OrderStatusPlaced, ProductName: "Phone"}
		require.NoError(mt, repo.Create(context.Background(), order))
		assert.False(mt, order.ID.IsZero())
	})

	mt.Run("save of missing order", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Save(context.Background(), &model.Order{ID: primitive.NewObjectID(), Status: model.OrderStatusCancelled})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find by user", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		ns := mt.DB.Name() + "." + OrdersCollection
		userID := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "userId", Value: userID}, {Key: "status", Value: "Placed"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "userId", Value: userID}, {Key: "status", Value: "Delivered"}},
		))
		orders, err := repo.FindByUser(context.Background(), userID.Hex())
		require.NoError(mt, err)
		require.Len(mt, orders, 2)
		assert.Equal(mt, model.OrderStatusDelivered, orders[1].Status)
	})
}

func TestTransactor_DisabledRunsDirectly(t *testing.T) {
	calls := 0
	err := NewTransactor(nil, false).WithTransaction(context.Background(), func(ctx context.Context) error {
		calls++
		return ErrVersionConflict
	})
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, 1, calls)
}
