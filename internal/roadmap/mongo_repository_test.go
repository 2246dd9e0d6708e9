package roadmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func matchedResponse(n int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: n},
	)
}

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error collection: roadmaps",
	})
}

func TestMongoRepository_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	rm := &Roadmap{Email: "a@example.com", Title: "Backend", Nodes: []Item{{"id": "1"}}}

	mt.Run("replaces existing title", func(mt *mtest.T) {
		mt.AddMockResponses(matchedResponse(1))

		created, err := NewMongoRepository(mt.DB).Save(context.Background(), rm)
		assert.NoError(mt, err)
		assert.False(mt, created)
	})

	mt.Run("appends new title", func(mt *mtest.T) {
		mt.AddMockResponses(matchedResponse(0), matchedResponse(1))

		created, err := NewMongoRepository(mt.DB).Save(context.Background(), rm)
		assert.NoError(mt, err)
		assert.True(mt, created)
	})

	mt.Run("duplicate key retries into update", func(mt *mtest.T) {
		mt.AddMockResponses(
			matchedResponse(0), duplicateKeyResponse(),
			matchedResponse(1),
		)

		created, err := NewMongoRepository(mt.DB).Save(context.Background(), rm)
		assert.NoError(mt, err)
		assert.False(mt, created)
	})

	mt.Run("gives up after repeated duplicate keys", func(mt *mtest.T) {
		for i := 0; i < maxSaveAttempts; i++ {
			mt.AddMockResponses(matchedResponse(0), duplicateKeyResponse())
		}

		_, err := NewMongoRepository(mt.DB).Save(context.Background(), rm)
		assert.ErrorIs(mt, err, ErrStorage)
	})
}
