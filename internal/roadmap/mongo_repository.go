package roadmap

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	roadmapsCollection = "roadmaps"
	maxSaveAttempts    = 3
)

// userDocument holds every roadmap of one email, keyed by the email.
type userDocument struct {
	Email    string        `bson:"_id"`
	Roadmaps []roadmapItem `bson:"roadmaps"`
}

type roadmapItem struct {
	Title     string    `bson:"title"`
	Nodes     []Item    `bson:"nodes"`
	Edges     []Item    `bson:"edges"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoRepository struct {
	roadmaps *mongo.Collection
	now      func() time.Time
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		roadmaps: db.Collection(roadmapsCollection),
		now:      time.Now,
	}
}

func (r *mongoRepository) ListTitles(ctx context.Context, email string) ([]string, error) {
	var doc userDocument
	err := r.roadmaps.FindOne(ctx, bson.M{"_id": email},
		options.FindOne().SetProjection(bson.M{"roadmaps.title": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []string{}, nil
		}
		return nil, storageError("find titles", err)
	}

	titles := make([]string, 0, len(doc.Roadmaps))
	for _, item := range doc.Roadmaps {
		titles = append(titles, item.Title)
	}
	return titles, nil
}

// Save updates the matching array element in place, or pushes a new one
// and creates the user document on first save. A concurrent first save of
// the same email surfaces as a duplicate key and is retried.
func (r *mongoRepository) Save(ctx context.Context, rm *Roadmap) (bool, error) {
	now := r.now().UTC()
	nodes, edges := nonNil(rm.Nodes), nonNil(rm.Edges)

	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		res, err := r.roadmaps.UpdateOne(ctx,
			bson.M{"_id": rm.Email, "roadmaps.title": rm.Title},
			bson.M{"$set": bson.M{
				"roadmaps.$.nodes":      nodes,
				"roadmaps.$.edges":      edges,
				"roadmaps.$.updated_at": now,
			}},
		)
		if err != nil {
			return false, storageError("update roadmap", err)
		}
		if res.MatchedCount == 1 {
			return false, nil
		}

		item := roadmapItem{
			Title:     rm.Title,
			Nodes:     nodes,
			Edges:     edges,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err = r.roadmaps.UpdateOne(ctx,
			bson.M{"_id": rm.Email, "roadmaps.title": bson.M{"$ne": rm.Title}},
			bson.M{"$push": bson.M{"roadmaps": item}},
			options.Update().SetUpsert(true),
		)
		if err == nil {
			return true, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return false, storageError("append roadmap", err)
		}
	}

	return false, storageError("save roadmap", errors.New("too many concurrent saves"))
}

func (r *mongoRepository) Get(ctx context.Context, email, title string) (*Roadmap, error) {
	var doc userDocument
	err := r.roadmaps.FindOne(ctx, bson.M{"_id": email},
		options.FindOne().SetProjection(bson.M{"roadmaps": bson.M{"$elemMatch": bson.M{"title": title}}})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoadmapNotFound
		}
		return nil, storageError("find roadmap", err)
	}

	for _, item := range doc.Roadmaps {
		if item.Title == title {
			return &Roadmap{
				Email:     email,
				Title:     item.Title,
				Nodes:     nonNil(item.Nodes),
				Edges:     nonNil(item.Edges),
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			}, nil
		}
	}
	return nil, ErrRoadmapNotFound
}
