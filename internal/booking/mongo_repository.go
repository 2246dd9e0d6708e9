package booking

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	classesCollection = "classes"
	maxUpdateAttempts = 8
)

var errVersionConflict = errors.New("roster modified concurrently")

// classDocument folds a class and its roster into one document so a single
// ReplaceOne publishes the whole mutation. Version guards the replace.
type classDocument struct {
	ID       string  `bson:"_id"`
	Class    `bson:",inline"`
	Bookings []Entry `bson:"bookings"`
	Waitlist []Entry `bson:"waitlist"`
	Version  int64   `bson:"version"`
}

func (d *classDocument) roster() *Roster {
	return &Roster{Class: d.Class, Bookings: d.Bookings, Waitlist: d.Waitlist}
}

type mongoRepository struct {
	classes *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{classes: db.Collection(classesCollection)}
}

func (r *mongoRepository) CreateClass(ctx context.Context, class *Class) error {
	c := *class
	c.BookingsCount = 0
	c.WaitlistCount = 0

	doc := classDocument{
		ID:       c.ClassID,
		Class:    c,
		Bookings: []Entry{},
		Waitlist: []Entry{},
	}

	if _, err := r.classes.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrClassExists
		}
		return storageError("insert class", err)
	}

	*class = c
	return nil
}

func (r *mongoRepository) GetClass(ctx context.Context, classID string) (*Class, error) {
	doc, err := r.find(ctx, classID)
	if err != nil {
		return nil, err
	}
	c := doc.Class
	return &c, nil
}

func (r *mongoRepository) ListClasses(ctx context.Context) ([]Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"bookings": 0, "waitlist": 0})

	cursor, err := r.classes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageError("list classes", err)
	}
	defer cursor.Close(ctx)

	var docs []classDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageError("decode classes", err)
	}

	classes := make([]Class, 0, len(docs))
	for _, d := range docs {
		classes = append(classes, d.Class)
	}
	return classes, nil
}

func (r *mongoRepository) GetRoster(ctx context.Context, classID string) (*Roster, error) {
	doc, err := r.find(ctx, classID)
	if err != nil {
		return nil, err
	}
	return doc.roster(), nil
}

func (r *mongoRepository) ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error) {
	cursor, err := r.classes.Find(ctx, bson.M{"bookings.user_id": userID},
		options.Find().SetProjection(bson.M{"waitlist": 0}))
	if err != nil {
		return nil, storageError("find user bookings", err)
	}
	defer cursor.Close(ctx)

	var docs []classDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageError("decode user bookings", err)
	}

	var entries []Entry
	for _, d := range docs {
		for _, e := range d.Bookings {
			if e.UserID == userID {
				entries = append(entries, e)
			}
		}
	}
	return toUserBookings(entries), nil
}

func (r *mongoRepository) UpdateRoster(ctx context.Context, classID string, fn func(*Roster) error) (*Roster, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		doc, err := r.find(ctx, classID)
		if err != nil {
			return nil, err
		}

		roster := doc.roster()
		if err := mutate(roster, fn); err != nil {
			return nil, err
		}

		next := classDocument{
			ID:       doc.ID,
			Class:    roster.Class,
			Bookings: nonNil(roster.Bookings),
			Waitlist: nonNil(roster.Waitlist),
			Version:  doc.Version + 1,
		}

		res, err := r.classes.ReplaceOne(ctx, bson.M{"_id": classID, "version": doc.Version}, next)
		if err != nil {
			return nil, storageError("replace roster", err)
		}
		if res.MatchedCount == 1 {
			return roster, nil
		}
	}

	return nil, storageError("update roster", errVersionConflict)
}

func (r *mongoRepository) find(ctx context.Context, classID string) (*classDocument, error) {
	var doc classDocument
	err := r.classes.FindOne(ctx, bson.M{"_id": classID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClassNotFound
		}
		return nil, storageError("find class", err)
	}
	return &doc, nil
}

func nonNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}
