package notes

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"wasteland-companion/internal"
)

type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title" form:"title"`
	Body      string             `bson:"body" json:"body" form:"body"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (n *Note) Create(db *mongo.Database) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()

	mar, err := bson.Marshal(n)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.notes", Function: "Create", Level: log.ErrorLevel, ObjectID: n.ID, Message: "error marshalling note data", Error: err}.ToError()
	}
	var b *bson.D
	err = bson.Unmarshal(mar, &b)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.notes", Function: "Create", Level: log.ErrorLevel, ObjectID: n.ID, Message: "error unmarshalling note data", Error: err}.ToError()
	}
	_, err = db.Collection("notes").InsertOne(context.TODO(), b)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.notes", Function: "Create", Level: log.ErrorLevel, ObjectID: n.ID, Message: "error creating note", Error: err}.ToError()
	}

	return nil
}

func GetAllNotes(db *mongo.Database) ([]*Note, error) {
	cursor, err := db.Collection("notes").Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, internal.ErrorFormat{Package: "internal.notes", Function: "GetAllNotes", Level: log.ErrorLevel, Message: "unable to search for notes", Error: err}.ToError()
	}
	var results []bson.D
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, internal.ErrorFormat{Package: "internal.notes", Function: "GetAllNotes", Level: log.ErrorLevel, Message: "error cursoring through notes", Error: err}.ToError()
	}

	var notes []*Note
	for _, rn := range results {
		m, err := bson.Marshal(&rn)
		if err != nil {
			return nil, internal.ErrorFormat{Package: "internal.notes", Function: "GetAllNotes", Level: log.ErrorLevel, Message: "unable to marshal note result", Error: err}.ToError()
		}
		var nn Note
		err = bson.Unmarshal(m, &nn)
		if err != nil {
			return nil, internal.ErrorFormat{Package: "internal.notes", Function: "GetAllNotes", Level: log.ErrorLevel, Message: "unable to unmarshal note result", Error: err}.ToError()
		}
		notes = append(notes, &nn)
	}

	return notes, nil
}

func (n *Note) Update(db *mongo.Database, newTitle string, newBody string) error {
	var filter = bson.D{{Key: "_id", Value: n.ID}}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "title", Value: newTitle},
			{Key: "body", Value: newBody},
			{Key: "updatedAt", Value: time.Now()},
		}},
	}

	_, err := db.Collection("notes").UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.notes", Function: "Update", Level: log.ErrorLevel, ObjectID: n.ID, Message: "unable to update note", Error: err}.ToError()
	}

	n.Title = newTitle
	n.Body = newBody
	n.UpdatedAt = time.Now()

	return nil
}

func DeleteNote(db *mongo.Database, noteID primitive.ObjectID) error {
	var filter = bson.D{{Key: "_id", Value: noteID}}

	_, err := db.Collection("notes").DeleteMany(context.TODO(), filter)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.notes", Function: "DeleteNote", Level: log.ErrorLevel, ObjectID: noteID, Message: "unable to delete note by id", Error: err}.ToError()
	}

	return nil
}
