package scripts

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"wasteland-companion/internal"
)

// Script is a curated entry on the dashboard: a name, what it does, and
// where it lives on the box. Nothing here executes anything.
type Script struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" form:"name"`
	Description string             `bson:"description" json:"description" form:"description"`
	Path        string             `bson:"path" json:"path" form:"path"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (s *Script) Create(db *mongo.Database) error {
	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	mar, err := bson.Marshal(s)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.scripts", Function: "Create", Level: log.ErrorLevel, ObjectID: s.ID, Message: "error marshalling script data", Error: err}.ToError()
	}
	var b *bson.D
	err = bson.Unmarshal(mar, &b)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.scripts", Function: "Create", Level: log.ErrorLevel, ObjectID: s.ID, Message: "error unmarshalling script data", Error: err}.ToError()
	}
	_, err = db.Collection("scripts").InsertOne(context.TODO(), b)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.scripts", Function: "Create", Level: log.ErrorLevel, ObjectID: s.ID, Message: "error creating script", Error: err}.ToError()
	}

	return nil
}

func GetAllScripts(db *mongo.Database) ([]*Script, error) {
	cursor, err := db.Collection("scripts").Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, internal.ErrorFormat{Package: "internal.scripts", Function: "GetAllScripts", Level: log.ErrorLevel, Message: "unable to search for scripts", Error: err}.ToError()
	}
	var results []bson.D
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, internal.ErrorFormat{Package: "internal.scripts", Function: "GetAllScripts", Level: log.ErrorLevel, Message: "error cursoring through scripts", Error: err}.ToError()
	}

	var scripts []*Script
	for _, rs := range results {
		m, err := bson.Marshal(&rs)
		if err != nil {
			return nil, internal.ErrorFormat{Package: "internal.scripts", Function: "GetAllScripts", Level: log.ErrorLevel, Message: "unable to marshal script result", Error: err}.ToError()
		}
		var sc Script
		err = bson.Unmarshal(m, &sc)
		if err != nil {
			return nil, internal.ErrorFormat{Package: "internal.scripts", Function: "GetAllScripts", Level: log.ErrorLevel, Message: "unable to unmarshal script result", Error: err}.ToError()
		}
		scripts = append(scripts, &sc)
	}

	return scripts, nil
}

func (s *Script) Update(db *mongo.Database, newName string, newDescription string, newPath string) error {
	var filter = bson.D{{Key: "_id", Value: s.ID}}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: newName},
			{Key: "description", Value: newDescription},
			{Key: "path", Value: newPath},
			{Key: "updatedAt", Value: time.Now()},
		}},
	}

	_, err := db.Collection("scripts").UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.scripts", Function: "Update", Level: log.ErrorLevel, ObjectID: s.ID, Message: "unable to update script", Error: err}.ToError()
	}

	s.Name = newName
	s.Description = newDescription
	s.Path = newPath
	s.UpdatedAt = time.Now()

	return nil
}

func DeleteScript(db *mongo.Database, scriptID primitive.ObjectID) error {
	var filter = bson.D{{Key: "_id", Value: scriptID}}

	_, err := db.Collection("scripts").DeleteMany(context.TODO(), filter)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.scripts", Function: "DeleteScript", Level: log.ErrorLevel, ObjectID: scriptID, Message: "unable to delete script by id", Error: err}.ToError()
	}

	return nil
}
