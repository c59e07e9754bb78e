package auth

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"wasteland-companion/internal/users"
)

type Session struct {
	ID        primitive.ObjectID `json:"item_id" bson:"item_id"`
	SessionID primitive.ObjectID `json:"session_id" bson:"_id"`
	Expiry    time.Time          `json:"expiry" bson:"expiry"`
}

// Create a session from user id, and include expiry, return error if fails
func (s *Session) Create(db *mongo.Database) error {
	s.SessionID = primitive.NewObjectID()
	s.Expiry = time.Now().Add(time.Hour * 24)

	if (s.ID == primitive.ObjectID{}) {
		return errors.New("invalid item_id used to create session")
	}

	mar, err := bson.Marshal(s)
	if err != nil {
		return errors.New("something went wrong marshalling session struct")
	}
	var b *bson.D
	err = bson.Unmarshal(mar, &b)
	if err != nil {
		return errors.New("something went wrong marshalling session struct")
	}

	_, err = db.Collection("sessions").InsertOne(context.TODO(), b)
	if err != nil {
		return errors.New("something went wrong creating session")
	}

	return nil
}

// FromID returns the stored session matching the provided session ID
func (s *Session) FromID(db *mongo.Database) (*Session, error) {
	var filter = bson.D{{Key: "_id", Value: s.SessionID}}
	cursor, err := db.Collection("sessions").Find(context.TODO(), filter)
	if err != nil {
		return nil, err
	}
	var results []bson.D
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, err
	}

	if len(results) < 1 {
		return nil, errors.New("no session found")
	}

	if len(results) > 1 {
		return nil, errors.New("multiple sessions found")
	}

	doc, err := bson.Marshal(&results[0])
	if err != nil {
		return nil, errors.New("something went wrong")
	}

	var session *Session
	err = bson.Unmarshal(doc, &session)
	if err != nil {
		log.Errorf("unable to unmarshal session: %s", err)
		return nil, errors.New("something went wrong unmarshalling session data")
	}

	return session, nil
}

// Delete removes the session record, logging the user out everywhere the
// token was used.
func (s *Session) Delete(db *mongo.Database) error {
	var filter = bson.D{{Key: "_id", Value: s.SessionID}}

	_, err := db.Collection("sessions").DeleteMany(context.TODO(), filter)
	if err != nil {
		return errors.New("something went wrong deleting session")
	}

	return nil
}

// GetUser resolves the session claims to a stored user, or errors if the
// session is missing, expired or mismatched.
func (s *Session) GetUser(db *mongo.Database) (*users.User, error) {
	stored, err := s.FromID(db)
	if err != nil {
		return nil, err
	}

	if time.Now().After(stored.Expiry) {
		return nil, errors.New("token expired")
	}

	if s.ID != stored.ID {
		return nil, errors.New("item id mismatch")
	}

	u := users.User{ID: stored.ID}
	user, err := u.FromID(db)
	if err != nil {
		return nil, err
	}

	return user, nil
}
