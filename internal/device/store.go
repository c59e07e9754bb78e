package device

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store adapts the mongo-backed device collection to the narrow surface the
// liveness monitor consumes.
type Store struct {
	DB *mongo.Database
}

func (s *Store) ListDevices() ([]*Device, error) {
	return GetAllDevices(s.DB)
}

func (s *Store) UpdateDeviceStatus(deviceID primitive.ObjectID, status Status, lastSeen *time.Time) error {
	return UpdateDeviceStatus(s.DB, deviceID, status, lastSeen)
}
