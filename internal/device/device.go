package device

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"wasteland-companion/internal"
)

// ErrDeviceNotFound is returned by partial updates that matched no record,
// typically because the device was deleted while a probing pass was running.
var ErrDeviceNotFound = errors.New("device not found")

type Status string

const (
	Status_ONLINE  Status = "online"
	Status_OFFLINE Status = "offline"
	Status_UNKNOWN Status = "unknown"
)

type Device struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name" form:"name"` // display name on the dashboard
	IPAddress     string             `bson:"ipAddress" json:"ipAddress" form:"ipAddress"`
	MACAddress    string             `bson:"macAddress" json:"macAddress" form:"macAddress"`
	Description   string             `bson:"description" json:"description" form:"description"`
	Status        Status             `bson:"status" json:"status"` // written only by the liveness monitor
	LastSeenAt    *time.Time         `bson:"lastSeenAt,omitempty" json:"lastSeenAt,omitempty"`
	LastCheckedAt *time.Time         `bson:"lastCheckedAt,omitempty" json:"lastCheckedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidIPAddress reports whether addr is an IPv4 dotted-quad.
func ValidIPAddress(addr string) bool {
	if strings.Count(addr, ".") != 3 {
		return false
	}
	ip := net.ParseIP(addr)
	return ip != nil && ip.To4() != nil
}

// Create inserts the device with status unknown. Status, lastSeenAt and
// lastCheckedAt are never taken from the caller; the monitor owns them.
func (d *Device) Create(db *mongo.Database) error {
	d.ID = primitive.NewObjectID()
	d.Status = Status_UNKNOWN
	d.LastSeenAt = nil
	d.LastCheckedAt = nil
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	mar, err := bson.Marshal(d)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "Create", Level: log.ErrorLevel, ObjectID: d.ID, Message: "error marshalling device data when creating device", Error: err}.ToError()
	}
	var b *bson.D
	err = bson.Unmarshal(mar, &b)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "Create", Level: log.ErrorLevel, ObjectID: d.ID, Message: "error unmarshalling device when creating device", Error: err}.ToError()
	}
	result, err := db.Collection("devices").InsertOne(context.TODO(), b)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "Create", Level: log.ErrorLevel, ObjectID: d.ID, Message: "error creating device", Error: err}.ToError()
	}

	log.Infof("created device with id: %v", result.InsertedID)
	return nil
}

func (d *Device) Get(db *mongo.Database) error {
	var filter = bson.D{{Key: "_id", Value: d.ID}}

	cursor, err := db.Collection("devices").Find(context.TODO(), filter)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "Get", Level: log.ErrorLevel, ObjectID: d.ID, Message: "unable to search for device by id", Error: err}.ToError()
	}
	var results []bson.D
	if err = cursor.All(context.TODO(), &results); err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "Get", Level: log.ErrorLevel, ObjectID: d.ID, Message: "error cursoring through devices", Error: err}.ToError()
	}

	if len(results) > 1 {
		return internal.ErrorFormat{Package: "internal.device", Function: "Get", Level: log.ErrorLevel, ObjectID: d.ID, Message: "multiple devices match when getting using id", Error: err}.ToError()
	}

	if len(results) == 0 {
		return ErrDeviceNotFound
	}

	doc, err := bson.Marshal(&results[0])
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "Get", Level: log.ErrorLevel, ObjectID: d.ID, Message: "unable to marshal get device results[0]", Error: err}.ToError()
	}

	err = bson.Unmarshal(doc, &d)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "Get", Level: log.ErrorLevel, ObjectID: d.ID, Message: "unable to unmarshal get device result", Error: err}.ToError()
	}

	return nil
}

// GetAllDevices returns a full, unfiltered snapshot of the device table.
func GetAllDevices(db *mongo.Database) ([]*Device, error) {
	cursor, err := db.Collection("devices").Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, internal.ErrorFormat{Package: "internal.device", Function: "GetAllDevices", Level: log.ErrorLevel, Message: "unable to search for devices", Error: err}.ToError()
	}
	var results []bson.D
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, internal.ErrorFormat{Package: "internal.device", Function: "GetAllDevices", Level: log.ErrorLevel, Message: "error cursoring through devices", Error: err}.ToError()
	}

	var devices []*Device
	for _, rd := range results {
		m, err := bson.Marshal(&rd)
		if err != nil {
			return nil, internal.ErrorFormat{Package: "internal.device", Function: "GetAllDevices", Level: log.ErrorLevel, Message: "unable to marshal device result", Error: err}.ToError()
		}
		var dd Device
		err = bson.Unmarshal(m, &dd)
		if err != nil {
			return nil, internal.ErrorFormat{Package: "internal.device", Function: "GetAllDevices", Level: log.ErrorLevel, Message: "unable to unmarshal device result", Error: err}.ToError()
		}
		devices = append(devices, &dd)
	}

	return devices, nil
}

// UpdateDetails changes the user-editable fields. It never touches status,
// lastSeenAt or lastCheckedAt; an edited device keeps its last probed state.
func (d *Device) UpdateDetails(db *mongo.Database, newName string, newIP string, newMAC string, newDescription string) error {
	var filter = bson.D{{Key: "_id", Value: d.ID}}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: newName},
			{Key: "ipAddress", Value: newIP},
			{Key: "macAddress", Value: newMAC},
			{Key: "description", Value: newDescription},
			{Key: "updatedAt", Value: time.Now()},
		}},
	}

	result, err := db.Collection("devices").UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "UpdateDetails", Level: log.ErrorLevel, ObjectID: d.ID, Message: "unable to update device details", Error: err}.ToError()
	}
	if result.MatchedCount == 0 {
		return ErrDeviceNotFound
	}

	d.Name = newName
	d.IPAddress = newIP
	d.MACAddress = newMAC
	d.Description = newDescription
	d.UpdatedAt = time.Now()

	return nil
}

// UpdateDeviceStatus applies a probe outcome to the stored record. The
// lastCheckedAt timestamp is always advanced; lastSeenAt only when the caller
// supplies one (i.e. the probe succeeded). A record that no longer exists
// yields ErrDeviceNotFound so the caller can decide whether that matters.
func UpdateDeviceStatus(db *mongo.Database, deviceID primitive.ObjectID, status Status, lastSeen *time.Time) error {
	var filter = bson.D{{Key: "_id", Value: deviceID}}

	set := bson.D{
		{Key: "status", Value: status},
		{Key: "lastCheckedAt", Value: time.Now()},
	}
	if lastSeen != nil {
		set = append(set, bson.E{Key: "lastSeenAt", Value: *lastSeen})
	}
	update := bson.D{{Key: "$set", Value: set}}

	result, err := db.Collection("devices").UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "UpdateDeviceStatus", Level: log.ErrorLevel, ObjectID: deviceID, Message: "unable to update device status", Error: err}.ToError()
	}
	if result.MatchedCount == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// DeleteDevice removes the device by id.
func DeleteDevice(db *mongo.Database, deviceID primitive.ObjectID) error {
	var filter = bson.D{{Key: "_id", Value: deviceID}}

	_, err := db.Collection("devices").DeleteMany(context.TODO(), filter)
	if err != nil {
		return internal.ErrorFormat{Package: "internal.device", Function: "DeleteDevice", Level: log.ErrorLevel, ObjectID: deviceID, Message: "unable to delete device by id", Error: err}.ToError()
	}

	return nil
}
