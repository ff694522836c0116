package models

import "time"

// DeviceStatus tracks where a weighing device sits in the approval flow.
type DeviceStatus string

const (
	DevicePending  DeviceStatus = "pending"
	DeviceApproved DeviceStatus = "approved"
	DeviceRejected DeviceStatus = "rejected"
)

// Device is an IoT scale known to the platform. Devices register implicitly
// as pending the first time they post a reading.
type Device struct {
	DeviceID  string       `bson:"device_id" json:"device_id"`
	Status    DeviceStatus `bson:"status" json:"status"`
	FirstSeen time.Time    `bson:"first_seen" json:"first_seen"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}
