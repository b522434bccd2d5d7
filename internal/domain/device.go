package domain

import "time"

// DeviceStatusConnected is the only device state the gateway models.
// There is no disconnect or liveness lifecycle: once registered, a peer
// stays in the directory until the store is wiped.
const DeviceStatusConnected = "connected"

// DefaultDeviceName labels peers that registered without a display name.
const DefaultDeviceName = "Unknown device"

// Device is a directory entry for a peer point-of-sale device that
// transactions can be relayed to.
type Device struct {
	ID          string    `json:"id"`
	DeviceURL   string    `json:"deviceUrl"`
	DeviceName  string    `json:"deviceName"`
	ConnectedAt time.Time `json:"connectedAt"`
	Status      string    `json:"status"`
}

// NewDevice builds a connected directory entry. An empty name falls back
// to the default label.
func NewDevice(id, deviceURL, deviceName string) Device {
	if deviceName == "" {
		deviceName = DefaultDeviceName
	}
	return Device{
		ID:          id,
		DeviceURL:   deviceURL,
		DeviceName:  deviceName,
		ConnectedAt: time.Now().UTC(),
		Status:      DeviceStatusConnected,
	}
}
