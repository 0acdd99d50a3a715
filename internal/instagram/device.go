package instagram

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const hexAlphabet = "0123456789abcdef"

// Hardware profile presented to the API. Kept stable so a restored session
// looks like the same handset that created it.
const (
	deviceAppVersion     = "269.0.0.18.75"
	deviceAndroidVersion = 26
	deviceAndroidRelease = "8.0.0"
	deviceDPI            = "480dpi"
	deviceResolution     = "1080x1920"
	deviceManufacturer   = "Xiaomi"
	deviceModel          = "MI 5s"
	deviceName           = "capricorn"
	deviceCPU            = "qcom"
	deviceVersionCode    = "314665256"
)

// Device is the per-install identity Instagram tracks. Identifiers are
// generated once per account and persisted with the session.
type Device struct {
	AndroidID     string `json:"android_id"`
	PhoneID       string `json:"phone_id"`
	GUID          string `json:"guid"`
	AdvertisingID string `json:"advertising_id"`
}

// NewDevice generates fresh device identifiers.
func NewDevice() Device {
	return Device{
		AndroidID:     "android-" + gonanoid.MustGenerate(hexAlphabet, 16),
		PhoneID:       uuid.NewString(),
		GUID:          uuid.NewString(),
		AdvertisingID: uuid.NewString(),
	}
}

// UserAgent renders the mobile app user agent for this device profile.
func (d Device) UserAgent() string {
	return fmt.Sprintf("Instagram %s Android (%d/%s; %s; %s; %s; %s; %s; %s; en_US; %s)",
		deviceAppVersion, deviceAndroidVersion, deviceAndroidRelease, deviceDPI,
		deviceResolution, deviceManufacturer, deviceModel, deviceName, deviceCPU,
		deviceVersionCode)
}
