package domain

// Settings is the gateway's singleton configuration record. It is created
// with defaults on first run; deviceId is generated once and then stable
// for the lifetime of the store.
type Settings struct {
	APIURL     string `json:"apiUrl"`
	APIKey     string `json:"apiKey"`
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
}

// DefaultSettingsDeviceName labels a freshly initialized gateway.
const DefaultSettingsDeviceName = "POS Device 1"

// SettingsPatch is a partial update. Nil fields leave the stored value
// untouched; deviceId can never be patched.
type SettingsPatch struct {
	APIURL     *string `json:"apiUrl"`
	APIKey     *string `json:"apiKey"`
	DeviceName *string `json:"deviceName"`
}

// Apply merges the patch into a copy of the settings.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.APIURL != nil {
		s.APIURL = *p.APIURL
	}
	if p.APIKey != nil {
		s.APIKey = *p.APIKey
	}
	if p.DeviceName != nil {
		s.DeviceName = *p.DeviceName
	}
	return s
}
