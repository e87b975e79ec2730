// Package testfixtures provides a fake Home Assistant instance and canned
// entity data for tests.
package testfixtures

import (
	"github.com/home-assistant-tools/automation-lint-go/internal/knowledge"
)

// DefaultToken is the access token the fake instance accepts.
const DefaultToken = "test-token"

// HouseholdStates is a small but representative entity snapshot: fixed
// vocabulary domains, an enum sensor, an open-vocabulary sensor and an
// input_select with options.
func HouseholdStates() []knowledge.EntityState {
	return []knowledge.EntityState{
		{
			EntityID:   "binary_sensor.front_door",
			State:      "off",
			Attributes: map[string]interface{}{"friendly_name": "Front Door", "device_class": "door"},
		},
		{
			EntityID:   "binary_sensor.motion_hall",
			State:      "on",
			Attributes: map[string]interface{}{"friendly_name": "Hall Motion", "device_class": "motion"},
		},
		{
			EntityID:   "person.matt",
			State:      "home",
			Attributes: map[string]interface{}{"friendly_name": "Matt", "source": "device_tracker.matt_phone"},
		},
		{
			EntityID: "climate.living_room",
			State:    "heat",
			Attributes: map[string]interface{}{
				"friendly_name":       "Living Room",
				"hvac_modes":          []interface{}{"off", "heat", "cool", "auto"},
				"current_temperature": 20.5,
				"temperature":         21.0,
			},
		},
		{
			EntityID: "input_select.house_mode",
			State:    "normal",
			Attributes: map[string]interface{}{
				"friendly_name": "House Mode",
				"options":       []interface{}{"normal", "guests", "vacation"},
			},
		},
		{
			EntityID: "sensor.washer_status",
			State:    "idle",
			Attributes: map[string]interface{}{
				"friendly_name": "Washer",
				"device_class":  "enum",
				"options":       []interface{}{"idle", "washing", "rinsing", "spinning"},
			},
		},
		{
			EntityID: "sensor.kitchen_temp",
			State:    "21.4",
			Attributes: map[string]interface{}{
				"friendly_name":       "Kitchen Temperature",
				"unit_of_measurement": "°C",
			},
		},
		{
			EntityID:   "light.kitchen",
			State:      "on",
			Attributes: map[string]interface{}{"friendly_name": "Kitchen Light", "brightness": 180},
		},
		{
			EntityID:   "lock.front_door",
			State:      "locked",
			Attributes: map[string]interface{}{"friendly_name": "Front Door Lock"},
		},
	}
}

// HouseholdHistory is an observed-state map matching HouseholdStates, plus
// one entity that existed historically but is gone from the snapshot.
func HouseholdHistory() map[string][]string {
	return map[string][]string{
		"binary_sensor.front_door": {"on", "off"},
		"person.matt":              {"home", "not_home"},
		"sensor.washer_status":     {"idle", "washing"},
		"binary_sensor.old_window": {"on", "off"},
	}
}

// ServiceDomains is a get_services style payload with a required field and
// an optional one.
func ServiceDomains() map[string]map[string]map[string]interface{} {
	return map[string]map[string]map[string]interface{}{
		"light": {
			"turn_on": {
				"fields": map[string]interface{}{
					"brightness": map[string]interface{}{"required": false},
					"transition": map[string]interface{}{"required": false},
				},
			},
			"turn_off": {
				"fields": map[string]interface{}{},
			},
		},
		"notify": {
			"mobile_app_matt": {
				"fields": map[string]interface{}{
					"message": map[string]interface{}{"required": true},
					"title":   map[string]interface{}{"required": false},
				},
			},
		},
	}
}

// RegistryIDs are the registry entries the fake instance serves.
type RegistryIDs struct {
	Devices       []string
	Areas         []string
	Tags          []string
	ConfigEntries []string
}

// HouseholdRegistries returns registry ids matching the household snapshot.
func HouseholdRegistries() RegistryIDs {
	return RegistryIDs{
		Devices:       []string{"dev-front-door", "dev-hall-motion"},
		Areas:         []string{"kitchen", "living_room"},
		Tags:          []string{"tag-guest-card"},
		ConfigEntries: []string{"entry-zwave", "entry-mqtt"},
	}
}
