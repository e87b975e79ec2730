package knowledge

// domainStates is the built-in whitelist of domains whose state vocabulary
// is fixed by the platform. Domains absent from this map have an open state
// space (sensor, input_text, ...) and the domain tier has no opinion there.
// "unknown" and "unavailable" are not listed; they are unioned into every
// merged set at query time since any entity can report them.
var domainStates = map[string][]string{
	"automation":    {"on", "off"},
	"binary_sensor": {"on", "off"},
	"calendar":      {"on", "off"},
	"fan":           {"on", "off"},
	"humidifier":    {"on", "off"},
	"input_boolean": {"on", "off"},
	"light":         {"on", "off"},
	"remote":        {"on", "off"},
	"schedule":      {"on", "off"},
	"script":        {"on", "off"},
	"siren":         {"on", "off"},
	"switch":        {"on", "off"},
	"update":        {"on", "off"},

	"device_tracker": {"home", "not_home"},
	"person":         {"home", "not_home"},

	"lock":  {"locked", "unlocked", "locking", "unlocking", "jammed", "open", "opening"},
	"cover": {"open", "closed", "opening", "closing"},
	"sun":   {"above_horizon", "below_horizon"},
	"timer": {"idle", "active", "paused"},

	"alarm_control_panel": {
		"disarmed", "armed_home", "armed_away", "armed_night", "armed_vacation",
		"armed_custom_bypass", "pending", "arming", "disarming", "triggered",
	},
	"climate": {"off", "heat", "cool", "heat_cool", "auto", "dry", "fan_only"},
	"media_player": {
		"off", "on", "idle", "playing", "paused", "standby", "buffering",
	},
	"vacuum": {"cleaning", "docked", "idle", "paused", "returning", "error"},
	"water_heater": {
		"off", "eco", "electric", "performance", "high_demand", "heat_pump", "gas",
	},
	"weather": {
		"clear-night", "cloudy", "exceptional", "fog", "hail", "lightning",
		"lightning-rainy", "partlycloudy", "pouring", "rainy", "snowy",
		"snowy-rainy", "sunny", "windy", "windy-variant",
	},
}

// DomainStates returns the whitelist vocabulary for a domain, or not-ok when
// the domain has an open state space.
func DomainStates(domain string) ([]string, bool) {
	states, ok := domainStates[domain]
	return states, ok
}

// commonAttributes exist on essentially every entity.
var commonAttributes = []string{
	"friendly_name", "icon", "entity_picture", "device_class",
	"supported_features", "assumed_state", "attribution",
}

// domainAttributes lists well-known attribute names per domain. Used as a
// floor under observed attributes so a valid attribute read is not flagged
// just because the entity currently omits it.
var domainAttributes = map[string][]string{
	"alarm_control_panel": {"code_format", "changed_by", "code_arm_required"},
	"automation":          {"last_triggered", "mode", "current"},
	"binary_sensor":       {},
	"climate": {
		"temperature", "current_temperature", "target_temp_high", "target_temp_low",
		"hvac_modes", "hvac_action", "preset_mode", "preset_modes",
		"fan_mode", "fan_modes", "swing_mode", "swing_modes",
		"humidity", "current_humidity", "min_temp", "max_temp",
	},
	"cover":          {"current_position", "current_tilt_position"},
	"device_tracker": {"latitude", "longitude", "gps_accuracy", "source_type", "battery_level"},
	"fan":            {"percentage", "preset_mode", "preset_modes", "oscillating", "direction"},
	"humidifier":     {"humidity", "current_humidity", "mode", "available_modes", "action"},
	"input_datetime": {"has_date", "has_time", "timestamp"},
	"input_number":   {"min", "max", "step", "mode"},
	"input_select":   {"options"},
	"light": {
		"brightness", "color_mode", "supported_color_modes", "color_temp_kelvin",
		"min_color_temp_kelvin", "max_color_temp_kelvin", "rgb_color", "hs_color",
		"xy_color", "effect", "effect_list",
	},
	"lock": {"code_format", "changed_by"},
	"media_player": {
		"volume_level", "is_volume_muted", "media_title", "media_artist",
		"media_album_name", "media_content_type", "media_duration",
		"media_position", "source", "source_list", "sound_mode", "sound_mode_list",
		"shuffle", "repeat", "app_name",
	},
	"person": {"latitude", "longitude", "gps_accuracy", "source", "user_id"},
	"script": {"last_triggered", "mode", "current"},
	"sensor": {"unit_of_measurement", "state_class", "options"},
	"sun": {
		"next_rising", "next_setting", "next_dawn", "next_dusk", "next_noon",
		"next_midnight", "elevation", "azimuth", "rising",
	},
	"timer":   {"duration", "remaining", "finishes_at", "restore"},
	"vacuum":  {"battery_level", "battery_icon", "fan_speed", "fan_speed_list"},
	"weather": {
		"temperature", "apparent_temperature", "humidity", "pressure",
		"wind_speed", "wind_bearing", "wind_gust_speed", "visibility",
		"cloud_coverage", "dew_point", "uv_index",
	},
	"zone": {"latitude", "longitude", "radius", "passive", "persons"},
}

// DomainAttributes returns the well-known attributes for a domain, common
// attributes included.
func DomainAttributes(domain string) []string {
	out := make([]string, 0, len(commonAttributes)+len(domainAttributes[domain]))
	out = append(out, commonAttributes...)
	out = append(out, domainAttributes[domain]...)
	return out
}
