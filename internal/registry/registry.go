// Package registry holds an immutable snapshot of the device, area, tag and
// config-entry registries for existence lookups.
package registry

// Snapshot answers existence queries against registry data captured at one
// point in time. A nil Snapshot reports not ready, which disables registry
// checks entirely rather than flagging everything as missing.
type Snapshot struct {
	devices      map[string]struct{}
	areas        map[string]struct{}
	tags         map[string]struct{}
	integrations map[string]struct{}
}

// New builds a snapshot from id lists.
func New(devices, areas, tags, integrations []string) *Snapshot {
	return &Snapshot{
		devices:      toSet(devices),
		areas:        toSet(areas),
		tags:         toSet(tags),
		integrations: toSet(integrations),
	}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Ready reports whether registry data was captured.
func (s *Snapshot) Ready() bool { return s != nil }

// DeviceExists reports whether the device id is registered.
func (s *Snapshot) DeviceExists(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.devices[id]
	return ok
}

// AreaExists reports whether the area id is registered.
func (s *Snapshot) AreaExists(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.areas[id]
	return ok
}

// TagExists reports whether the tag id is registered.
func (s *Snapshot) TagExists(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.tags[id]
	return ok
}

// IntegrationExists reports whether the config entry id is registered.
func (s *Snapshot) IntegrationExists(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.integrations[id]
	return ok
}
