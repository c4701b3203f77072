package light

// Profile is a named set of per-light overrides.
type Profile struct {
	Name   string        `json:"name"`
	Lights map[ID]Config `json:"lights"`
}

// NewProfile returns an empty profile.
func NewProfile(name string) Profile {
	return Profile{Name: name, Lights: make(map[ID]Config)}
}

// Set stores the overrides for id.
func (p *Profile) Set(id ID, cfg Config) {
	if p.Lights == nil {
		p.Lights = make(map[ID]Config)
	}
	p.Lights[id] = cfg
}

// Apply wraps every light in a record using its overrides, or the defaults
// when the profile has none for it.
func (p Profile) Apply(lights []Light) []Record {
	records := make([]Record, 0, len(lights))
	for _, l := range lights {
		cfg, ok := p.Lights[l.ID]
		if !ok {
			cfg = DefaultConfig()
		}
		records = append(records, cfg.Record(l))
	}
	return records
}
