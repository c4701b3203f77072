package storage

import (
	"fmt"

	"github.com/NALStudio/NDiscoPlus/internal/chunk"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Resource kinds
const (
	KindLightProfile = "light_profile"
	KindTrackExport  = "track_export"
)

// Profiles stores light profiles by name.
type Profiles struct {
	*TypedStore[light.Profile]
}

// NewProfiles creates the light profile repository.
func NewProfiles(store *Store) *Profiles {
	return &Profiles{NewTypedStore[light.Profile](store, KindLightProfile)}
}

// Load returns the named profile, or an empty one if it was never saved.
func (p *Profiles) Load(name string) (light.Profile, error) {
	profile, version, err := p.Get(name)
	if err != nil {
		return light.Profile{}, err
	}
	if version == 0 {
		return light.NewProfile(name), nil
	}
	return profile, nil
}

// Save stores the profile under its name.
func (p *Profiles) Save(profile light.Profile) error {
	return p.Set(profile.Name, profile)
}

// Exports stores the debug export of each prepared track.
type Exports struct {
	*TypedStore[chunk.Export]
}

// NewExports creates the track export repository.
func NewExports(store *Store) *Exports {
	return &Exports{NewTypedStore[chunk.Export](store, KindTrackExport)}
}

// Save stores the export under its track id.
func (e *Exports) Save(export chunk.Export) error {
	return e.Set(export.TrackID, export)
}

// Latest returns the most recently saved export.
func (e *Exports) Latest() (chunk.Export, bool, error) {
	ids, err := e.IDs()
	if err != nil || len(ids) == 0 {
		return chunk.Export{}, false, err
	}
	export, version, err := e.Get(ids[0])
	if err != nil {
		return chunk.Export{}, false, err
	}
	return export, version > 0, nil
}

// Prune deletes all but the keep most recently saved exports and returns
// how many were removed.
func (e *Exports) Prune(keep int) (int, error) {
	ids, err := e.IDs()
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(ids) <= keep {
		return 0, nil
	}
	for i, id := range ids[keep:] {
		if err := e.Delete(id); err != nil {
			return i, fmt.Errorf("failed to delete export %s: %w", id, err)
		}
	}
	return len(ids) - keep, nil
}
