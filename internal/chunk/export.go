package chunk

import "github.com/NALStudio/NDiscoPlus/internal/effect"

// Export is a read-only snapshot of a track's directives for visualisation
// tooling. The compositing path never reads it.
type Export struct {
	TrackID            string            `json:"track_id"`
	Effects            []effect.Effect   `json:"effects"`
	BackgroundDisabled []effect.Interval `json:"background_disabled"`
}

// Export snapshots the collection under trackID.
func (c *Collection) Export(trackID string) Export {
	return Export{
		TrackID:            trackID,
		Effects:            c.Effects(),
		BackgroundDisabled: c.Disabled(),
	}
}
