package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/channel"
	"github.com/NALStudio/NDiscoPlus/internal/config"
	"github.com/NALStudio/NDiscoPlus/internal/light"
	"github.com/NALStudio/NDiscoPlus/internal/storage"
)

// ScreenLights returns count on-screen lights spread evenly left to right.
func ScreenLights(count int) []light.Light {
	if count <= 0 || count > 255 {
		return nil
	}

	lights := make([]light.Light, count)
	for i := range lights {
		x := 0.0
		if count > 1 {
			x = float64(i)/float64(count-1)*2 - 1
		}
		id := light.ScreenID(uint8(count), uint8(i))
		lights[i] = light.Light{
			ID:          id,
			DisplayName: id.HumanReadable(),
			Position:    light.Position{X: x},
		}
	}
	return lights
}

// BuildRoster combines the screen and hue lights into one collection.
func BuildRoster(screenCount int, hueLights []light.Light) (*light.Collection, error) {
	lights := append(ScreenLights(screenCount), hueLights...)
	roster, err := light.NewCollection(lights)
	if err != nil {
		return nil, fmt.Errorf("failed to build light roster: %w", err)
	}
	return roster, nil
}

// LoadProfile loads the configured profile, merges the config overrides into
// it and saves the result.
func LoadProfile(profiles *storage.Profiles, cfg config.ProfileConfig) (light.Profile, error) {
	profile, err := profiles.Load(cfg.Name)
	if err != nil {
		return light.Profile{}, fmt.Errorf("failed to load profile %q: %w", cfg.Name, err)
	}
	if len(cfg.Overrides) == 0 {
		return profile, nil
	}

	for key, override := range cfg.Overrides {
		id, err := light.ParseID(key)
		if err != nil {
			return light.Profile{}, fmt.Errorf("profile override %q: %w", key, err)
		}

		lc, ok := profile.Lights[id]
		if !ok {
			lc = light.DefaultConfig()
		}
		if override.Channel != "" {
			ch, err := channel.Parse(override.Channel)
			if err != nil {
				return light.Profile{}, fmt.Errorf("profile override %q: %w", key, err)
			}
			lc.Channel = ch
		}
		if override.Brightness != nil {
			lc.Brightness = *override.Brightness
		}
		profile.Set(id, lc)
	}

	if err := profiles.Save(profile); err != nil {
		return light.Profile{}, fmt.Errorf("failed to save profile %q: %w", cfg.Name, err)
	}
	log.Info().Str("profile", profile.Name).Int("overrides", len(profile.Lights)).Msg("Light profile loaded")
	return profile, nil
}
