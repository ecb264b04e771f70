package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"github.com/thundergore/damage-calc/internal/game"
	"github.com/thundergore/damage-calc/internal/models"
)

type presetsFile struct {
	Presets []presetSpec `yaml:"presets"`
}

type presetSpec struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Profile     profileSpec `yaml:"profile"`
}

// LoadPresets reads the named sample profiles served over the API. A preset
// profile with no name of its own inherits the preset name.
func LoadPresets(path string) ([]models.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, calcerr.WrapWithCode(err, calcerr.CodeInvalidConfig, fmt.Sprintf("read presets %s", path))
	}

	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, calcerr.WrapWithCode(err, calcerr.CodeInvalidConfig, "parse presets")
	}

	out := make([]models.Preset, 0, len(f.Presets))
	for i, p := range f.Presets {
		if p.Name == "" {
			return nil, calcerr.InvalidConfigf("preset %d: missing name", i+1)
		}
		profile := game.WeaponProfile(p.Profile)
		if profile.Name == "" {
			profile.Name = p.Name
		}
		if err := validateProfile(profile); err != nil {
			return nil, calcerr.Wrapf(err, "preset %q", p.Name)
		}
		out = append(out, models.Preset{
			Name:        p.Name,
			Description: p.Description,
			Profile:     profile,
		})
	}
	return out, nil
}
