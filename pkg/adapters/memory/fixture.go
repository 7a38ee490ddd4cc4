package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adamjmurray/producer-pal/pkg/domain"
)

// fixture is the YAML schema for a demo session.
type fixture struct {
	Signature struct {
		Numerator   int `yaml:"numerator"`
		Denominator int `yaml:"denominator"`
	} `yaml:"signature"`
	Scenes []struct {
		Name string `yaml:"name"`
	} `yaml:"scenes"`
	Tracks []struct {
		Name    string `yaml:"name"`
		Devices []struct {
			Name  string `yaml:"name"`
			Class string `yaml:"class"`
		} `yaml:"devices"`
		Clips []struct {
			Scene     int     `yaml:"scene"`
			Name      string  `yaml:"name"`
			Length    float64 `yaml:"length"`
			Looping   bool    `yaml:"looping"`
			Signature struct {
				Numerator   int `yaml:"numerator"`
				Denominator int `yaml:"denominator"`
			} `yaml:"signature"`
		} `yaml:"clips"`
		ArrangementClips []struct {
			Name    string  `yaml:"name"`
			Start   float64 `yaml:"start"`
			Length  float64 `yaml:"length"`
			Looping bool    `yaml:"looping"`
		} `yaml:"arrangement_clips"`
	} `yaml:"tracks"`
	Locators []struct {
		Name string  `yaml:"name"`
		Time float64 `yaml:"time"`
	} `yaml:"locators"`
}

// LoadSet builds a session from a YAML fixture file.
func LoadSet(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	s := NewSet()
	if fx.Signature.Numerator > 0 && fx.Signature.Denominator > 0 {
		s.SigNumerator = fx.Signature.Numerator
		s.SigDenominator = fx.Signature.Denominator
	}
	for _, sc := range fx.Scenes {
		s.AddScene(sc.Name)
	}
	for ti, ft := range fx.Tracks {
		t := s.AddTrack(ft.Name)
		for _, fd := range ft.Devices {
			s.AddDevice(t, fd.Name, fd.Class)
		}
		for _, fc := range ft.Clips {
			if fc.Scene < 0 || fc.Scene >= len(s.Scenes) {
				return nil, fmt.Errorf("fixture track %d: clip scene %d out of range", ti, fc.Scene)
			}
			s.AddSessionClip(t, fc.Scene, ClipOptions{
				Name:    fc.Name,
				Length:  fc.Length,
				Looping: fc.Looping,
				IsMIDI:  true,
				Signature: domain.TimeSignature{
					Numerator:   fc.Signature.Numerator,
					Denominator: fc.Signature.Denominator,
				},
			})
		}
		for _, fc := range ft.ArrangementClips {
			s.AddArrangementClip(t, fc.Start, ClipOptions{
				Name:    fc.Name,
				Length:  fc.Length,
				Looping: fc.Looping,
				IsMIDI:  true,
			})
		}
	}
	for _, fl := range fx.Locators {
		s.AddLocator(fl.Name, fl.Time)
	}
	s.ResetCalls()
	return s, nil
}
