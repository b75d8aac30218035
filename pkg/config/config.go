// Package config resolves portal connection settings from an optional YAML
// profile file and HUB_* environment variables. Environment values win over
// file values so CI and local overrides need no file edits.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/esri/hub.go/pkg/constants"
)

const DefaultProfile = "default"

// Profile is one named portal target.
type Profile struct {
	URL            string        `yaml:"url"             env:"HUB_URL"`
	Token          string        `yaml:"token"           env:"HUB_TOKEN"`
	CommunityOrgID string        `yaml:"communityOrgId"  env:"HUB_COMMUNITY_ORG_ID"`
	Timeout        time.Duration `yaml:"timeout"         env:"HUB_TIMEOUT"`
}

// UnmarshalYAML accepts Go duration strings ("30s", "2m") for the timeout
// field, which yaml.v3 does not decode into time.Duration on its own.
func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		URL            string `yaml:"url"`
		Token          string `yaml:"token"`
		CommunityOrgID string `yaml:"communityOrgId"`
		Timeout        string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	p.URL = raw.URL
	p.Token = raw.Token
	p.CommunityOrgID = raw.CommunityOrgID
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		p.Timeout = d
	}
	return nil
}

// File is the on-disk layout of a profile file.
type File struct {
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads the profile file at path, selects the named profile (falling
// back to the file's default, then to "default"), and applies environment
// overrides. An empty path skips the file and resolves from the
// environment alone.
func Load(path, name string) (Profile, error) {
	var profile Profile

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Profile{}, fmt.Errorf("read config file: %w", err)
		}

		var file File
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Profile{}, fmt.Errorf("parse config file: %w", err)
		}

		if name == "" {
			name = file.Default
		}
		if name == "" {
			name = DefaultProfile
		}

		selected, ok := file.Profiles[name]
		if !ok {
			return Profile{}, fmt.Errorf("%w: %q", constants.ErrNoProfile, name)
		}
		profile = selected
	}

	if err := env.Parse(&profile); err != nil {
		return Profile{}, fmt.Errorf("parse env: %w", err)
	}

	if profile.Timeout == 0 {
		profile.Timeout = 30 * time.Second
	}

	return profile, nil
}

// FromEnv resolves a profile from environment variables only.
func FromEnv() (Profile, error) {
	return Load("", "")
}
