package io

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// headerConfig is the YAML form of a Header. Absent fields keep their
// defaults.
type headerConfig struct {
	Name        *string `yaml:"name"`
	Description *string `yaml:"description"`
	Version     []int   `yaml:"version"`
}

// LoadHeader reads rom header metadata from YAML, for example:
//
//	name: Demo
//	description: Scrolling demo
//	version: [1, 2, 1, 1]
func LoadHeader(r io.Reader) (header Header, err error) {
	header = DefaultHeader()

	var config headerConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err = decoder.Decode(&config)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	if config.Name != nil {
		header.Name = *config.Name
	}
	if config.Description != nil {
		header.Description = *config.Description
	}
	if config.Version != nil {
		if len(config.Version) != len(header.Version) {
			err = ErrHeaderVersion
			return
		}
		for n, value := range config.Version {
			if value < 0 || value > 0xff {
				err = ErrHeaderVersion
				return
			}
			header.Version[n] = uint8(value)
		}
	}

	err = header.Validate()
	return
}
