// Package devicelist reads the flat device manifest (which module models
// are physically present, and how many) that feeds rack.Build. Like the
// module catalogue, nothing in the example pack reads this kind of
// manifest from anything but a YAML file, so that is the format
// cmd/chassign's shell adapter reads.
package devicelist

import (
	"os"

	"gopkg.in/yaml.v3"

	"chassign/pkg/errors"
	"chassign/pkg/rack"
)

type entry struct {
	Model string `yaml:"model"`
	Count int    `yaml:"count"`
}

type document struct {
	Devices []entry `yaml:"devices"`
}

// Load reads path and returns the device list in rack.Build's input shape.
func Load(path string) ([]rack.DeviceInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrFileNotFound(path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.ErrMalformedConfig(path, "devicelist", err)
	}

	if len(doc.Devices) == 0 {
		return nil, errors.ErrMissingRequiredField("devices")
	}

	devices := make([]rack.DeviceInput, 0, len(doc.Devices))
	for _, e := range doc.Devices {
		devices = append(devices, rack.DeviceInput{Model: e.Model, Count: e.Count})
	}
	return devices, nil
}
