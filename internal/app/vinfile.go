package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// vinFile is the on-disk batch format: a top-level `vins` list.
type vinFile struct {
	VINs []string `yaml:"vins"`
}

// LoadVINFile reads a YAML VIN batch file, skipping blank entries.
func LoadVINFile(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("vin file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vin file: %w", err)
	}

	var f vinFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse vin file: %w", err)
	}

	vins := make([]string, 0, len(f.VINs))
	for _, v := range f.VINs {
		v = strings.TrimSpace(v)
		if v != "" {
			vins = append(vins, v)
		}
	}
	if len(vins) == 0 {
		return nil, fmt.Errorf("vin file %s lists no vins", path)
	}
	return vins, nil
}
