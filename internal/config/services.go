package config

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/lockievisual/studio-portal/internal/models"
)

// LoadServices reads the studio's service catalog from a YAML file.
// The path defaults to configs/services.yaml and can be overridden with
// SERVICES_PATH.
func LoadServices(path string) ([]models.ServiceOffering, error) {
	if path == "" {
		path = os.Getenv("SERVICES_PATH")
	}
	if path == "" {
		path = "configs/services.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog struct {
		Services []models.ServiceOffering `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}

	if err := ValidateServices(catalog.Services); err != nil {
		return nil, err
	}

	return catalog.Services, nil
}
