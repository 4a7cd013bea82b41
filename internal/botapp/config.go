package botapp

import (
	"fmt"
	"os"

	coreconfig "github.com/vyborpervykh/estatebot/core/config"
	"github.com/vyborpervykh/estatebot/core/database"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// AgencyConfig holds agency-specific settings: where staff reports go and
// which Telegram file IDs back the catalog and the greeting photo.
type AgencyConfig struct {
	AgentChatID    int64  `yaml:"agent_chat_id" envconfig:"AGENT_CHAT_ID"`
	HRTag          string `yaml:"hr_tag" envconfig:"HR_TAG"`
	IBTag          string `yaml:"ib_tag" envconfig:"IB_TAG"`
	CatalogFileID  string `yaml:"catalog_file_id" envconfig:"CATALOG_FILE_ID"`
	WelcomePhotoID string `yaml:"welcome_photo_id" envconfig:"WELCOME_PHOTO_ID"`
	SocialURL      string `yaml:"social_url" envconfig:"SOCIAL_URL"`
}

// Config is the full bot configuration: shared core settings plus the
// database and agency sections.
type Config struct {
	Core     coreconfig.Config `yaml:",inline"`
	Database database.Config   `yaml:"database"`
	Agency   AgencyConfig      `yaml:"agency"`
}

// CoreConfig implements cmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Core }

// LoadConfig reads the YAML file, applies environment overrides, and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if cfg.Agency.AgentChatID == 0 {
		return nil, fmt.Errorf("agency.agent_chat_id is required")
	}
	return &cfg, nil
}
