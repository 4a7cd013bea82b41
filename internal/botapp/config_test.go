package botapp

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfigYAML = `
telegram:
  token: "123:abc"
  run_mode: longpoll
session:
  driver: memory
database:
  host: 127.0.0.1
  port: "5432"
agency:
  agent_chat_id: -100500
  hr_tag: "@hr"
  ib_tag: "@mortgage"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Core.Telegram.Token != "123:abc" {
		t.Fatalf("token = %q", cfg.Core.Telegram.Token)
	}
	if cfg.Agency.AgentChatID != -100500 {
		t.Fatalf("agent_chat_id = %d", cfg.Agency.AgentChatID)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Fatalf("db host = %q", cfg.Database.Host)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("AGENT_CHAT_ID", "-200600")
	t.Setenv("HR_TAG", "@people")

	cfg, err := LoadConfig(writeConfig(t, testConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Agency.AgentChatID != -200600 {
		t.Fatalf("agent_chat_id = %d", cfg.Agency.AgentChatID)
	}
	if cfg.Agency.HRTag != "@people" {
		t.Fatalf("hr_tag = %q", cfg.Agency.HRTag)
	}
}

func TestLoadConfigRequiresAgentChat(t *testing.T) {
	body := `
telegram:
  token: "123:abc"
agency:
  agent_chat_id: 0
`
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for missing agent_chat_id")
	}
}
