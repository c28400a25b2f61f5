package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
Driver:
  type: appium
  url: http://127.0.0.1:4723
Capabilities:
  platformName: Android
  appium:noReset: true
Jira:
  enabled: true
  labels: regression smoke
  fixversion: "1.0"
  onlyifchanges: "yes"
  timeout: 10
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Get(SectionDriver, "type", ""); got != "appium" {
		t.Errorf("expected driver type appium, got %q", got)
	}
	if got, _ := cfg.GetOptional(SectionJira, "labels"); got != "regression smoke" {
		t.Errorf("expected labels 'regression smoke', got %q", got)
	}
	if got, _ := cfg.GetOptional("jira", "FixVersion"); got != "1.0" {
		t.Errorf("expected case-insensitive lookup of fixversion, got %q", got)
	}
	if !cfg.GetBoolOptional(SectionJira, "enabled") {
		t.Error("expected enabled to be true")
	}
	if !cfg.GetBoolOptional(SectionJira, "onlyifchanges") {
		t.Error("expected onlyifchanges 'yes' to parse as true")
	}
	if d, ok := cfg.GetDurationOptional(SectionJira, "timeout"); !ok || d != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v (ok=%v)", d, ok)
	}
	caps := cfg.Section(SectionCapabilities)
	if caps["platformName"] != "Android" {
		t.Errorf("expected platformName Android, got %v", caps["platformName"])
	}
	if caps["appium:noReset"] != true {
		t.Errorf("expected appium:noReset true, got %v", caps["appium:noReset"])
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `Jira: [invalid yaml`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestOptionalLookups_Missing(t *testing.T) {
	cfg := New()

	if _, ok := cfg.GetOptional(SectionJira, "labels"); ok {
		t.Error("expected missing option to report ok=false")
	}
	if cfg.GetBoolOptional(SectionJira, "enabled") {
		t.Error("expected missing bool option to be false")
	}
	if _, ok := cfg.GetIntOptional(SectionJira, "timeout"); ok {
		t.Error("expected missing int option to report ok=false")
	}
	if got := cfg.Get(SectionJira, "url", "default"); got != "default" {
		t.Errorf("Get() = %q, want default", got)
	}
	if cfg.HasSection(SectionJira) {
		t.Error("expected no Jira section")
	}
}

func TestNilConfig_Lookups(t *testing.T) {
	var cfg *Config

	if _, ok := cfg.GetOptional(SectionJira, "labels"); ok {
		t.Error("nil config should have no options")
	}
	if cfg.GetBoolOptional(SectionJira, "enabled") {
		t.Error("nil config should report false")
	}
	if len(cfg.Section(SectionJira)) != 0 {
		t.Error("nil config should have empty sections")
	}
}

func TestGetDurationOptional_String(t *testing.T) {
	cfg := New()
	cfg.Set(SectionJira, "timeout", "1m30s")

	d, ok := cfg.GetDurationOptional(SectionJira, "timeout")
	if !ok || d != 90*time.Second {
		t.Errorf("GetDurationOptional() = %v, %v; want 1m30s, true", d, ok)
	}

	cfg.Set(SectionJira, "timeout", "soon")
	if _, ok := cfg.GetDurationOptional(SectionJira, "timeout"); ok {
		t.Error("expected unparsable duration to report ok=false")
	}
}

func TestFractionalNumbers(t *testing.T) {
	cfg := New()
	cfg.Set(SectionJira, "timeout", 0.5)

	if n, ok := cfg.GetIntOptional(SectionJira, "timeout"); ok {
		t.Errorf("GetIntOptional() = %d, true; want ok=false for 0.5", n)
	}
	if d, ok := cfg.GetDurationOptional(SectionJira, "timeout"); !ok || d != 500*time.Millisecond {
		t.Errorf("GetDurationOptional() = %v, %v; want 500ms, true", d, ok)
	}

	cfg.Set(SectionJira, "timeout", 2.0)
	if n, ok := cfg.GetIntOptional(SectionJira, "timeout"); !ok || n != 2 {
		t.Errorf("GetIntOptional() = %d, %v; want 2, true", n, ok)
	}

	cfg.Set(SectionJira, "timeout", "1.5")
	if d, ok := cfg.GetDurationOptional(SectionJira, "timeout"); !ok || d != 1500*time.Millisecond {
		t.Errorf("GetDurationOptional() = %v, %v; want 1.5s, true", d, ok)
	}
}

func TestLoadFromDir_ConfigYaml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("Driver:\n  type: selenium\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Get(SectionDriver, "type", ""); got != "selenium" {
		t.Errorf("expected selenium, got %q", got)
	}
}

func TestLoadFromDir_ConfigYml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("Driver:\n  type: playwright\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Get(SectionDriver, "type", ""); got != "playwright" {
		t.Errorf("expected playwright, got %q", got)
	}
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected empty config, got nil")
	}
	if cfg.HasSection(SectionDriver) {
		t.Error("expected no sections")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	cfg.Set(SectionJira, "enabled", false)

	t.Setenv("PAGEOBJECTS_JIRA_ENABLED", "true")
	t.Setenv("PAGEOBJECTS_JIRA_BUILD", "1234")
	t.Setenv("PAGEOBJECTS_DRIVER_URL", "http://grid:4444/wd/hub")
	t.Setenv("OTHER_JIRA_LABELS", "ignored")

	cfg.ApplyEnv(EnvPrefix)

	if !cfg.GetBoolOptional(SectionJira, "enabled") {
		t.Error("expected env to enable Jira")
	}
	if got, _ := cfg.GetOptional(SectionJira, "build"); got != "1234" {
		t.Errorf("expected build 1234, got %q", got)
	}
	if got := cfg.Get(SectionDriver, "url", ""); got != "http://grid:4444/wd/hub" {
		t.Errorf("expected driver url from env, got %q", got)
	}
	if _, ok := cfg.GetOptional(SectionJira, "labels"); ok {
		t.Error("variables with another prefix must be ignored")
	}
}

func TestApplyEnv_KeepsKeyCase(t *testing.T) {
	cfg := New()
	cfg.Set(SectionCapabilities, "platformName", "Android")

	t.Setenv("PAGEOBJECTS_CAPABILITIES_PLATFORMNAME", "iOS")
	cfg.ApplyEnv(EnvPrefix)

	caps := cfg.Section(SectionCapabilities)
	if len(caps) != 1 || caps["platformName"] != "iOS" {
		t.Errorf("expected {platformName: iOS}, got %v", caps)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PAGEOBJECTS_JIRA_COMMENTS=from dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PAGEOBJECTS_JIRA_COMMENTS", "")
	os.Unsetenv("PAGEOBJECTS_JIRA_COMMENTS")

	if err := LoadDotEnv(dir); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	cfg := New()
	cfg.ApplyEnv(EnvPrefix)
	if got, _ := cfg.GetOptional(SectionJira, "comments"); got != "from dotenv" {
		t.Errorf("expected comments from .env, got %q", got)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(t.TempDir()); err != nil {
		t.Errorf("missing .env should not be an error, got %v", err)
	}
}

func TestFind_Order(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(second, "config.yml"), []byte("Driver: {type: selenium}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	path, ok := Find(first, second)
	if !ok || path != filepath.Join(second, "config.yml") {
		t.Fatalf("Find() = %q, %v", path, ok)
	}

	if err := os.WriteFile(filepath.Join(first, "config.yaml"), []byte("Driver: {type: appium}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if path, _ := Find(first, second); path != filepath.Join(first, "config.yaml") {
		t.Errorf("Find() = %q, want the first directory", path)
	}

	if _, ok := Find(t.TempDir()); ok {
		t.Error("expected no config in an empty directory")
	}
}
