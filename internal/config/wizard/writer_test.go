package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/imamik/clusterup/internal/config"
)

func testConfig() *config.Config {
	return BuildConfig(&WizardResult{
		ClusterName:       "demo",
		InstallMethod:     config.MethodSSHPull,
		Provider:          config.ProviderVirtualBox,
		SSHUser:           "vagrant",
		SSHKeyPath:        "/keys/login",
		MaxInstallThreads: config.DefaultMaxInstallThreads,
		PostflightTimeout: config.DefaultPostflightTimeout,
	})
}

func TestWriteConfig_Minimal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusterup.yaml")
	cfg := testConfig()

	if err := WriteConfig(cfg, path, false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# clusterup installer configuration") {
		t.Errorf("missing header:\n%s", content)
	}
	if !strings.Contains(content, "Output mode: minimal") {
		t.Errorf("expected minimal mode in header")
	}
	for _, absent := range []string{"installer:", "max_install_threads", "postflight_timeout", "port:"} {
		if strings.Contains(content, absent) {
			t.Errorf("minimal output should not contain default %q:\n%s", absent, content)
		}
	}

	loaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.ClusterName != "demo" || loaded.SSH.KeyPath != "/keys/login" {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
	if loaded.Installer != cfg.Installer || loaded.PostflightTimeout != cfg.PostflightTimeout {
		t.Errorf("defaults did not survive the round trip: %+v", loaded)
	}
}

func TestWriteConfig_MinimalKeepsCustomValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusterup.yaml")
	cfg := testConfig()
	cfg.MaxInstallThreads = 16
	cfg.SSH.Port = 2222
	cfg.PostflightTimeout = 5 * time.Minute
	cfg.Installer.BootstrapPort = 8080

	if err := WriteConfig(cfg, path, false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	loaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.MaxInstallThreads != 16 || loaded.SSH.Port != 2222 {
		t.Errorf("custom values lost: threads=%d port=%d", loaded.MaxInstallThreads, loaded.SSH.Port)
	}
	if loaded.PostflightTimeout != 5*time.Minute {
		t.Errorf("PostflightTimeout = %v, want 5m", loaded.PostflightTimeout)
	}
	if loaded.Installer.BootstrapPort != 8080 || loaded.Installer.WorkDir != config.DefaultWorkDir {
		t.Errorf("unexpected installer config: %+v", loaded.Installer)
	}
}

func TestWriteConfig_Full(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusterup.yaml")
	cfg := testConfig()

	if err := WriteConfig(cfg, path, true); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Output mode: full") || !strings.Contains(content, "installer:") {
		t.Errorf("expected full output:\n%s", content)
	}

	loaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.Installer != cfg.Installer || loaded.SSH != cfg.SSH {
		t.Errorf("full round trip mismatch: %+v", loaded)
	}
}

func TestWriteConfig_BadPath(t *testing.T) {
	err := WriteConfig(testConfig(), filepath.Join(t.TempDir(), "missing", "clusterup.yaml"), false)
	if err == nil || !strings.Contains(err.Error(), "failed to write file") {
		t.Errorf("expected write error, got %v", err)
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusterup.yaml")
	if FileExists(path) {
		t.Error("expected missing file")
	}
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("expected existing file")
	}
}

func TestConfirmOverwrite(t *testing.T) {
	orig := confirmOverwrite
	t.Cleanup(func() { confirmOverwrite = orig })

	var asked string
	confirmOverwrite = func(path string) (bool, error) {
		asked = path
		return true, nil
	}

	ok, err := ConfirmOverwrite("clusterup.yaml")
	if err != nil || !ok {
		t.Errorf("ConfirmOverwrite() = %v, %v", ok, err)
	}
	if asked != "clusterup.yaml" {
		t.Errorf("expected prompt for clusterup.yaml, got %q", asked)
	}
}
