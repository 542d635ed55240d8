package wizard

import (
	"testing"
	"time"

	"github.com/imamik/clusterup/internal/config"
)

func TestBuildConfig(t *testing.T) {
	result := &WizardResult{
		ClusterName:       "demo",
		InstallMethod:     config.MethodSSHPush,
		Provider:          config.ProviderAWS,
		SSHUser:           "centos",
		SSHKeyPath:        "/keys/login",
		MaxInstallThreads: 8,
		PostflightTimeout: 10 * time.Minute,
	}

	cfg := BuildConfig(result)

	if cfg.ClusterName != "demo" {
		t.Errorf("ClusterName = %q, want %q", cfg.ClusterName, "demo")
	}
	if cfg.InstallMethod != config.MethodSSHPush || cfg.Provider != config.ProviderAWS {
		t.Errorf("unexpected method/provider: %s/%s", cfg.InstallMethod, cfg.Provider)
	}
	if cfg.SSH.User != "centos" || cfg.SSH.KeyPath != "/keys/login" || cfg.SSH.ClusterKeyPath != "" {
		t.Errorf("unexpected ssh config: %+v", cfg.SSH)
	}
	if cfg.MaxInstallThreads != 8 || cfg.PostflightTimeout != 10*time.Minute {
		t.Errorf("unexpected execution settings: %d %v", cfg.MaxInstallThreads, cfg.PostflightTimeout)
	}

	// Defaults fill what the wizard did not ask.
	if cfg.SSH.Port != config.DefaultSSHPort {
		t.Errorf("SSH.Port = %d, want %d", cfg.SSH.Port, config.DefaultSSHPort)
	}
	if cfg.Installer.WorkDir != config.DefaultWorkDir || cfg.Installer.WebPort != config.DefaultWebPort {
		t.Errorf("expected default installer settings, got %+v", cfg.Installer)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("built config should validate: %v", err)
	}
}

func TestBuildConfig_AdvancedOptions(t *testing.T) {
	result := &WizardResult{
		ClusterName: "demo",
		SSHKeyPath:  "/keys/login",
		AdvancedOptions: &AdvancedOptions{
			WorkDir:       "/srv/dcos",
			SharedMount:   "/shared",
			WebPort:       9443,
			BootstrapPort: 8080,
			Resolvers:     []string{"10.0.0.2"},
		},
	}

	cfg := BuildConfig(result)

	if cfg.Installer.WorkDir != "/srv/dcos" || cfg.Installer.SharedMount != "/shared" {
		t.Errorf("unexpected installer paths: %+v", cfg.Installer)
	}
	if cfg.Installer.WebPort != 9443 || cfg.Installer.BootstrapPort != 8080 {
		t.Errorf("unexpected installer ports: %+v", cfg.Installer)
	}
	if len(cfg.Resolvers) != 1 || cfg.Resolvers[0] != "10.0.0.2" {
		t.Errorf("Resolvers = %v, want [10.0.0.2]", cfg.Resolvers)
	}
	// Unanswered identity fields fall back to defaults.
	if cfg.InstallMethod != config.DefaultInstallMethod {
		t.Errorf("InstallMethod = %q, want default", cfg.InstallMethod)
	}
}

func TestValidateClusterName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{"demo", nil},
		{"a", nil},
		{"my-cluster-1", nil},
		{"", errClusterNameRequired},
		{"-demo", errClusterNameInvalid},
		{"Demo", errClusterNameInvalid},
		{"demo_1", errClusterNameInvalid},
		{"abcdefghijklmnopqrstuvwxyz0123456", errClusterNameInvalid},
	}
	for _, tt := range tests {
		if err := validateClusterName(tt.name); err != tt.wantErr {
			t.Errorf("validateClusterName(%q) = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		input string
		ok    bool
	}{
		{"duration seconds", validateDuration, "900s", true},
		{"duration minutes", validateDuration, " 15m ", true},
		{"duration zero", validateDuration, "0s", false},
		{"duration bare number", validateDuration, "900", false},
		{"port", validatePort, "9000", true},
		{"port zero", validatePort, "0", false},
		{"port too high", validatePort, "70000", false},
		{"port text", validatePort, "http", false},
		{"abs path", validateAbsPath, "/opt/dcos", true},
		{"relative path", validateAbsPath, "opt/dcos", false},
		{"resolvers empty", validateResolvers, "", true},
		{"resolvers", validateResolvers, "8.8.8.8, 10.0.0.2", true},
		{"resolvers hostname", validateResolvers, "dns.google", false},
		{"required", validateRequired(errUserRequired), "vagrant", true},
		{"required blank", validateRequired(errUserRequired), "  ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.ok && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.input, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("expected %q to be rejected", tt.input)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"8.8.8.8", []string{"8.8.8.8"}},
		{" 8.8.8.8 , ,1.1.1.1 ", []string{"8.8.8.8", "1.1.1.1"}},
	}
	for _, tt := range tests {
		got := parseList(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseList(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		}
	}
}

func TestOptions(t *testing.T) {
	if got := len(MethodsToOptions()); got != 3 {
		t.Errorf("expected 3 method options, got %d", got)
	}
	for _, m := range Methods {
		if !m.Value.Valid() {
			t.Errorf("method option %q is not a valid install method", m.Value)
		}
	}
	if got := len(ProvidersToOptions()); got != len(Providers) {
		t.Errorf("expected %d provider options, got %d", len(Providers), got)
	}
}
