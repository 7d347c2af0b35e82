package main

import (
	"path/filepath"
	"testing"

	"mercator-hq/saturn/pkg/config"
)

func TestValidateWatchConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: config.Config{
				Filter: config.FilterConfig{Rules: "days14"},
				Watch:  config.WatchConfig{Paths: []string{dir}},
			},
		},
		{
			name: "no paths",
			cfg: config.Config{
				Filter: config.FilterConfig{Rules: "days14"},
			},
			wantErr: true,
		},
		{
			name: "no rules",
			cfg: config.Config{
				Watch: config.WatchConfig{Paths: []string{dir}},
			},
			wantErr: true,
		},
		{
			name: "missing directory",
			cfg: config.Config{
				Filter: config.FilterConfig{Rules: "days14"},
				Watch:  config.WatchConfig{Paths: []string{filepath.Join(dir, "absent")}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWatchConfig(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWatchConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWatchCommandExists(t *testing.T) {
	// Test that the watch command is properly initialized
	if watchCmd == nil {
		t.Fatal("watchCmd is nil")
	}

	if watchCmd.Use != "watch" {
		t.Errorf("watchCmd.Use = %q, want %q", watchCmd.Use, "watch")
	}

	if watchCmd.RunE == nil {
		t.Error("watchCmd.RunE should not be nil")
	}

	for _, flag := range []string{"listen", "log-level", "dry-run"} {
		if watchCmd.Flags().Lookup(flag) == nil {
			t.Errorf("watchCmd is missing the --%s flag", flag)
		}
	}
}
