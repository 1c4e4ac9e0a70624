package config

import "testing"

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{MinCodewordWidth: 2, MaxCodewordWidth: 30}, false},
		{"equal bounds", Config{MinCodewordWidth: 10, MaxCodewordWidth: 10}, false},
		{"zero min", Config{MinCodewordWidth: 0, MaxCodewordWidth: 30}, true},
		{"max below min", Config{MinCodewordWidth: 20, MaxCodewordWidth: 10}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if c.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !c.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoaderLoadsDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinCodewordWidth != 2 || cfg.MaxCodewordWidth != 30 {
		t.Fatalf("defaults = (%d,%d), want (2,30)", cfg.MinCodewordWidth, cfg.MaxCodewordWidth)
	}
}
