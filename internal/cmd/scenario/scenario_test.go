package scenario

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Assertions {
		t.Fatal("expected assertions to default to true")
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("timeout = %s, want 10s", cfg.Timeout)
	}
	if cfg.DBPath != "" {
		t.Fatalf("db path = %q, want empty", cfg.DBPath)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("ADVANCEMENT_SCENARIO_FILE", "from-env.lua")
	t.Setenv("ADVANCEMENT_SCENARIO_ASSERT", "false")
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"-verbose", "-timeout", "2s"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "from-env.lua" || cfg.Assertions {
		t.Fatalf("config = %+v", cfg)
	}
	if !cfg.Verbose || cfg.Timeout != 2*time.Second {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestRunRequiresScenario(t *testing.T) {
	if err := Run(context.Background(), Config{}, nil, nil); err == nil {
		t.Fatal("expected error without scenario path")
	}
}

func TestRunScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoke.lua")
	script := `local scene = Scenario.new("smoke")
scene:character({id = "c1", name = "Marlowe", hp = 6})
scene:expect({level = 1, hp_max = 6})
return scene
`
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	var errOut bytes.Buffer
	cfg := Config{Scenario: path, Assertions: true, Verbose: true, Timeout: time.Second}
	if err := Run(context.Background(), cfg, nil, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut.String(), "scenario done: smoke") {
		t.Fatalf("log = %q", errOut.String())
	}
}
