package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHECKLIST_CONFIG_DIR", dir)

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Dir != dir || cfg.Store.Backend != BackendSQLite {
		t.Fatalf("store=%+v", cfg.Store)
	}
	if cfg.Drag.ActivationDelay != 50*time.Millisecond {
		t.Fatalf("activation delay=%s", cfg.Drag.ActivationDelay)
	}
	if cfg.List.RowHeight != 2 || cfg.Settings.RowHeight != 1 {
		t.Fatalf("row heights=%d/%d", cfg.List.RowHeight, cfg.Settings.RowHeight)
	}
	if cfg.Save.Debounce != 200*time.Millisecond {
		t.Fatalf("debounce=%s", cfg.Save.Debounce)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHECKLIST_CONFIG_DIR", dir)
	yaml := "store:\n  backend: diskv\ndrag:\n  activation_delay: 120ms\nlist:\n  row_height: 3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHECKLIST_LIST_ROW_HEIGHT", "4")

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Backend != BackendDiskv {
		t.Fatalf("backend=%q", cfg.Store.Backend)
	}
	if cfg.Drag.ActivationDelay != 120*time.Millisecond {
		t.Fatalf("activation delay=%s", cfg.Drag.ActivationDelay)
	}
	if cfg.List.RowHeight != 4 {
		t.Fatalf("env did not override file: row_height=%d", cfg.List.RowHeight)
	}
}

func TestLoadConfig_ExpandsHome(t *testing.T) {
	t.Setenv("CHECKLIST_CONFIG_DIR", t.TempDir())
	v := viper.New()
	v.Set("store.dir", "~/lists")

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !filepath.IsAbs(cfg.Store.Dir) || filepath.Base(cfg.Store.Dir) != "lists" {
		t.Fatalf("dir=%q", cfg.Store.Dir)
	}
}
