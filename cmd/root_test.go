package cmd

import (
	"testing"
)

func TestDebugFlagDefaultFalse(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "false")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestServerFlagExists(t *testing.T) {
	flag := rootCmd.Flags().Lookup("server")
	if flag == nil {
		t.Fatal("--server flag not found")
	}
	if flag.DefValue != "" {
		t.Errorf("--server default = %q, want empty (use configured URL)", flag.DefValue)
	}
}

func TestInitLogging_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Quiet takes precedence; must not panic
	initLogging()
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "parley 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2026-08-28")
	got := versionTemplate()
	if got != "parley 1.2.3\n  commit: abc123\n  built:  2026-08-28\n" {
		t.Errorf("versionTemplate() with commit = %q", got)
	}
}
