package config

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("YARDFLOW_TEST_KEY", "set")
	if got := getEnv("YARDFLOW_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("Expected env value, got %q", got)
	}
	if got := getEnv("YARDFLOW_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}
}

// Feed URLs carry query strings with special characters; make sure godotenv
// preserves them through single-quoted values.
func TestGodotenvQuoting(t *testing.T) {
	content := `FEED_URL='https://example.com/export?format=csv&gid="0"'`
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `https://example.com/export?format=csv&gid="0"`
	if env["FEED_URL"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["FEED_URL"])
	}
}
