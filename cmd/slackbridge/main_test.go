package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "slackbridge dev") {
		t.Errorf("output = %q, want to contain version line", buf.String())
	}
}

func TestRootCmd_HasServe(t *testing.T) {
	cmd := newRootCmd()
	for _, sub := range cmd.Commands() {
		if sub.Use == "serve" {
			return
		}
	}
	t.Error("root command is missing the serve subcommand")
}

func TestServeCmd_FailsWithoutConfig(t *testing.T) {
	// With a clean environment the serve command must refuse to start.
	t.Setenv("SLACK_CLIENT_ID", "")
	t.Setenv("SLACK_CLIENT_SECRET", "")
	t.Setenv("SLACK_APP_ID", "")
	t.Setenv("SLACK_SIGNING_SECRET", "")
	t.Setenv("DB_USERNAME", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_NAME", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected serve to fail without configuration")
	}
}
