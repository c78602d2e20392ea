package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesOnlyGiven(t *testing.T) {
	cfg := &Config{
		ServerEndpointAddr: "127.0.0.1:50051",
		TokenFile:          "/home/u/.config/accounts/token",
		RequestTimeout:     5 * time.Second,
	}

	parseFlags(cfg, []string{"-t", "/tmp/token", "me"})

	want := &Config{
		ServerEndpointAddr: "127.0.0.1:50051",
		TokenFile:          "/tmp/token",
		RequestTimeout:     5 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags_AllFlagsAroundCommand(t *testing.T) {
	cfg := &Config{}

	parseFlags(cfg, []string{"-a", "10.0.0.1:7000", "delete", "abc", "-i", "30", "-t=/tmp/t"})

	want := &Config{
		ServerEndpointAddr: "10.0.0.1:7000",
		TokenFile:          "/tmp/t",
		RequestTimeout:     30 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags_BadTimeoutPanics(t *testing.T) {
	assert.Panics(t, func() { parseFlags(&Config{}, []string{"-i", "soon"}) })
}
