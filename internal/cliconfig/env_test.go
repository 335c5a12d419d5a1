package cliconfig

import "testing"

func TestGetControlURLDefault(t *testing.T) {
	t.Setenv(EnvAddr, "")
	if got := GetControlURL(); got != "http://localhost:4270" {
		t.Errorf("GetControlURL() = %q, want default", got)
	}
}

func TestGetControlURLFromEnv(t *testing.T) {
	t.Setenv(EnvAddr, "http://10.0.0.7:9999")
	if got := GetControlURL(); got != "http://10.0.0.7:9999" {
		t.Errorf("GetControlURL() = %q", got)
	}
}

func TestGetVerboseFromEnv(t *testing.T) {
	cases := map[string]bool{"true": true, "1": true, "yes": true, "": false, "no": false}
	for val, want := range cases {
		t.Setenv(EnvVerbose, val)
		if got := GetVerboseFromEnv(); got != want {
			t.Errorf("GetVerboseFromEnv() with %q = %v, want %v", val, got, want)
		}
	}
}
