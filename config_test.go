package main

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{port: 8080, maxNameLength: 16}, wantErr: false},
		{name: "port too low", cfg: Config{port: 0, maxNameLength: 16}, wantErr: true},
		{name: "port too high", cfg: Config{port: 70000, maxNameLength: 16}, wantErr: true},
		{name: "zero max name length", cfg: Config{port: 8080, maxNameLength: 0}, wantErr: true},
		{name: "mismatched tls", cfg: Config{port: 8080, maxNameLength: 16, tlsCert: "cert.pem"}, wantErr: true},
		{name: "negative countdown", cfg: Config{port: 8080, maxNameLength: 16, countdown: -1}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	plain := Config{}
	if plain.scheme() != "http" {
		t.Errorf("scheme() = %q, want http", plain.scheme())
	}

	tls := Config{tlsCert: "cert.pem", tlsKey: "key.pem"}
	if tls.scheme() != "https" {
		t.Errorf("scheme() = %q, want https", tls.scheme())
	}
}
