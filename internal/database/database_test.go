package database

import (
	"testing"

	"github.com/dbsmedya/godepend/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.DatabaseConfig
		expected string
	}{
		{
			name: "basic DSN",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "shop",
				TLS:      "preferred",
			},
			expected: "root:secret@tcp(localhost:3306)/shop?parseTime=true&tls=preferred",
		},
		{
			name: "DSN without database",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				TLS:      "preferred",
			},
			expected: "root:secret@tcp(localhost:3306)/?parseTime=true&tls=preferred",
		},
		{
			name: "DSN with TLS disabled",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "shop",
				TLS:      "disable",
			},
			expected: "root:secret@tcp(localhost:3306)/shop?parseTime=true&tls=false",
		},
		{
			name: "DSN with TLS required",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "shop",
				TLS:      "required",
			},
			expected: "root:secret@tcp(localhost:3306)/shop?parseTime=true&tls=true",
		},
		{
			name: "DSN with empty TLS defaults to preferred",
			cfg: &config.DatabaseConfig{
				Host:     "db.internal",
				Port:     3307,
				User:     "reader",
				Password: "pw",
				Database: "shop",
			},
			expected: "reader:pw@tcp(db.internal:3307)/shop?parseTime=true&tls=preferred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := BuildDSN(tt.cfg)
			if dsn != tt.expected {
				t.Errorf("BuildDSN() = %s, expected %s", dsn, tt.expected)
			}
		})
	}
}

func TestNewManager(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("expected manager, got nil")
	}
	if m.Server != nil {
		t.Error("expected no connection before Connect")
	}
}

func TestCloseWithoutConnect(t *testing.T) {
	m := NewManager(config.DefaultConfig())

	if err := m.Close(); err != nil {
		t.Errorf("expected Close to be safe before Connect, got %v", err)
	}
}
