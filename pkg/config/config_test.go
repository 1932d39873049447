package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigSeedDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "admin", cfg.Seed.AdminUsername)
	assert.Equal(t, "admin12345", cfg.Seed.AdminPassword)
	assert.Equal(t, "admin@example.com", cfg.Seed.AdminEmail)
}

func TestConfigSeedFromEnv(t *testing.T) {
	t.Setenv("SEED_ADMIN_USERNAME", "root")
	t.Setenv("SEED_ADMIN_PASSWORD", "s3cret-enough")
	t.Setenv("SEED_ADMIN_EMAIL", "root@corp.example")

	cfg := New()

	assert.Equal(t, "root", cfg.Seed.AdminUsername)
	assert.Equal(t, "s3cret-enough", cfg.Seed.AdminPassword)
	assert.Equal(t, "root@corp.example", cfg.Seed.AdminEmail)
}
