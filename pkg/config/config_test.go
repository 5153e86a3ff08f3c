package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, CSV(" kafka:9092, ,kafka2:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_STR", "value")
	t.Setenv("STOREFRONT_TEST_INT", "not-a-number")
	t.Setenv("STOREFRONT_TEST_DUR", "45s")

	assert.Equal(t, "value", EnvDefault("STOREFRONT_TEST_STR", "def"))
	assert.Equal(t, "def", EnvDefault("STOREFRONT_TEST_MISSING", "def"))
	assert.Equal(t, 8080, EnvIntDefault("STOREFRONT_TEST_INT", 8080))
	assert.Equal(t, 45*time.Second, EnvDurationDefault("STOREFRONT_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, EnvDurationDefault("STOREFRONT_TEST_MISSING", time.Second))
}
