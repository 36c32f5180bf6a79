package config_test

import (
	"testing"

	"gotest.tools/assert"

	"github.com/itsfriday/itsfriday-controller/pkg/config"
)

func Test_InstanceName(t *testing.T) {
	t.Setenv("APP_POD_NAME", "")
	assert.Equal(t, config.InstanceName(), config.DefaultInstanceName)
	t.Setenv("APP_POD_NAME", "itsfriday-7d9c-x2x")
	assert.Equal(t, config.InstanceName(), "itsfriday-7d9c-x2x")
}

func Test_ExcludedDays(t *testing.T) {
	t.Setenv("MY_FRIDAY", "5,6")
	assert.Equal(t, config.ExcludedDays(), "5,6")
	t.Setenv("MY_FRIDAY", "")
	assert.Equal(t, config.ExcludedDays(), "")
}
