package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("Missing key falls back to default", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvString("MCV_TEST_MISSING_KEY", "fallback"))
		assert.Equal(t, 7, GetEnvInt("MCV_TEST_MISSING_KEY", 7))
	})

	t.Run("Present keys are parsed", func(t *testing.T) {
		t.Setenv("MCV_TEST_INT", "42")
		t.Setenv("MCV_TEST_INT64", "9000000000")
		t.Setenv("MCV_TEST_BOOL", "true")

		assert.Equal(t, 42, GetEnvInt("MCV_TEST_INT", 1))
		assert.Equal(t, int64(9000000000), GetEnvInt64("MCV_TEST_INT64", 1))
		assert.True(t, GetEnvBool("MCV_TEST_BOOL", false))
	})

	t.Run("Unparseable values fall back to default", func(t *testing.T) {
		t.Setenv("MCV_TEST_BAD_INT", "forty-two")
		assert.Equal(t, 3, GetEnvInt("MCV_TEST_BAD_INT", 3))
	})
}
