package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvMidtransEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia")

	t.Setenv("MIDTRANS_ENV", "")
	LoadEnv()
	assert.Equal(t, "sandbox", MidtransEnv)

	t.Setenv("MIDTRANS_ENV", "Production")
	LoadEnv()
	assert.Equal(t, "production", MidtransEnv)

	// Nilai tak dikenal jatuh ke sandbox, jangan sampai nyasar ke production
	t.Setenv("MIDTRANS_ENV", "staging")
	LoadEnv()
	assert.Equal(t, "sandbox", MidtransEnv)
}

func TestLoadEnvGradingTotalMode(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia")

	t.Setenv("GRADING_TOTAL_MODE", "")
	LoadEnv()
	assert.Equal(t, "answered", GradingTotalMode)

	t.Setenv("GRADING_TOTAL_MODE", "ALL")
	LoadEnv()
	assert.Equal(t, "all", GradingTotalMode)

	t.Setenv("GRADING_TOTAL_MODE", "ngawur")
	LoadEnv()
	assert.Equal(t, "answered", GradingTotalMode)
}
