package rate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindowValidator_ParseDays_Errors(t *testing.T) {
	validator := NewWindowValidator(30, 90)

	for _, raw := range []string{"abc", "1.5", "7d"} {
		_, err := validator.ParseDays(raw)
		require.Equal(t, ErrDaysNotNumber, err, raw)
	}
	for _, raw := range []string{"0", "-3", "91"} {
		_, err := validator.ParseDays(raw)
		require.Equal(t, ErrDaysOutOfRange, err, raw)
	}
}

func TestWindowValidator_ParseDays_Success(t *testing.T) {
	validator := NewWindowValidator(30, 90)

	days, err := validator.ParseDays("")
	require.NoError(t, err)
	require.Equal(t, 30, days)

	days, err = validator.ParseDays(" 7 ")
	require.NoError(t, err)
	require.Equal(t, 7, days)

	days, err = validator.ParseDays("90")
	require.NoError(t, err)
	require.Equal(t, 90, days)
}

func TestNewWindowValidator_ClampsDefault(t *testing.T) {
	validator := NewWindowValidator(120, 90)
	days, err := validator.ParseDays("")
	require.NoError(t, err)
	require.Equal(t, 90, days)
	require.Equal(t, 90, validator.MaxDays())
}

func TestDays(t *testing.T) {
	require.Equal(t, 72*time.Hour, Days(3))
}
