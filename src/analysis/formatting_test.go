package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestFormatterScaling(t *testing.T) {
	f := Formatter{MissingAsZero: true}

	assert.Equal(t, "2.50", f.Billions(f64(2_500_000_000)))
	assert.Equal(t, "750.00", f.Millions(f64(750_000_000)))
	assert.Equal(t, "12.3", f.Ratio(f64(12.34)))
	assert.Equal(t, "0.01", f.Billions(f64(12_000_000)))
	assert.Equal(t, "-3.00", f.Millions(f64(-3_000_000)))
}

func TestFormatterMissingValues(t *testing.T) {
	t.Run("zero substitution", func(t *testing.T) {
		f := Formatter{MissingAsZero: true}
		assert.Equal(t, "0.00", f.Billions(nil))
		assert.Equal(t, "0.00", f.Millions(nil))
		assert.Equal(t, "0.0", f.Ratio(nil))
	})

	t.Run("not available", func(t *testing.T) {
		f := Formatter{}
		assert.Nil(t, f.Billions(nil))
		assert.Nil(t, f.Millions(nil))
		assert.Nil(t, f.Ratio(nil))
	})
}

func TestFormatterRoundsHalfAwayFromZero(t *testing.T) {
	f := Formatter{MissingAsZero: true}

	// Halves are decided on the decimal quotient, not on its binary approximation.
	assert.Equal(t, "1.01", f.Billions(f64(1_005_000_000)))
	assert.Equal(t, "2.3", f.Ratio(f64(2.25)))
	assert.Equal(t, "-0.02", f.Millions(f64(-15_000)))
}
