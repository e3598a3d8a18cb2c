package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFingerprintStable(t *testing.T) {
	a := ProductFingerprint("CPU", "6 Core", "i5-14400F", "Intel Core i5-14400F")
	b := ProductFingerprint(" cpu ", "6 CORE", "I5-14400F", "intel core i5-14400f")
	assert.Equal(t, a, b, "case and whitespace must not change identity")
	assert.Len(t, a, 40)
}

func TestProductFingerprintDistinguishes(t *testing.T) {
	a := ProductFingerprint("CPU", "", "i5-14400F", "Intel Core i5-14400F")
	b := ProductFingerprint("CPU", "", "i5-14600K", "Intel Core i5-14600K")
	c := ProductFingerprint("GPU", "", "i5-14400F", "Intel Core i5-14400F")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c, "same name in another category is a different row")
}
