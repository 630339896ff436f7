package validation

import (
	"testing"

	"learnhub/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	v := NewValidator()

	t.Run("accepts a generated ULID", func(t *testing.T) {
		assert.Nil(t, v.ValidateID("quiz_id", util.NewULID()))
	})

	t.Run("rejects empty", func(t *testing.T) {
		errs := v.ValidateID("quiz_id", "")
		assert.Len(t, errs, 1)
		assert.Equal(t, "quiz_id", errs[0].Field)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.NotNil(t, v.ValidateID("quiz_id", "short"))
	})

	t.Run("rejects excluded characters", func(t *testing.T) {
		assert.NotNil(t, v.ValidateID("quiz_id", "01ARZ3NDEKTSV4RRFFQ69G5FAI"))
	})
}

func TestNormalizeTrendRange(t *testing.T) {
	v := NewValidator()
	assert.Equal(t, "7d", v.NormalizeTrendRange("7d"))
	assert.Equal(t, "30d", v.NormalizeTrendRange("30d"))
	assert.Equal(t, "90d", v.NormalizeTrendRange("90d"))
	assert.Equal(t, "30d", v.NormalizeTrendRange("1y"))
	assert.Equal(t, "30d", v.NormalizeTrendRange(""))
}

func TestValidateLimit(t *testing.T) {
	v := NewValidator()
	assert.Nil(t, v.ValidateLimit(10, 50))
	assert.NotNil(t, v.ValidateLimit(51, 50))
	assert.NotNil(t, v.ValidateLimit(-1, 50))
}
