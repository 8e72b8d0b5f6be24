package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validInterview() Interview {
	return Interview{
		ApplicationID: "a1",
		Company:       "Acme",
		ScheduledAt:   time.Date(2026, 9, 3, 14, 30, 0, 0, time.UTC),
		Type:          "Technical",
	}
}

func TestInterview_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		iv := validInterview()
		assert.NoError(t, iv.Validate())
	})

	t.Run("missing application", func(t *testing.T) {
		iv := validInterview()
		iv.ApplicationID = ""
		assert.Error(t, iv.Validate())
	})

	t.Run("missing time", func(t *testing.T) {
		iv := validInterview()
		iv.ScheduledAt = time.Time{}
		assert.Error(t, iv.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		iv := validInterview()
		iv.Type = "Trial by combat"
		assert.Error(t, iv.Validate())
	})

	t.Run("stage optional but validated when set", func(t *testing.T) {
		iv := validInterview()
		iv.Stage = ""
		assert.NoError(t, iv.Validate())

		iv.Stage = "Round 99"
		assert.Error(t, iv.Validate())
	})
}

func TestIsValidInterviewType(t *testing.T) {
	assert.True(t, IsValidInterviewType("Technical"))
	assert.True(t, IsValidInterviewType("technical"))
	assert.False(t, IsValidInterviewType(""))
	assert.False(t, IsValidInterviewType("Casual chat"))
}

func TestIsValidInterviewStage(t *testing.T) {
	assert.True(t, IsValidInterviewStage("Final Round"))
	assert.True(t, IsValidInterviewStage("round 1"))
	assert.False(t, IsValidInterviewStage("Round 7"))
}
