package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepError_StatusMessageContainsCodeAndBody(t *testing.T) {
	err := StatusError("publish", 500, "upstream exploded")

	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "upstream exploded")
	assert.Equal(t, KindStatus, KindOf(err))
}

func TestKindOf_WrappedStepError(t *testing.T) {
	err := fmt.Errorf("outer: %w", ConfigError("idea", "API key is required"))

	assert.Equal(t, KindConfig, KindOf(err))
}

func TestKindOf_PlainErrorIsTransport(t *testing.T) {
	assert.Equal(t, KindTransport, KindOf(errors.New("boom")))
}

func TestAsStepError(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	se := AsStepError("image", cause)

	assert.Equal(t, KindTransport, se.Kind)
	assert.ErrorIs(t, se, cause)
	assert.Equal(t, "image: dial tcp: refused", se.Error())

	empty := EmptyError("niche", "no trend data")
	assert.Same(t, empty, AsStepError("other", empty))
}

func TestSessionGating(t *testing.T) {
	var s Session
	assert.False(t, s.CanGenerateImage())
	assert.False(t, s.CanPublish())

	s.Idea = "idea"
	assert.True(t, s.CanGenerateImage())
	assert.False(t, s.CanPublish())

	s.ImageURL = "https://img.example.com/x.png"
	assert.True(t, s.CanPublish())

	s.Reset()
	assert.Equal(t, Session{}, s)
}

func TestCredentialsWithDefaults(t *testing.T) {
	form := Credentials{AIKey: "form-key"}
	env := Credentials{AIKey: "env-key", WebhookURL: "https://hooks.example.com/x"}

	got := form.WithDefaults(env)

	assert.Equal(t, "form-key", got.AIKey)
	assert.Equal(t, "https://hooks.example.com/x", got.WebhookURL)
	assert.False(t, got.HasPrintify())
}
