package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render("welcome", map[string]any{"Email": "a@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "Sua conta foi criada com sucesso na Complet", subject)
	assert.Contains(t, text, "Complet")
	assert.Contains(t, html, "<b>Complet</b>")
	assert.Contains(t, html, "Olá!")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("promo", nil)
	assert.Error(t, err)
}
