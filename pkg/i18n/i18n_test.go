package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
)

func TestResolver_Match(t *testing.T) {
	r, err := i18n.NewResolver("en")
	require.NoError(t, err)

	tests := map[string]language.Tag{
		"":                       language.English,
		"es":                     language.Spanish,
		"es-MX,es;q=0.9":         language.Spanish,
		"fr-FR, es;q=0.5":        language.Spanish,
		"de":                     language.English,
		"not a header;;q=banana": language.English,
	}

	for header, want := range tests {
		t.Run(header, func(t *testing.T) {
			assert.Equal(t, want, r.Match(header))
		})
	}
}

func TestResolver_Message(t *testing.T) {
	r, err := i18n.NewResolver("en")
	require.NoError(t, err)

	assert.Equal(t, "Resource not found", r.Message(language.English, "error.resource_not_found"))
	assert.Equal(t, "Recurso no encontrado", r.Message(language.Spanish, "error.resource_not_found"))

	assert.Equal(t, "UomStatus with id '999' not found",
		r.Message(language.English, "crud.not.found", "UomStatus", "id", "999"))
	assert.Equal(t, "Uom con name 'Kilogram' ya existe",
		r.Message(language.Spanish, "crud.already.exists", "Uom", "name", "Kilogram"))

	assert.Equal(t, "Message not available", r.Message(language.English, "no.such.key"))
}

func TestNewResolver_DefaultLanguage(t *testing.T) {
	r, err := i18n.NewResolver("es")
	require.NoError(t, err)
	assert.Equal(t, language.Spanish, r.Match("de"))

	_, err = i18n.NewResolver("!!")
	assert.Error(t, err)
}
