package utils

import (
	"testing"

	"dentalbot-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDNI(t *testing.T) {
	assert.True(t, IsValidDNI("123456"))
	assert.True(t, IsValidDNI("123456789012345"))

	assert.False(t, IsValidDNI("12345"))
	assert.False(t, IsValidDNI("1234567890123456"))
	assert.False(t, IsValidDNI("12345678a"))
	assert.False(t, IsValidDNI(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("maria@example.com"))
	assert.True(t, IsValidEmail("a.b+c@dominio.co"))

	assert.False(t, IsValidEmail("maria"))
	assert.False(t, IsValidEmail("maria@"))
	assert.False(t, IsValidEmail("maria@example"))
	assert.False(t, IsValidEmail("maria ejemplo@example.com"))
}

func TestValidateRegisterPatientRequest(t *testing.T) {
	t.Run("Accepts a complete request", func(t *testing.T) {
		err := ValidateStruct(&requests.RegisterPatientRequest{
			Name:           "Carlos Rodríguez",
			Phone:          "573001112233",
			DNI:            "987654321",
			Email:          "carlos@example.com",
			BirthDate:      "15/05/1990",
			ExpeditionDate: "20/06/2008",
		})
		assert.NoError(t, err)
	})

	t.Run("Accepts a skipped email", func(t *testing.T) {
		err := ValidateStruct(&requests.RegisterPatientRequest{
			Name:  "Carlos Rodríguez",
			Phone: "573001112233",
			DNI:   "987654321",
		})
		assert.NoError(t, err)
	})

	t.Run("Rejects short name and bad DNI", func(t *testing.T) {
		err := ValidateStruct(&requests.RegisterPatientRequest{
			Name:  "C",
			Phone: "573001112233",
			DNI:   "12a",
		})
		assert.Error(t, err)
	})
}
