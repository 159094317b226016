package loyalty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/loyalty-api/internal/domain/loyalty"
)

func TestNextLoyaltyID_ConPaddingDeTresDigitos(t *testing.T) {
	assert.Equal(t, "CUST001", loyalty.NextLoyaltyID(0))
	assert.Equal(t, "CUST003", loyalty.NextLoyaltyID(2))
	assert.Equal(t, "CUST100", loyalty.NextLoyaltyID(99))
	// Por encima de 999 el padding deja de aplicar pero el ID sigue siendo único.
	assert.Equal(t, "CUST1000", loyalty.NextLoyaltyID(999))
}

func TestLoyaltySequence_InversaDeNextLoyaltyID(t *testing.T) {
	assert.Equal(t, 7, loyalty.LoyaltySequence("CUST007"))
	assert.Equal(t, 123, loyalty.LoyaltySequence("CUST123"))
	assert.Equal(t, 0, loyalty.LoyaltySequence(""))
	assert.Equal(t, 0, loyalty.LoyaltySequence("no-es-un-id"))
}

func TestNextCouponCode_FormatoConAnio(t *testing.T) {
	assert.Equal(t, "COUP-2024-003", loyalty.NextCouponCode(2, 2024))
	assert.Equal(t, "COUP-2025-001", loyalty.NextCouponCode(0, 2025))
}

func TestCouponSequence_ParseaSufijo(t *testing.T) {
	assert.Equal(t, 3, loyalty.CouponSequence("COUP-2024-003"))
	assert.Equal(t, 99, loyalty.CouponSequence("COUP-2024-099"))
	assert.Equal(t, 0, loyalty.CouponSequence(""))
	assert.Equal(t, 0, loyalty.CouponSequence("COUP-2024"))
}

// Comportamiento heredado al cruzar de año: el "último" código se toma por
// orden lexicográfico del código completo, por lo que COUP-2025-001 gana a
// COUP-2024-099 y la secuencia reinicia en el año nuevo. El UNIQUE de la
// tabla respalda cualquier colisión.
func TestCouponSequence_ReinicioDeAnio(t *testing.T) {
	last := "COUP-2025-001" // max lexicográfico frente a COUP-2024-099
	assert.Equal(t, "COUP-2025-002", loyalty.NextCouponCode(loyalty.CouponSequence(last), 2025))
}

func TestValidPIN(t *testing.T) {
	for _, ok := range []string{"12345678", "00000000", "00123456"} {
		assert.True(t, loyalty.ValidPIN(ok), "PIN %q debe aceptarse", ok)
	}
	for _, bad := range []string{"", "1234567", "123456789", "abcdefgh", "1234567a", " 1234567"} {
		assert.False(t, loyalty.ValidPIN(bad), "PIN %q debe rechazarse", bad)
	}
}

func TestValidPIN_AceptaLosGenerados(t *testing.T) {
	for i := 0; i < 20; i++ {
		pin := loyalty.RandomPIN()
		assert.True(t, loyalty.ValidPIN(pin), "todo PIN generado debe ser válido: %q", pin)
	}
}

func TestRandomPIN_OchoDigitos(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pin := loyalty.RandomPIN()
		require.Len(t, pin, 8, "el PIN debe tener exactamente 8 caracteres")
		for _, r := range pin {
			assert.True(t, r >= '0' && r <= '9', "el PIN solo contiene dígitos: %q", pin)
		}
		seen[pin] = true
	}
	// 50 PINs idénticos indicaría una fuente de aleatoriedad rota.
	assert.Greater(t, len(seen), 1)
}

func TestRandomReceiptNumber_Formato(t *testing.T) {
	rcp := loyalty.RandomReceiptNumber()
	parts := strings.Split(rcp, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "RCP", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.NotEmpty(t, parts[2])
}
