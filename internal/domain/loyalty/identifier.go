package loyalty

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Prefijos de identificadores legibles.
const (
	loyaltyIDPrefix  = "CUST"
	couponCodePrefix = "COUP"
	receiptPrefix    = "RCP"
)

// NextLoyaltyID genera el siguiente ID de fidelización: CUST001, CUST002...
// No verifica unicidad: el llamador debe leer el último número asignado dentro
// de la misma transacción que inserta, con el constraint UNIQUE como respaldo.
func NextLoyaltyID(lastAssigned int) string {
	return fmt.Sprintf("%s%03d", loyaltyIDPrefix, lastAssigned+1)
}

// LoyaltySequence extrae el sufijo numérico de un loyalty ID (CUST007 -> 7).
// Devuelve 0 para cadenas vacías o no parseables.
func LoyaltySequence(loyaltyID string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(loyaltyID, loyaltyIDPrefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextCouponCode genera el siguiente código de cupón: COUP-2024-003.
// Misma responsabilidad del llamador que NextLoyaltyID.
func NextCouponCode(lastAssigned, year int) string {
	return fmt.Sprintf("%s-%d-%03d", couponCodePrefix, year, lastAssigned+1)
}

// CouponSequence extrae el sufijo numérico de un código COUP-AAAA-NNN.
// El "último" código del que se parte es el máximo lexicográfico de la tabla,
// por lo que al cambiar de año la secuencia reinicia desde el código más
// reciente del año nuevo.
func CouponSequence(code string) int {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return 0
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var pinPattern = regexp.MustCompile(`^[0-9]{8}$`)

// ValidPIN indica si s cumple la regla de PIN: exactamente 8 dígitos decimales.
// Toda entrada de PIN (API y comandos) debe pasar por aquí antes de hashear.
func ValidPIN(s string) bool {
	return pinPattern.MatchString(s)
}

// RandomPIN genera un PIN de exactamente 8 dígitos decimales, uniforme en
// [00000000, 99999999], con ceros a la izquierda preservados. Solo debe
// exponerse en la respuesta de creación del cliente; después únicamente
// persiste su hash.
func RandomPIN() string {
	n, err := rand.Int(rand.Reader, big.NewInt(100_000_000))
	if err != nil {
		// Sin entropía del sistema operativo no hay credencial segura posible.
		panic("loyalty: generar PIN: " + err.Error())
	}
	return fmt.Sprintf("%08d", n)
}

// RandomReceiptNumber genera un número de recibo RCP-<millis>-<0..999>,
// usado solo cuando el llamador no provee uno.
func RandomReceiptNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		panic("loyalty: generar recibo: " + err.Error())
	}
	return fmt.Sprintf("%s-%d-%d", receiptPrefix, time.Now().UnixMilli(), n)
}
