package randomgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
)

type RandomGenerator struct{}

func NewRandomGenerator() contract.IRandomGenerator {
	return &RandomGenerator{}
}

var _ (contract.IRandomGenerator) = (*RandomGenerator)(nil)

func (rg *RandomGenerator) GenerateRandomToken(n int) (string, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)

	if err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(b)

	return token, nil
}

// GenerateNumericCode draws each digit uniformly from crypto/rand; leading zeros are kept.
func (rg *RandomGenerator) GenerateNumericCode(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate code digit: %w", err)
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}
