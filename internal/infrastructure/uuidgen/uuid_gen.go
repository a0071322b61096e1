package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
)

// Generator produces random (v4) ids for users, workshops, reviews and tokens.
type Generator struct{}

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

func (g *Generator) NewUUID() string {
	return uuid.NewString()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
