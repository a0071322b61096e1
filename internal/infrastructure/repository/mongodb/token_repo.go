package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ---------- DTO layer ------------------
type tokenDTO struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	TokenType string    `bson:"token_type"`
	TokenHash string    `bson:"token_hash"`
	Verifier  string    `bson:"verifier"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Revoke    bool      `bson:"revoke"`
}

func (t *tokenDTO) ToEntity() *entity.Token {
	return &entity.Token{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: entity.TokenType(t.TokenType),
		Verifier:  t.Verifier,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,
	}
}

func FromTokenEntityToDTO(t *entity.Token) *tokenDTO {
	return &tokenDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: string(t.TokenType),
		Verifier:  t.Verifier,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,
	}
}

// ---------------------------------------

// TokenRepository stores password reset tokens; expired ones are removed by a TTL index on expires_at.
type TokenRepository struct {
	Collection *mongo.Collection
}

// check in compile time if TokenRepository implements ITokenRepository
var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(colln *mongo.Collection) *TokenRepository {
	return &TokenRepository{
		Collection: colln,
	}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	_, err := r.Collection.InsertOne(ctx, FromTokenEntityToDTO(token))
	return err
}

func (r *TokenRepository) GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error) {
	var dto tokenDTO
	err := r.Collection.FindOne(ctx, bson.M{"verifier": verifier}).Decode(&dto)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("token %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	return dto.ToEntity(), nil
}

// RevokeToken marks a token as revoked by its ID
func (r *TokenRepository) RevokeToken(ctx context.Context, id string) error {
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"revoke": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("token %w", domainerrors.ErrNotFound)
	}
	return nil
}

// RevokeAllTokensForUser revokes every live token of the given type.
func (r *TokenRepository) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "token_type", Value: string(tokenType)},
		{Key: "revoke", Value: false},
	}
	update := bson.D{
		{Key: "$set", Value: bson.M{"revoke": true}},
	}
	_, err := r.Collection.UpdateMany(ctx, filter, update)
	return err
}
