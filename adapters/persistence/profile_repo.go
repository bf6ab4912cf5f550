package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

// postgresProfileRepo stores each profile as one JSONB document per owner,
// with the owner id and username lifted into columns for lookups. Save is a
// full document replace, never a partial patch.
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) scanProfile(row pgx.Row, identifier string) (*profile.Profile, error) {
	var (
		ownerID  uuid.UUID
		username string
		docBytes []byte
	)
	if err := row.Scan(&ownerID, &username, &docBytes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", identifier)
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	p := &profile.Profile{}
	if err := json.Unmarshal(docBytes, p); err != nil {
		r.logger.Warn("Failed to unmarshal profile document", zap.String("owner_id", ownerID.String()), zap.Error(err))
		p = profile.Default(ownerID, username, "")
	}
	p.OwnerID = ownerID
	p.Username = username
	return p, nil
}

func (r *postgresProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT owner_id, username, document
		FROM profiles
		WHERE owner_id = $1
	`
	return r.scanProfile(r.db.QueryRow(ctx, query, ownerID), ownerID.String())
}

func (r *postgresProfileRepo) GetByUsername(ctx context.Context, username string) (*profile.Profile, error) {
	query := `
		SELECT owner_id, username, document
		FROM profiles
		WHERE username = $1
	`
	return r.scanProfile(r.db.QueryRow(ctx, query, username), username)
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	docBytes, err := json.Marshal(p)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile document", err)
	}

	query := `
		INSERT INTO profiles (owner_id, username, document, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.Exec(ctx, query, p.OwnerID, p.Username, docBytes, p.UpdatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewConflict("profile", "username", p.Username)
		}
		return apperror.NewInternal("failed to create profile", err)
	}
	return nil
}

// Save overwrites the whole document. The caller sends its full in-memory
// snapshot; anything missing from it is gone after this call.
func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	docBytes, err := json.Marshal(p)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile document", err)
	}

	query := `
		UPDATE profiles SET document = $2, updated_at = $3
		WHERE owner_id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, p.OwnerID, docBytes, p.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", p.OwnerID.String())
	}
	return nil
}
