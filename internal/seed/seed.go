// Package seed creates the default data a fresh deployment needs.
package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/tnpcell/portal/internal/app/models"
	appRepos "github.com/tnpcell/portal/internal/app/repositories"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/auth"
)

const (
	defaultAdminEmail = "tnp@college.edu"
	defaultAdminName  = "Placement Cell"
)

// CreateDefaultData creates the placement-cell admin account if no account
// with the default email exists. The password comes from ADMIN_PASSWORD so
// a credential never lives in the repository.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	adminRepo := appRepos.NewAdminRepository(dbPool)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}

	exists, err := adminRepo.EmailExists(ctx, email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return err
	}
	if exists {
		lgr.Debug().Str("email", email).Msg("Default admin account already present")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.Admin{
		Email:    email,
		Password: hashed,
		Name:     defaultAdminName,
	}
	if _, err := adminRepo.Create(ctx, admin); err != nil {
		// A concurrent boot may have created it first.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", email).Msg("Default admin account created")
	return nil
}
