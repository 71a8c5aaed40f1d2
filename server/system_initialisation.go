package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const generatedPasswordBytes = 12

// InitialiseSystem makes sure the admin identity exists. When no password is
// configured one is generated and printed once; it is never stored in plaintext.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	username := s.config.GetSystemAdminUser()

	exists, err := s.credentials.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to look up admin %q: %w", username, err)
	}
	if exists {
		log.Info().Str("username", username).Msg("Admin user already exists")
		return nil
	}

	generatedPassword, err := s.createSuperAdmin(ctx, username, s.config.GetSystemAdminPassword())
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap admin: %w", err)
	}

	log.Info().Str("username", username).Msg("Admin user created")
	if generatedPassword != "" {
		fmt.Printf("👤 Admin Credentials:\n")
		fmt.Printf("   Username:    %s\n", username)
		fmt.Printf("   Password:    %s     (⚠️ change it after the first login)\n", generatedPassword)
		fmt.Printf("   Login:       %s\n\n", RouteAdminLogin)
	}
	return nil
}

// createSuperAdmin provisions the admin identity, generating a password when none is given
func (s *Server) createSuperAdmin(ctx context.Context, username, password string) (generatedPassword string, err error) {
	if password == "" {
		generatedPassword, err = generateRandomString(generatedPasswordBytes)
		if err != nil {
			return "", fmt.Errorf("[server createSuperAdmin] failed to generate password: %w", err)
		}
		password = generatedPassword
	}

	if err := s.credentials.CreateIdentity(ctx, username, password); err != nil {
		return "", fmt.Errorf("[server createSuperAdmin] failed to create admin: %w", err)
	}
	return generatedPassword, nil
}
