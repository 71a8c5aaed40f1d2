package config

import (
	"fmt"
	"time"
)

// minimumPasswordLength is the lowest MIN_PASSWORD_LENGTH accepted
const minimumPasswordLength = 4

type Security struct {
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"6h"`
	MinPasswordLength      int           `env:"MIN_PASSWORD_LENGTH" envDefault:"4"`
	MaxBodyBytes           int64         `env:"MAX_BODY_BYTES" envDefault:"2097152"` // 2 MiB
	AdminUser              string        `env:"ADMIN_USER" envDefault:"admin"`
	AdminPassword          string        `env:"ADMIN_PASSWORD"`
	LoginAttemptsPerMinute int           `env:"LOGIN_ATTEMPTS_PER_MINUTE" envDefault:"10"`
	LoginBurst             int           `env:"LOGIN_BURST" envDefault:"5"`
}

var _ SecurityConfig = Security{}

func (s Security) validate() error {
	if s.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", s.SessionTTL)
	}
	if s.MinPasswordLength < minimumPasswordLength {
		return fmt.Errorf("MIN_PASSWORD_LENGTH must be at least %d, got %d", minimumPasswordLength, s.MinPasswordLength)
	}
	return nil
}

// GetSessionTTL is the flat lifetime of an admin session, counted from login.
func (s Security) GetSessionTTL() time.Duration {
	return s.SessionTTL
}

func (s Security) GetMinPasswordLength() int {
	return s.MinPasswordLength
}

func (s Security) GetMaxBodyBytes() int64 {
	return s.MaxBodyBytes
}

func (s Security) GetSystemAdminUser() string {
	return s.AdminUser
}

// GetSystemAdminPassword is empty when the bootstrap password should be generated.
func (s Security) GetSystemAdminPassword() string {
	return s.AdminPassword
}

// GetLoginAttemptsPerMinute is the sustained login rate per client address; 0 disables throttling.
func (s Security) GetLoginAttemptsPerMinute() int {
	return s.LoginAttemptsPerMinute
}

func (s Security) GetLoginBurst() int {
	return s.LoginBurst
}
