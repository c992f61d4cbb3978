package service

import (
	"database/sql"

	"github.com/cryptotax-micro/backend/internal/database"
)

// SystemService handles system-level operations like health checks.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}
