package repository

import (
	"database/sql"

	"github.com/google/uuid"
)

// AdminRepository reads the externally managed administrator allow-list.
type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// IsAdmin reports whether an admin record with the given id exists.
// Absence is the negative answer, not an error.
func (r *AdminRepository) IsAdmin(id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM admins WHERE id = $1)`
	var exists bool
	err := r.db.QueryRow(query, id).Scan(&exists)
	return exists, err
}
