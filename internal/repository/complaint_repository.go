package repository

import (
	"database/sql"

	"complaint-service/internal/model"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type ComplaintRepository struct {
	db *sql.DB
}

func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(complaint *model.Complaint) error {
	query := `
		INSERT INTO complaints (id, waste_type, description, filed_by, pickup_date, pickup_time, reg_date, is_resolved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(query,
		complaint.ID,
		complaint.WasteType,
		complaint.Description,
		complaint.FiledBy,
		complaint.PickupDate,
		complaint.PickupTime,
		complaint.RegDate,
		complaint.IsResolved,
	)
	return err
}

func (r *ComplaintRepository) FindAll() ([]model.Complaint, error) {
	query := `
		SELECT id, waste_type, description, filed_by, pickup_date, pickup_time, reg_date, is_resolved
		FROM complaints
		ORDER BY reg_date DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanComplaints(rows)
}

func (r *ComplaintRepository) FindByFiler(filedBy uuid.UUID) ([]model.Complaint, error) {
	query := `
		SELECT id, waste_type, description, filed_by, pickup_date, pickup_time, reg_date, is_resolved
		FROM complaints
		WHERE filed_by = $1
		ORDER BY reg_date DESC
	`
	rows, err := r.db.Query(query, filedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanComplaints(rows)
}

// MarkResolved sets is_resolved and returns the updated record. A nil record
// with a nil error means no complaint with that id exists. Resolving an
// already-resolved complaint is a no-op that still returns the record.
func (r *ComplaintRepository) MarkResolved(id uuid.UUID) (*model.Complaint, error) {
	query := `
		UPDATE complaints SET is_resolved = TRUE
		WHERE id = $1
		RETURNING id, waste_type, description, filed_by, pickup_date, pickup_time, reg_date, is_resolved
	`
	complaint := &model.Complaint{}
	var pickupDate sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&complaint.ID,
		&complaint.WasteType,
		&complaint.Description,
		&complaint.FiledBy,
		&pickupDate,
		&complaint.PickupTime,
		&complaint.RegDate,
		&complaint.IsResolved,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if pickupDate.Valid {
		complaint.PickupDate = &pickupDate.String
	}

	return complaint, nil
}

func scanComplaints(rows *sql.Rows) ([]model.Complaint, error) {
	var complaints []model.Complaint
	for rows.Next() {
		var complaint model.Complaint
		var pickupDate sql.NullString

		err := rows.Scan(
			&complaint.ID,
			&complaint.WasteType,
			&complaint.Description,
			&complaint.FiledBy,
			&pickupDate,
			&complaint.PickupTime,
			&complaint.RegDate,
			&complaint.IsResolved,
		)
		if err != nil {
			return nil, err
		}

		if pickupDate.Valid {
			complaint.PickupDate = &pickupDate.String
		}

		complaints = append(complaints, complaint)
	}

	return complaints, rows.Err()
}
