package repositories

import (
	"database/sql"
	"fmt"

	"dermacare/internal/models"
)

type ScanRepository interface {
	Create(scan *models.Scan) error
	GetByID(id string) (*models.Scan, error)
	ListByUser(userID, limit, offset int) ([]*models.Scan, error)
	Delete(id string) error
}

type scanRepository struct {
	DB *sql.DB
}

func NewScanRepository(db *sql.DB) ScanRepository {
	return &scanRepository{DB: db}
}

func (r *scanRepository) Create(scan *models.Scan) error {
	const q = `
		INSERT INTO scans
			(id, user_id, diagnosis, label, confidence, severity, advice, is_safe, image_path, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err := r.DB.Exec(q,
		scan.ID, scan.UserID, scan.Diagnosis, scan.Label, scan.Confidence,
		scan.Severity, scan.Advice, scan.IsSafe, nullStr(scan.ImagePath), scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("scan create: %w", err)
	}
	return nil
}

func (r *scanRepository) GetByID(id string) (*models.Scan, error) {
	const q = `
		SELECT id, user_id, diagnosis, label, confidence, severity, advice, is_safe, image_path, created_at
		FROM scans
		WHERE id = $1
	`
	s := &models.Scan{}
	var imagePath sql.NullString
	err := r.DB.QueryRow(q, id).Scan(
		&s.ID, &s.UserID, &s.Diagnosis, &s.Label, &s.Confidence,
		&s.Severity, &s.Advice, &s.IsSafe, &imagePath, &s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan get: %w", err)
	}
	s.ImagePath = imagePath.String
	return s, nil
}

func (r *scanRepository) ListByUser(userID, limit, offset int) ([]*models.Scan, error) {
	const q = `
		SELECT id, user_id, diagnosis, label, confidence, severity, advice, is_safe, image_path, created_at
		FROM scans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(q, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("scan list: %w", err)
	}
	defer rows.Close()

	var res []*models.Scan
	for rows.Next() {
		s := &models.Scan{}
		var imagePath sql.NullString
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Diagnosis, &s.Label, &s.Confidence,
			&s.Severity, &s.Advice, &s.IsSafe, &imagePath, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan list scan: %w", err)
		}
		s.ImagePath = imagePath.String
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *scanRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM scans WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("scan delete: %w", err)
	}
	return nil
}
