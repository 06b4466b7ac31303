package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dermacare/internal/models"
)

// ErrEmailTaken is returned when the conditional insert hits the email
// uniqueness constraint.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	UpdateProfile(id int, p *models.ProfileUpdate) error
	Delete(id int) error

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
	GetByRefreshToken(token string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, email, full_name, password_hash,
	phone, email_verified, phone_verified,
	age, gender, skin_type,
	city, state, country, pincode,
	is_active, is_staff, date_joined,
	refresh_token, refresh_expires_at, refresh_revoked
`

// Create inserts the account atomically with the uniqueness check: a single
// conditional insert, never check-then-insert. Conflict => ErrEmailTaken.
func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			email, full_name, password_hash,
			phone, email_verified, phone_verified,
			age, gender, skin_type,
			city, state, country, pincode,
			is_active, is_staff, date_joined
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRow(q,
		user.Email,
		user.FullName,
		user.PasswordHash,
		nullStr(user.Phone),
		user.EmailVerified,
		user.PhoneVerified,
		nullInt(user.Age),
		nullStr(user.Gender),
		nullStr(user.SkinType),
		nullStr(user.City),
		nullStr(user.State),
		nullStr(user.Country),
		nullStr(user.Pincode),
		user.IsActive,
		user.IsStaff,
		user.DateJoined,
	).Scan(&user.ID)
	if err == sql.ErrNoRows {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user email exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UpdateProfile(id int, p *models.ProfileUpdate) error {
	const q = `
		UPDATE users
		SET full_name=$1, phone=$2, age=$3, gender=$4, skin_type=$5,
		    city=$6, state=$7, country=$8, pincode=$9
		WHERE id=$10
	`
	_, err := r.DB.Exec(q,
		p.FullName, nullStr(p.Phone), nullInt(p.Age), nullStr(p.Gender), nullStr(p.SkinType),
		nullStr(p.City), nullStr(p.State), nullStr(p.Country), nullStr(p.Pincode), id,
	)
	if err != nil {
		return fmt.Errorf("user update profile: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}

// ===== refresh helpers =====

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	q := `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE refresh_token=$3
		RETURNING ` + userColumns
	return r.scanOne(r.DB.QueryRow(q, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) ClearRefresh(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET refresh_token=NULL, refresh_expires_at=NULL, refresh_revoked=TRUE
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE refresh_token = $1`
	return r.scanOne(r.DB.QueryRow(q, token))
}

// ===== scanning =====

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		phone    sql.NullString
		age      sql.NullInt64
		gender   sql.NullString
		skinType sql.NullString
		city     sql.NullString
		state    sql.NullString
		country  sql.NullString
		pincode  sql.NullString
		rt       sql.NullString
		rte      sql.NullTime
		rr       sql.NullBool
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash,
		&phone, &u.EmailVerified, &u.PhoneVerified,
		&age, &gender, &skinType,
		&city, &state, &country, &pincode,
		&u.IsActive, &u.IsStaff, &u.DateJoined,
		&rt, &rte, &rr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user scan: %w", err)
	}
	u.Phone = phone.String
	if age.Valid {
		u.Age = int(age.Int64)
	}
	u.Gender = gender.String
	u.SkinType = skinType.String
	u.City = city.String
	u.State = state.String
	u.Country = country.String
	u.Pincode = pincode.String
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	if rr.Valid {
		u.RefreshRevoked = rr.Bool
	}
	return u, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
