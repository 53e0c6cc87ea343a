package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func (s *Storage) CreateUser(u *models.User, passwordHash string) (string, error) {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, phone,
			street_address, city, county, eircode,
			subscription_status, hourly_rate, years_experience,
			languages, age_groups, available_days,
			garda_vetted, tusla_registered, first_aid_cert, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		RETURNING id`

	id := uuid.NewString()

	err := s.DB.QueryRow(query,
		id, u.Name, u.Email, passwordHash, u.Role, u.Phone,
		u.StreetAddress, u.City, u.County, u.Eircode,
		models.SubscriptionNone, u.HourlyRate, u.YearsExperience,
		u.Languages, u.AgeGroups, u.AvailableDays,
		u.GardaVetted, u.TuslaRegistered, u.FirstAidCert,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return "", storage.ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, string, error) {
	query := `
		SELECT id, name, email, password_hash, role, phone,
		       street_address, city, county, eircode,
		       subscription_status, hourly_rate, years_experience, rating,
		       languages, age_groups, available_days,
		       garda_vetted, tusla_registered, first_aid_cert, created_at
		FROM users
		WHERE email = $1`

	var u models.User
	var hash string
	err := s.DB.QueryRow(query, email).Scan(
		&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.Phone,
		&u.StreetAddress, &u.City, &u.County, &u.Eircode,
		&u.SubscriptionStatus, &u.HourlyRate, &u.YearsExperience, &u.Rating,
		&u.Languages, &u.AgeGroups, &u.AvailableDays,
		&u.GardaVetted, &u.TuslaRegistered, &u.FirstAidCert, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, hash, nil
}

func (s *Storage) GetUser(id string) (*models.User, error) {
	query := `
		SELECT id, name, email, role, phone,
		       street_address, city, county, eircode,
		       subscription_status, hourly_rate, years_experience, rating,
		       languages, age_groups, available_days,
		       garda_vetted, tusla_registered, first_aid_cert, created_at
		FROM users
		WHERE id = $1`

	var u models.User
	err := s.DB.QueryRow(query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone,
		&u.StreetAddress, &u.City, &u.County, &u.Eircode,
		&u.SubscriptionStatus, &u.HourlyRate, &u.YearsExperience, &u.Rating,
		&u.Languages, &u.AgeGroups, &u.AvailableDays,
		&u.GardaVetted, &u.TuslaRegistered, &u.FirstAidCert, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

type UserFilter struct {
	Role   string
	Search string
	Params pagination.Params
}

func (s *Storage) ListUsers(f UserFilter) ([]models.User, int64, error) {
	args := []any{}
	conds := []string{"1=1"}

	if f.Role != "" {
		args = append(args, f.Role)
		conds = append(conds, "role = $"+itoa(len(args)))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		p := "%" + q + "%"
		args = append(args, p, p)
		conds = append(conds, "(name ILIKE $"+itoa(len(args)-1)+" OR email ILIKE $"+itoa(len(args))+")")
	}

	whereSQL := "WHERE " + strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM users ` + whereSQL
	if err := s.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, f.Params.Limit, f.Params.Offset())
	query := `
		SELECT id, name, email, role, phone,
		       street_address, city, county, eircode,
		       subscription_status, hourly_rate, years_experience, rating,
		       languages, age_groups, available_days,
		       garda_vetted, tusla_registered, first_aid_cert, created_at
		FROM users ` + whereSQL + `
		ORDER BY created_at DESC
		LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		err = rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone,
			&u.StreetAddress, &u.City, &u.County, &u.Eircode,
			&u.SubscriptionStatus, &u.HourlyRate, &u.YearsExperience, &u.Rating,
			&u.Languages, &u.AgeGroups, &u.AvailableDays,
			&u.GardaVetted, &u.TuslaRegistered, &u.FirstAidCert, &u.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

func (s *Storage) ListAdmins() ([]models.User, error) {
	query := `
		SELECT id, name, email, role
		FROM users
		WHERE role = $1`

	rows, err := s.DB.Query(query, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, u)
	}

	return admins, rows.Err()
}

// UpdateProfile overwrites the user-editable profile fields.
func (s *Storage) UpdateProfile(u *models.User) (*models.User, error) {
	result, err := s.DB.Exec(`
		UPDATE users
		SET name = $1, phone = $2,
		    street_address = $3, city = $4, county = $5, eircode = $6,
		    hourly_rate = $7, years_experience = $8,
		    languages = $9, age_groups = $10, available_days = $11
		WHERE id = $12`,
		u.Name, u.Phone,
		u.StreetAddress, u.City, u.County, u.Eircode,
		u.HourlyRate, u.YearsExperience,
		u.Languages, u.AgeGroups, u.AvailableDays,
		u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return nil, storage.ErrNotFound
	}

	return s.GetUser(u.ID)
}

func (s *Storage) UpdateSubscriptionStatus(userID string, status models.SubscriptionStatus) error {
	result, err := s.DB.Exec(
		`UPDATE users SET subscription_status = $1 WHERE id = $2`,
		status, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}

	return nil
}
