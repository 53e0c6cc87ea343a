package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"minderbook/internal/lib/api/pagination"
	"minderbook/internal/models"
)

type ChildminderFilter struct {
	Location      string
	DayOfWeek     string
	MinRating     float64
	AgeGroup      string
	Language      string
	MinRate       float64
	MaxRate       float64
	MinExperience int
	GardaVetted   bool
	TuslaReg      bool
	FirstAid      bool
	Sort          string // rating|hourly_rate|years_experience
	Order         string // asc|desc
	Params        pagination.Params
}

const childminderColumns = `
	id, name, email, role, phone,
	street_address, city, county, eircode,
	subscription_status, hourly_rate, years_experience, rating,
	languages, age_groups, available_days,
	garda_vetted, tusla_registered, first_aid_cert, created_at`

// SearchChildminders applies the card-search filter set and returns a
// page of matching childminders plus the unpaginated match count.
func (s *Storage) SearchChildminders(f ChildminderFilter) ([]models.User, int64, error) {
	args := []any{string(models.RoleChildminder)}
	conds := []string{"role = $1"}

	if q := strings.TrimSpace(f.Location); q != "" {
		p := "%" + q + "%"
		args = append(args, p, p)
		conds = append(conds, "(city ILIKE $"+itoa(len(args)-1)+" OR county ILIKE $"+itoa(len(args))+")")
	}
	if f.DayOfWeek != "" {
		args = append(args, "%"+f.DayOfWeek+"%")
		conds = append(conds, "available_days ILIKE $"+itoa(len(args)))
	}
	if f.MinRating > 0 {
		args = append(args, f.MinRating)
		conds = append(conds, "rating >= $"+itoa(len(args)))
	}
	if f.AgeGroup != "" {
		args = append(args, "%"+f.AgeGroup+"%")
		conds = append(conds, "age_groups ILIKE $"+itoa(len(args)))
	}
	if f.Language != "" {
		args = append(args, "%"+f.Language+"%")
		conds = append(conds, "languages ILIKE $"+itoa(len(args)))
	}
	if f.MinRate > 0 {
		args = append(args, f.MinRate)
		conds = append(conds, "hourly_rate >= $"+itoa(len(args)))
	}
	if f.MaxRate > 0 {
		args = append(args, f.MaxRate)
		conds = append(conds, "hourly_rate <= $"+itoa(len(args)))
	}
	if f.MinExperience > 0 {
		args = append(args, f.MinExperience)
		conds = append(conds, "years_experience >= $"+itoa(len(args)))
	}
	if f.GardaVetted {
		conds = append(conds, "garda_vetted = true")
	}
	if f.TuslaReg {
		conds = append(conds, "tusla_registered = true")
	}
	if f.FirstAid {
		conds = append(conds, "first_aid_cert = true")
	}

	whereSQL := "WHERE " + strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM users ` + whereSQL
	if err := s.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count childminders: %w", err)
	}

	sortCol := sanitizeSort(f.Sort, map[string]bool{"rating": true, "hourly_rate": true, "years_experience": true}, "rating")
	sortOrd := sanitizeOrder(f.Order, "desc")

	args = append(args, f.Params.Limit, f.Params.Offset())
	query := `SELECT ` + childminderColumns + `
		FROM users
		` + whereSQL + `
		ORDER BY ` + sortCol + ` ` + sortOrd + `
		LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search childminders: %w", err)
	}
	defer rows.Close()

	minders, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return minders, total, nil
}

// RecommendedChildminders backs the pre-search "recommended for you"
// section: top-rated childminders, certification-complete first.
func (s *Storage) RecommendedChildminders(limit int) ([]models.User, error) {
	query := `SELECT ` + childminderColumns + `
		FROM users
		WHERE role = $1
		ORDER BY (garda_vetted::int + tusla_registered::int + first_aid_cert::int) DESC, rating DESC
		LIMIT $2`

	rows, err := s.DB.Query(query, models.RoleChildminder, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommended childminders: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone,
			&u.StreetAddress, &u.City, &u.County, &u.Eircode,
			&u.SubscriptionStatus, &u.HourlyRate, &u.YearsExperience, &u.Rating,
			&u.Languages, &u.AgeGroups, &u.AvailableDays,
			&u.GardaVetted, &u.TuslaRegistered, &u.FirstAidCert, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan childminder: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating childminders: %w", err)
	}

	return users, nil
}
