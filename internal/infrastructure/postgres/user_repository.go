package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProfileRepository = (*ProfileRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT id, username, password_hash, first_name, last_name, email, is_superuser, is_active, date_joined
	FROM users`

// Create persiste una identidad. ErrDuplicateUsername si el nombre de usuario ya existe.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, first_name, last_name, email, is_superuser, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.IsSuperuser, u.IsActive, u.DateJoined,
	)
	if err != nil {
		return mapUserWriteError("insert user", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE id = $1`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, userSelect+` WHERE username = $1`, username)
}

// Update sobrescribe los datos de la identidad (incluido el hash).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, password_hash = $3, first_name = $4, last_name = $5, email = $6, is_superuser = $7, is_active = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.IsSuperuser, u.IsActive,
	)
	if err != nil {
		return mapUserWriteError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &u.IsSuperuser, &u.IsActive, &u.DateJoined,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func mapUserWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		if violatedConstraint(err) == usernameUniqueConstraint {
			return domain.ErrDuplicateUsername
		}
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileSelect = `
	SELECT p.id, p.user_id, p.role, p.department, p.active, p.hire_date, u.username, u.email
	FROM profiles p
	JOIN users u ON u.id = p.user_id`

// Create persiste el perfil de una identidad (uno por identidad).
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, role, department, active, hire_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.UserID, p.Role, p.Department, p.Active, p.HireDate)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := scanProfile(r.q.QueryRow(ctx, profileSelect+` WHERE p.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	query := `UPDATE profiles SET role = $2, department = $3, active = $4, hire_date = $5 WHERE user_id = $1`
	tag, err := r.q.Exec(ctx, query, p.UserID, p.Role, p.Department, p.Active, p.HireDate)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List aplica los filtros presentes y ordena por fecha de contratación descendente.
func (r *ProfileRepo) List(ctx context.Context, f repository.ProfileFilter) ([]*entity.Profile, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Role != "" {
		add("p.role = $%d", f.Role)
	}
	if f.Active != nil {
		add("p.active = $%d", *f.Active)
	}
	if f.Department != "" {
		add("p.department = $%d", f.Department)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(u.username ILIKE $%d OR u.email ILIKE $%d OR p.department ILIKE $%d)", n, n, n))
	}
	query := profileSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.hire_date DESC, p.user_id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Role, &p.Department, &p.Active, &p.HireDate, &p.Username, &p.Email); err != nil {
		return nil, err
	}
	return &p, nil
}
