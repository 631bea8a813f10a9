// Package repositories provides raw parameterized SQL data access
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/skillgateway/backend/internal/models"
)

// mysqlDuplicateEntry is the MySQL error number for unique-key violations
const mysqlDuplicateEntry = 1062

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

// scanUser reads one user row with its nullable columns
func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var email, phone, passwordHash, provider, avatar sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Username,
		&email,
		&phone,
		&passwordHash,
		&provider,
		&avatar,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Email = email.String
	user.Phone = phone.String
	user.PasswordHash = passwordHash.String
	user.Provider = models.Provider(provider.String)
	user.AvatarPath = avatar.String
	return &user, nil
}

const userColumns = "id, username, email, phone, password_hash, provider, avatar, created_at"

// Create inserts a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, phone, password_hash, provider)
		VALUES (?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.Phone,
		user.PasswordHash,
		string(user.Provider),
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return fmt.Errorf("user already exists: %w", models.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = ? LIMIT 1", userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = ? LIMIT 1", userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByPhone retrieves a user by phone number
func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE phone = ? LIMIT 1", userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, phone))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}

	return user, nil
}

// FindIDByEmail resolves a user id by email, returning 0 when no user matches
func (r *userRepository) FindIDByEmail(ctx context.Context, email string) (int, error) {
	query := "SELECT id FROM users WHERE email = ? LIMIT 1"

	var id int
	err := r.db.QueryRowContext(ctx, query, email).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find user by email: %w", err)
	}

	return id, nil
}

// UpdateProfile updates the mutable profile fields
func (r *userRepository) UpdateProfile(ctx context.Context, id int, username, phone string) error {
	query := `
		UPDATE users
		SET username = COALESCE(NULLIF(?, ''), username),
		    phone = COALESCE(NULLIF(?, ''), phone)
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, username, phone, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %w", models.ErrNotFound)
	}

	return nil
}

// UpdateAvatar stores the avatar public path for a user
func (r *userRepository) UpdateAvatar(ctx context.Context, id int, avatarPath string) error {
	query := "UPDATE users SET avatar = ? WHERE id = ?"

	if _, err := r.db.ExecContext(ctx, query, avatarPath, id); err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}

	return nil
}

// ListAll retrieves all users ordered by creation time descending (admin report)
func (r *userRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC", userColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var email, phone, passwordHash, provider, avatar sql.NullString
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&email,
			&phone,
			&passwordHash,
			&provider,
			&avatar,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Email = email.String
		user.Phone = phone.String
		user.Provider = models.Provider(provider.String)
		user.AvatarPath = avatar.String
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}
