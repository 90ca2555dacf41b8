package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("user with this email already exists")
)

// Репозиторий для работы с пользователями.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) (*User, error)
	Ping(ctx context.Context) error
}

var (
	selectColumns = "id, " + strings.Join(Columns, ", ")

	listUsersQuery      = "SELECT " + selectColumns + " FROM users ORDER BY id"
	getUserByIDQuery    = "SELECT " + selectColumns + " FROM users WHERE id = $1"
	getUserByEmailQuery = "SELECT " + selectColumns + " FROM users WHERE email = $1 LIMIT 1"
	insertUserQuery     = buildInsertQuery()
	updateUserQuery     = buildUpdateQuery()
	deleteUserQuery     = "DELETE FROM users WHERE id = $1 RETURNING " + selectColumns
)

func buildInsertQuery() string {
	named := make([]string, len(Columns))
	for i, c := range Columns {
		named[i] = ":" + c
	}

	return fmt.Sprintf("INSERT INTO users (%s) VALUES (%s) RETURNING id",
		strings.Join(Columns, ", "), strings.Join(named, ", "))
}

func buildUpdateQuery() string {
	set := make([]string, len(Columns))
	for i, c := range Columns {
		set[i] = c + " = :" + c
	}

	return fmt.Sprintf("UPDATE users SET %s WHERE id = :id", strings.Join(set, ", "))
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context) ([]User, error) {
	var rows []Row
	if err := r.db.SelectContext(ctx, &rows, listUsersQuery); err != nil {
		return nil, fmt.Errorf("repository: failed to select users: %w", err)
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromRow(row))
	}

	return users, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	var row Row
	err := r.db.GetContext(ctx, &row, getUserByIDQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("repository: failed to select user by id %d: %w", id, err)
	}

	u := FromRow(row)
	return &u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var row Row
	err := r.db.GetContext(ctx, &row, getUserByEmailQuery, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("repository: failed to select user by email: %w", err)
	}

	u := FromRow(row)
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, user *User) (int64, error) {
	rows, err := r.db.NamedQueryContext(ctx, insertUserQuery, ToRow(user))
	if err != nil {
		return 0, mapWriteError("insert user", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, mapWriteError("insert user", err)
		}
		return 0, errors.New("repository: insert user returned no id")
	}

	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("repository: failed to scan inserted user id: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, user *User) error {
	res, err := r.db.NamedExecContext(ctx, updateUserQuery, ToRow(user))
	if err != nil {
		return mapWriteError(fmt.Sprintf("update user %d", user.ID), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows for user %d: %w", user.ID, err)
	}

	if affected == 0 {
		log.Warn().Int64("user_id", user.ID).Msg("repository: user not found for update")
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (*User, error) {
	var row Row
	err := r.db.GetContext(ctx, &row, deleteUserQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("repository: failed to delete user %d: %w", id, err)
	}

	u := FromRow(row)
	return &u, nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailExists
	}

	return fmt.Errorf("repository: failed to %s: %w", op, err)
}
