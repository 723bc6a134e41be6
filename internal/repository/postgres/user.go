package postgres

import (
	"context"
	"sort"
	"strconv"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var userUpdatableFields = map[string]struct{}{
	"username":   {},
	"email":      {},
	"first_name": {},
	"last_name":  {},
}

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO users(id, username, email, first_name, last_name) VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
	)
	return err
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	query, args, err := userUpdateQuery(id, updates)
	if err != nil || query == "" {
		return err
	}

	_, err = r.db.Exec(ctx, query, args...)
	return err
}

func userUpdateQuery(id uuid.UUID, updates map[string]interface{}) (string, []interface{}, error) {
	if len(updates) == 0 {
		return "", nil, nil
	}

	columns := make([]string, 0, len(updates))
	for field := range updates {
		if _, ok := userUpdatableFields[field]; !ok {
			return "", nil, ErrFieldsNotAllowedToUpdate
		}
		if _, ok := updates[field].(string); !ok {
			return "", nil, ErrInvalidFieldValue
		}
		columns = append(columns, field)
	}
	sort.Strings(columns)

	query := "UPDATE users SET "
	args := []interface{}{}
	i := 1

	for _, column := range columns {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, updates[column])
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	return query, args, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, "SELECT u.id, u.username, u.email, u.first_name, u.last_name FROM users u WHERE u.id = $1", id)
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "SELECT u.id, u.username, u.email, u.first_name, u.last_name FROM users u WHERE u.username = $1", username)
}

func (r *userRepo) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
	); err != nil {
		return nil, err
	}

	return &user, nil
}
