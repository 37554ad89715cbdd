package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/avoronov/cadscreen/internal/model"
)

type UserDAO struct {
	Logger *slog.Logger
	*DB
}

func NewUserDAO(logger *slog.Logger, db *DB) *UserDAO {
	return &UserDAO{
		Logger: logger.With("dao", "user"),
		DB:     db,
	}
}

type InsertUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
	Role         model.Role
}

// Insert creates a user row. Uniqueness of username and email is enforced by
// the storage layer's unique indexes, so concurrent registrations with the
// same username cannot both succeed.
func (dao *UserDAO) Insert(ctx context.Context, dto InsertUserDTO) (model.ID, error) {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert("users").
		Columns("username", "email", "password_hash", "role").
		Values(dto.Username, dto.Email, dto.PasswordHash, dto.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var id model.ID
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&id); err != nil {
		logger.Warn("failed query execute", "error", err)

		if IsUniqueViolation(err) {
			return 0, uniqueViolationError(err)
		}

		return 0, err
	}

	logger.Debug("success query execute", "insertId", id)

	return id, nil
}

func (dao *UserDAO) Get(ctx context.Context, id model.ID) (model.User, error) {
	logger := dao.Logger.With("query", "get")

	query, args, err := dao.Builder.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var user model.User
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&user); err != nil {
		if IsNoRows(err) {
			return model.User{}, model.NewError("user", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.User{}, err
	}

	return user, nil
}

// GetByUsername looks a user up for credential verification. The comparison
// is case-sensitive: usernames are unique exactly as stored.
func (dao *UserDAO) GetByUsername(ctx context.Context, username string) (model.User, error) {
	logger := dao.Logger.With("query", "getByUsername")

	query, args, err := dao.Builder.
		Select("*").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var user model.User
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&user); err != nil {
		if IsNoRows(err) {
			return model.User{}, model.NewError("user", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.User{}, err
	}

	return user, nil
}

type UpdateUserDTO struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// Update applies a partial profile update: only non-nil fields change.
func (dao *UserDAO) Update(ctx context.Context, id model.ID, dto UpdateUserDTO) error {
	logger := dao.Logger.With("query", "update")

	data := make(map[string]any, 4)
	data["updated_at"] = time.Now()
	if dto.Username != nil {
		data["username"] = *dto.Username
	}
	if dto.Email != nil {
		data["email"] = *dto.Email
	}
	if dto.PasswordHash != nil {
		data["password_hash"] = *dto.PasswordHash
	}

	query, args, err := dao.Builder.
		Update("users").
		SetMap(data).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", args)

	res, err := dao.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)

		if IsUniqueViolation(err) {
			return uniqueViolationError(err)
		}

		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.NewError("user", model.ErrNotFound)
	}

	logger.Debug("success query execute", "updateId", id, "countUpdatedFields", len(data))

	return nil
}

// FindPatients returns every patient with their assessment count, for the
// doctor dashboard.
func (dao *UserDAO) FindPatients(ctx context.Context) ([]model.PatientSummary, error) {
	logger := dao.Logger.With("query", "findPatients")

	query, args, err := dao.Builder.
		Select("u.id", "u.username", "u.email", "u.created_at", "COUNT(a.id) AS assessments_count").
		From("users AS u").
		LeftJoin("assessments AS a ON a.user_id = u.id").
		Where(squirrel.Eq{"u.role": model.RolePatient}).
		GroupBy("u.id").
		OrderBy("u.created_at ASC", "u.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	patients := make([]model.PatientSummary, 0)
	if err := dao.SelectContext(ctx, &patients, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	return patients, nil
}

// uniqueViolationError maps the violated constraint back to the field the
// caller can report. The users table has exactly two unique indexes.
func uniqueViolationError(err error) error {
	if UniqueConstraint(err) == "users_email_idx" {
		return model.ErrEmailTaken
	}
	return model.ErrUsernameTaken
}
