package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/biz"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

// NewUserRepo builds the sql-backed account repository.
func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{data: data, log: log.NewHelper(logger)}
}

func (r *userRepo) CreateUser(ctx context.Context, u *biz.User) (int, error) {
	var id int
	err := r.data.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		u.Email, u.Name, u.PasswordHash, now()).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*biz.User, error) {
	return r.scanUser(r.data.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash FROM users WHERE email = $1`, email))
}

func (r *userRepo) GetUserByID(ctx context.Context, id int) (*biz.User, error) {
	return r.scanUser(r.data.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash FROM users WHERE id = $1`, id))
}

func (r *userRepo) DeleteUser(ctx context.Context, id int) error {
	_, err := r.data.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *userRepo) scanUser(row *sql.Row) (*biz.User, error) {
	var u biz.User
	var name sql.NullString
	err := row.Scan(&u.ID, &u.Email, &name, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Name = name.String
	return &u, nil
}

func now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}
