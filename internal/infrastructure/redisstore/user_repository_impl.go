package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minbase/account-service/internal/domain/entity"
	"github.com/minbase/account-service/internal/domain/repository"
)

// UserRepository persists users in Redis.
//
// Layout:
//
//	user:<id>           hash, one field per attribute
//	user:email:<email>  string holding the owning id
//
// The email key doubles as the uniqueness constraint: Create claims it with
// SETNX before writing the record, so check-then-create is a single
// conditional write instead of a racy read-then-write.
type UserRepository struct {
	rdb *redis.Client
}

func NewUserRepository(rdb *redis.Client) *UserRepository {
	return &UserRepository{rdb: rdb}
}

func userKey(id string) string     { return "user:" + id }
func emailKey(email string) string { return "user:email:" + email }

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	ok, err := r.rdb.SetNX(ctx, emailKey(u.Email), u.ID, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrEmailTaken
	}
	if err := r.rdb.HSet(ctx, userKey(u.ID), encode(u)).Err(); err != nil {
		// release the claim so a retry is not locked out
		_ = r.rdb.Del(ctx, emailKey(u.Email)).Err()
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	data, err := r.rdb.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, repository.ErrNotFound
	}
	return decode(data)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	id, err := r.rdb.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update upserts the record by id. When the email changed it re-claims the
// new email key first and releases the old one afterwards, keeping the
// uniqueness constraint intact across renames.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	prevEmail, err := r.rdb.HGet(ctx, userKey(u.ID), "email").Result()
	if errors.Is(err, redis.Nil) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}

	if prevEmail != u.Email {
		ok, err := r.rdb.SetNX(ctx, emailKey(u.Email), u.ID, 0).Result()
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrEmailTaken
		}
	}

	if err := r.rdb.HSet(ctx, userKey(u.ID), encode(u)).Err(); err != nil {
		if prevEmail != u.Email {
			_ = r.rdb.Del(ctx, emailKey(u.Email)).Err()
		}
		return err
	}

	if prevEmail != u.Email {
		_ = r.rdb.Del(ctx, emailKey(prevEmail)).Err()
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	email, err := r.rdb.HGet(ctx, userKey(id), "email").Result()
	if errors.Is(err, redis.Nil) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, userKey(id))
	pipe.Del(ctx, emailKey(email))
	_, err = pipe.Exec(ctx)
	return err
}

func encode(u *entity.User) map[string]any {
	fields := map[string]any{
		"id":            u.ID,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"name":          u.Name,
		"mobile":        u.Mobile,
		"profile_image": u.ProfileImage,
		"created_at":    u.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":    u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if u.LastLoginAt != nil {
		fields["last_login_at"] = u.LastLoginAt.UTC().Format(time.RFC3339Nano)
	}
	return fields
}

func decode(data map[string]string) (*entity.User, error) {
	u := &entity.User{
		ID:           data["id"],
		Email:        data["email"],
		PasswordHash: data["password_hash"],
		Name:         data["name"],
		Mobile:       data["mobile"],
		ProfileImage: data["profile_image"],
	}
	var err error
	if u.CreatedAt, err = parseTime(data["created_at"]); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(data["updated_at"]); err != nil {
		return nil, err
	}
	if v, ok := data["last_login_at"]; ok && v != "" {
		t, err := parseTime(v)
		if err != nil {
			return nil, err
		}
		u.LastLoginAt = &t
	}
	return u, nil
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, v)
}

var _ repository.UserRepository = (*UserRepository)(nil)
