package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/minbase/account-service/internal/domain/entity"
	repo "github.com/minbase/account-service/internal/domain/repository"
	"github.com/minbase/account-service/pkg/helpers"
	"github.com/minbase/account-service/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
)

// Service implements the account business rules on top of the repository,
// the credential hasher and the token issuer. It holds no mutable state
// between requests.
type Service struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	GCS          *storage.Client
	GCSBucket    string
	Redis        *redis.Client
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, gcs *storage.Client, gcsBucket string, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esUsersIndex string) *Service {
	return &Service{
		Repo:         repo,
		JWT:          jwt,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		Redis:        rdb,
		Logger:       logger,
		Pub:          pub,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Mobile   string
}

// Register creates a new account. The repository's conditional write on the
// email index guarantees at most one record per email; on conflict nothing
// is persisted.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           helpers.NewUserID(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Mobile:       in.Mobile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.publishEmail(ctx, &mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name, "Email": u.Email},
	})
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Login validates email/password, issues a token bound to the user id and
// refreshes LastLoginAt. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return "", nil, err
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", nil, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	s.publishEmail(ctx, &mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateLoginNotification,
		Data:     map[string]any{"Name": u.Name, "Time": now.Format(time.RFC3339)},
	})
	return token, u, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfileInput carries a partial patch; nil fields are left unchanged.
type UpdateProfileInput struct {
	Email  *string
	Name   *string
	Mobile *string
}

// UpdateProfile applies the patch and refreshes UpdatedAt. An email change
// re-runs the uniqueness claim against the index.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Mobile != nil {
		u.Mobile = *in.Mobile
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"email":      u.Email,
			"name":       u.Name,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	_ = s.indexUser(ctx, u)
	return u, nil
}

// DeleteAccount removes the user permanently, along with the session and the
// search index entry. There is no soft delete.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
	s.deindexUser(ctx, userID)
	return nil
}

// UploadProfileImage stores the image in GCS and records its public URL.
func (s *Service) UploadProfileImage(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", userID, helpers.NewUserID()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.ProfileImage = url
	u.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	_ = s.indexUser(ctx, u)
	return url, nil
}

// publishEmail queues a mail job; delivery is best effort and never fails
// the calling operation.
func (s *Service) publishEmail(ctx context.Context, job *mailer.EmailJob) {
	if s.Pub == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Pub.PublishJSON(c, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("email job publish failed")
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":            u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"profile_image": u.ProfileImage,
		"created_at":    u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":    u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *Service) deindexUser(ctx context.Context, userID string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
