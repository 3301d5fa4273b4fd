package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordRequired   = errors.New("password required")
)

func NewUserService(db *sql.DB, t *TokenMaker, mb common.MessageProducer, c *common.Cache, logger *slog.Logger) *UserService {
	if mb == nil {
		mb = common.NopProducer{}
	}

	if c == nil {
		c = common.NewCache(UserCacheTime, 2*UserCacheTime)
	}

	return &UserService{
		m:      newUserModel(db),
		t:      t,
		mb:     mb,
		c:      c,
		logger: logger,
	}
}

// UserCreatedEvent is published after every successful registration.
type UserCreatedEvent struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// CreateUser registers a new account and publishes a user.created event.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	u := User{
		ID:       uuid.New(),
		Username: username,
		Name:     name,
		Blogs:    []BlogSummary{},
	}

	v := common.NewValidator("User")
	validateUser(v, &u)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	s.publishUserCreated(ctx, &u)

	return &u, nil
}

// publishUserCreated never fails the registration; a lost event only costs a notification.
func (s *UserService) publishUserCreated(ctx context.Context, u *User) {
	data, err := json.Marshal(UserCreatedEvent{ID: u.ID.String(), Username: u.Username, Name: u.Name})
	if err != nil {
		s.logger.Error("could not encode user.created event", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, common.UserCreatedBinding, data)
	if err != nil {
		s.logger.Error("could not publish user.created event", slog.String("user_id", u.ID.String()), slog.String("error", err.Error()))
	}
}

// GetUsers returns every user with the blogs they own.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}

// LoginUser checks the credentials and issues an access token for the user.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*Login, error) {
	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.t.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &Login{Token: token, Username: user.Username, Name: user.Name}, nil
}

// VerifyToken returns the claims of a valid access token or ErrInvalidToken.
func (s *UserService) VerifyToken(token string) (*Claims, error) {
	return s.t.Verify(token)
}

// GetUserByID returns the user without its password hash. Results are cached
// since every authenticated request resolves its token through here.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	key := common.CacheKeyUser(id)
	if u, ok := common.Lookup[User](s.c, key); ok {
		return &u, nil
	}

	u, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, *u)

	return u, nil
}

// DeleteUsers removes every user and, through the foreign keys, their blogs
// and comments.
func (s *UserService) DeleteUsers(ctx context.Context) error {
	err := s.m.deleteUsers(ctx)
	if err != nil {
		return err
	}

	s.c.Flush()

	return nil
}
