package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo     Repository
	logger   *zap.Logger
	hashCost int
	now      func() time.Time
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("UserService")
		}
	}
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) ServiceOption {
	return func(s *Service) { s.hashCost = cost }
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		logger:   zap.NewNop(),
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]models.UserModel, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("list users", err)
	}
	for i := range list {
		list[i].Password = ""
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.UserModel, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr("find user", err)
	}
	u.Password = ""
	return u, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateUserDTO) (*models.UserModel, error) {
	name := strings.TrimSpace(dto.Name)
	email := strings.TrimSpace(dto.Email)
	if name == "" || email == "" || dto.Password == "" {
		return nil, apperr.Validation(msgCreateRequired)
	}
	role, err := normalizeRole(dto.Role)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, name, email, primitive.NilObjectID, msgDuplicate); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.hashCost)
	if err != nil {
		return nil, apperr.Upstream("hash password", err)
	}

	u := &models.UserModel{
		Name:       name,
		Username:   name,
		Email:      email,
		Password:   string(hash),
		Role:       role,
		Status:     statusOrDefault(dto.Status),
		Avatar:     dto.Avatar,
		Permission: role,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		if errors.Is(err, errDuplicate) {
			return nil, apperr.Conflict(msgDuplicate)
		}
		return nil, apperr.Upstream("insert user", err)
	}
	s.logger.Info("用户已创建", zap.String("id", u.ID.Hex()), zap.String("role", role))
	u.Password = ""
	return u, nil
}

func (s *Service) Update(ctx context.Context, rawID string, dto *UpdateUserDTO) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(dto.Name)
	email := strings.TrimSpace(dto.Email)
	if name == "" || email == "" {
		return apperr.Validation(msgUpdateRequired)
	}
	role, err := normalizeRole(dto.Role)
	if err != nil {
		return err
	}
	if err := s.ensureFree(ctx, name, email, id, msgDuplicateOther); err != nil {
		return err
	}

	set := bson.M{
		"name":       name,
		"username":   name,
		"email":      email,
		"role":       role,
		"status":     statusOrDefault(dto.Status),
		"permission": role,
		"updatedAt":  s.now(),
	}
	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.hashCost)
		if err != nil {
			return apperr.Upstream("hash password", err)
		}
		set["password"] = string(hash)
	}
	if err := s.repo.Set(ctx, id, set); err != nil {
		if errors.Is(err, errDuplicate) {
			return apperr.Conflict(msgDuplicateOther)
		}
		return mapStoreErr("update user", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreErr("delete user", err)
	}
	s.logger.Info("用户已删除", zap.String("id", id.Hex()))
	return nil
}

// Profile returns the compact view of the user behind a token subject.
func (s *Service) Profile(ctx context.Context, rawID string) (*Profile, error) {
	u, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return toProfile(u), nil
}

func (s *Service) UpdateAvatar(ctx context.Context, rawID, avatarURL string) (*Profile, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return nil, apperr.Validation(msgAvatarRequired)
	}
	if err := s.repo.Set(ctx, id, bson.M{"avatar": avatarURL, "updatedAt": s.now()}); err != nil {
		return nil, mapStoreErr("update avatar", err)
	}
	return s.Profile(ctx, rawID)
}

func (s *Service) ensureFree(ctx context.Context, name, email string, except primitive.ObjectID, msg string) error {
	taken, err := s.repo.Taken(ctx, name, email, except)
	if err != nil {
		return apperr.Upstream("check user uniqueness", err)
	}
	if taken {
		return apperr.Conflict(msg)
	}
	return nil
}

func toProfile(u *models.UserModel) *Profile {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	if name == "" {
		name, _, _ = strings.Cut(u.Email, "@")
	}
	role := u.Role
	if role == "" {
		role = u.Permission
	}
	if role == "" {
		role = models.RoleUser
	}
	return &Profile{ID: u.ID.Hex(), Name: name, Email: u.Email, Image: u.Avatar, Role: role}
}

func normalizeRole(raw string) (string, error) {
	switch role := strings.ToLower(strings.TrimSpace(raw)); role {
	case "":
		return models.RoleUser, nil
	case models.RoleUser, models.RoleAdmin:
		return role, nil
	default:
		return "", apperr.Validation(msgInvalidRole)
	}
}

func statusOrDefault(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return models.UserStatusActive
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidID(msgInvalidID)
	}
	return id, nil
}

func mapStoreErr(op string, err error) error {
	if errors.Is(err, ErrNoDocument) {
		return apperr.NotFound(msgNotFound)
	}
	return apperr.Upstream(op, err)
}
