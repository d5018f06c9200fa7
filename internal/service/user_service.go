package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"

	"github.com/iamzaidakbar/ecommerce-app/internal/auth"
	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/user"
)

const (
	redisOTPKey        = "auth:otp:%s"   // email
	redisResetTokenKey = "auth:reset:%s" // token
)

var (
	// ErrInvalidCredentials 邮箱或密码不对，对外不区分哪个错
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidOTP 验证码错误或已过期
	ErrInvalidOTP = errors.New("invalid or expired OTP")
	// ErrInvalidResetToken 重置令牌错误或已过期
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrEmailTaken 邮箱已注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrOTPUnavailable fixture 模式没有 Redis，验证码/重置流程不可用
	ErrOTPUnavailable = errors.New("otp backend unavailable")
)

// UserService 账号注册/登录/邮箱验证/密码找回与资料维护
type UserService struct {
	repo    user.Repository
	redis   radix.Client
	jwt     *config.JWTConfig
	authCfg *config.AuthConfig
}

// NewUserService 创建用户服务
func NewUserService(repo user.Repository, redis radix.Client, jwt *config.JWTConfig, authCfg *config.AuthConfig) *UserService {
	return &UserService{repo: repo, redis: redis, jwt: jwt, authCfg: authCfg}
}

func hashPassword(raw, salt string) string {
	h := sha256.Sum256([]byte(raw + salt))
	return hex.EncodeToString(h[:])
}

func newSalt() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// newOTP 生成 6 位数字验证码
func newOTP() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000)
}

// Register 注册新用户并下发邮箱验证码
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*user.User, error) {
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	u := &user.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Salt:      newSalt(),
		Role:      user.RoleUser,
	}
	u.Password = hashPassword(password, u.Salt)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.issueOTP(ctx, email); err != nil {
		// 注册本身已成功，验证码可以重发
		zap.L().Warn("issue otp failed", zap.String("email", email), zap.Error(err))
	}
	return u, nil
}

// Login 登录并返回 JWT。邮箱未验证不挡登录，由前端引导去验证页。
func (s *UserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		GetMonitor().RecordAuthFailure()
		return "", nil, ErrInvalidCredentials
	}
	if hashPassword(password, u.Salt) != u.Password {
		GetMonitor().RecordAuthFailure()
		return "", nil, ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(s.jwt, u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// issueOTP 生成验证码写入 Redis。邮件通道未接入，先打日志方便演示。
func (s *UserService) issueOTP(ctx context.Context, email string) error {
	if s.redis == nil {
		return ErrOTPUnavailable
	}
	otp := newOTP()
	ttl := s.authCfg.OTPTTLSeconds
	if ttl <= 0 {
		ttl = 600
	}
	key := fmt.Sprintf(redisOTPKey, email)
	if err := s.redis.Do(radix.FlatCmd(nil, "SETEX", key, ttl, otp)); err != nil {
		return err
	}
	zap.L().Info("verification otp issued", zap.String("email", email), zap.String("otp", otp))
	return nil
}

// VerifyEmail 校验验证码并标记邮箱已验证
func (s *UserService) VerifyEmail(ctx context.Context, email, otp string) (*user.User, error) {
	if s.redis == nil {
		return nil, ErrOTPUnavailable
	}
	key := fmt.Sprintf(redisOTPKey, email)
	var stored string
	if err := s.redis.Do(radix.Cmd(&stored, "GET", key)); err != nil {
		return nil, err
	}
	if stored == "" || stored != otp {
		return nil, ErrInvalidOTP
	}
	_ = s.redis.Do(radix.Cmd(nil, "DEL", key))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	u.IsEmailVerified = true
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResendOTP 重新下发验证码
func (s *UserService) ResendOTP(ctx context.Context, email string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		return err
	}
	return s.issueOTP(ctx, email)
}

// ForgotPassword 生成重置令牌。令牌通过邮件链接送达（通道未接入，见日志）。
func (s *UserService) ForgotPassword(ctx context.Context, email string, token string) error {
	if s.redis == nil {
		return ErrOTPUnavailable
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// 不暴露邮箱是否存在
		zap.L().Info("forgot password for unknown email", zap.String("email", email))
		return nil
	}
	ttl := s.authCfg.ResetTokenTTLSeconds
	if ttl <= 0 {
		ttl = 1800
	}
	key := fmt.Sprintf(redisResetTokenKey, token)
	if err := s.redis.Do(radix.FlatCmd(nil, "SETEX", key, ttl, u.ID)); err != nil {
		return err
	}
	zap.L().Info("password reset token issued", zap.String("email", email), zap.String("token", token))
	return nil
}

// ResetPassword 按令牌重置密码，令牌一次性
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	if s.redis == nil {
		return ErrOTPUnavailable
	}
	key := fmt.Sprintf(redisResetTokenKey, token)
	var userID int64
	if err := s.redis.Do(radix.Cmd(&userID, "GET", key)); err != nil {
		return err
	}
	if userID == 0 {
		return ErrInvalidResetToken
	}
	_ = s.redis.Do(radix.Cmd(nil, "DEL", key))

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Salt = newSalt()
	u.Password = hashPassword(password, u.Salt)
	return s.repo.Update(ctx, u)
}

// GetProfile 查询用户资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*user.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile 更新姓名与邮箱。换邮箱后验证状态清零，需要重新验证。
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email string) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email != "" && email != u.Email {
		if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil && existing.ID != userID {
			return nil, ErrEmailTaken
		}
		u.Email = email
		u.IsEmailVerified = false
	}
	if firstName != "" {
		u.FirstName = firstName
	}
	if lastName != "" {
		u.LastName = lastName
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword 校验旧密码后换新密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if hashPassword(current, u.Salt) != u.Password {
		return ErrInvalidCredentials
	}
	u.Salt = newSalt()
	u.Password = hashPassword(next, u.Salt)
	return s.repo.Update(ctx, u)
}

// ListAll admin 用户管理列表
func (s *UserService) ListAll(ctx context.Context) ([]*user.User, error) {
	return s.repo.ListAll(ctx)
}

// ProfileTabs 按角色返回个人中心标签页
func (s *UserService) ProfileTabs(role string) []string {
	return user.ProfileTabs(role)
}
