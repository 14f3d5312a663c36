package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teolier/asset-office/database/models"
	"github.com/teolier/asset-office/database/repo/tokens"
	"github.com/teolier/asset-office/database/repo/users"
	cryptoutils "github.com/teolier/asset-office/utils/crypto"
	"gorm.io/gorm"
)

// LoginResult 登录结果
type LoginResult struct {
	User               *models.User
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// RefreshResult Token 刷新结果
type RefreshResult struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// LoginService 登录服务
type LoginService struct {
	usersRepo  *users.Repository
	tokensRepo *tokens.Repository
	jwtService *JWTService
}

// NewLoginService 创建新的登录服务
func NewLoginService(usersRepo *users.Repository, tokensRepo *tokens.Repository, jwtService *JWTService) *LoginService {
	return &LoginService{
		usersRepo:  usersRepo,
		tokensRepo: tokensRepo,
		jwtService: jwtService,
	}
}

// ValidateCredentials 验证用户凭据
func (s *LoginService) ValidateCredentials(ctx context.Context, username, password string) (*models.User, bool, error) {
	user, err := s.usersRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := cryptoutils.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		return nil, false, fmt.Errorf("password comparison failed: %w", err)
	}

	return user, ok, nil
}

// Login 执行登录操作
func (s *LoginService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, valid, err := s.ValidateCredentials(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to validate credentials: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("invalid credentials")
	}

	tokenPair, err := s.jwtService.GenerateTokens(user.Username, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokensRepo.Create(ctx, user.ID, tokenPair.RefreshToken, tokenPair.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResult{
		User:               user,
		AccessToken:        tokenPair.AccessToken,
		AccessTokenExpiry:  tokenPair.AccessTokenExpiry,
		RefreshToken:       tokenPair.RefreshToken,
		RefreshTokenExpiry: tokenPair.RefreshTokenExpiry,
	}, nil
}

// RefreshToken 刷新访问令牌并轮换刷新令牌
func (s *LoginService) RefreshToken(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	stored, err := s.tokensRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	user, err := s.usersRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	newRefreshToken, newRefreshTokenExpiry, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate new refresh token: %w", err)
	}

	// 轮换刷新令牌
	if err := s.tokensRepo.Rotate(ctx, stored.ID, newRefreshToken, newRefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	accessToken, accessTokenExpiry, err := s.jwtService.GenerateAccessToken(user.Username, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new access token: %w", err)
	}

	return &RefreshResult{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessTokenExpiry,
		RefreshToken:       newRefreshToken,
		RefreshTokenExpiry: newRefreshTokenExpiry,
	}, nil
}

// Logout 执行登出操作
func (s *LoginService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokensRepo.DeleteByToken(ctx, refreshToken)
}
