package validator

import (
	"context"
	"regexp"
	"strings"

	"app/internal/repository"
	"app/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	//必須チェック
	if username == "" || email == "" || password == "" {
		return usecase.ErrValidation
	}

	//usernameは小文字英数字4〜10文字
	if !isUsernameLike(username) {
		return usecase.ErrValidation
	}

	//email形式
	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	//パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return usecase.ErrValidation
	}

	//重複チェック（DBが必要）
	if u, err := v.users.FindByEmail(ctx, email); err == nil && u != nil {
		return usecase.ErrConflict
	}
	if u, err := v.users.FindByUsername(ctx, username); err == nil && u != nil {
		return usecase.ErrConflict
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	//必須チェック
	if email == "" || password == "" {
		return usecase.ErrValidation
	}

	//email形式
	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return usecase.ErrUnauthorized
	}

	return nil
}

// 強制ログアウトの入力を検証
func (v *authValidator) ValidateForceLogout(ctx context.Context, targetUserID int64) error {
	if targetUserID <= 0 {
		return usecase.ErrValidation
	}
	return nil
}

var usernameRe = regexp.MustCompile(`^[a-z0-9]{4,10}$`)

func isUsernameLike(s string) bool {
	return usernameRe.MatchString(s)
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
