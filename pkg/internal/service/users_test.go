package service_test

import (
	"errors"
	"testing"

	"github.com/yeisme/dandelion/pkg/internal/service"
)

// TestRegisterAndAuthenticate 测试注册后能用同样的凭据登录.
func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := newTestContext(t)
	us := service.NewUserService(ctx)

	id, err := us.Register(ctx, "alice", "correct horse battery staple")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if id == 0 {
		t.Fatal("Register returned zero user ID")
	}

	user, err := us.Authenticate(ctx, "alice", "correct horse battery staple")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if user.ID != id || user.Username != "alice" {
		t.Errorf("Authenticate = {ID:%d Username:%q}, want {ID:%d Username:\"alice\"}", user.ID, user.Username, id)
	}

	// 摘要绝不等于明文
	if user.PasswordDigest == "correct horse battery staple" {
		t.Error("password stored in plain text")
	}
}

// TestAuthenticateFailures 测试错误密码与未知用户返回同一个错误.
func TestAuthenticateFailures(t *testing.T) {
	ctx := newTestContext(t)
	us := service.NewUserService(ctx)

	if _, err := us.Register(ctx, "bob", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "bob", "wrong"},
		{"unknown user", "nobody", "secret"},
		{"empty password", "bob", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := us.Authenticate(ctx, tc.username, tc.password); !errors.Is(err, service.ErrInvalidCredentials) {
				t.Errorf("Authenticate(%q, %q): err = %v, want ErrInvalidCredentials", tc.username, tc.password, err)
			}
		})
	}
}

// TestRegisterDuplicateUsername 测试重复用户名返回 ErrDuplicateUsername.
func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := newTestContext(t)
	us := service.NewUserService(ctx)

	if _, err := us.Register(ctx, "carol", "first"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := us.Register(ctx, "carol", "second"); !errors.Is(err, service.ErrDuplicateUsername) {
		t.Errorf("duplicate Register: err = %v, want ErrDuplicateUsername", err)
	}

	// 原密码仍然有效
	if _, err := us.Authenticate(ctx, "carol", "first"); err != nil {
		t.Errorf("Authenticate after duplicate attempt: %v", err)
	}
}

// TestRegisterEmptyFields 测试空用户名或密码被拒绝.
func TestRegisterEmptyFields(t *testing.T) {
	ctx := newTestContext(t)
	us := service.NewUserService(ctx)

	if _, err := us.Register(ctx, "", "password"); err == nil {
		t.Error("Register with empty username succeeded")
	}

	if _, err := us.Register(ctx, "dave", ""); err == nil {
		t.Error("Register with empty password succeeded")
	}
}
