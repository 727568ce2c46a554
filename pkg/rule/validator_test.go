package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/dandelion/pkg/rule"
)

// credentials 用于测试 ValidateStruct，和登录表单一个形状.
type credentials struct {
	Username string `rule:"required,max=255"`
	Password string `rule:"required"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	// 有效表单
	valid := credentials{Username: "alice", Password: "secret"}

	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 无效表单：缺少用户名
	missingUser := credentials{Username: "", Password: "secret"}

	if err := rule.ValidateStruct(missingUser); err == nil {
		t.Error("Expected error for missing username, got nil")
	}

	// 无效表单：缺少密码
	missingPassword := credentials{Username: "alice", Password: ""}

	if err := rule.ValidateStruct(missingPassword); err == nil {
		t.Error("Expected error for missing password, got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	// 有效端口
	if err := rule.ValidateVar(8080, "min=1,max=65535"); err != nil {
		t.Errorf("Expected no error for valid port, got %v", err)
	}

	// 无效端口
	if err := rule.ValidateVar(0, "min=1,max=65535"); err == nil {
		t.Error("Expected error for invalid port, got nil")
	}

	// 有效 IP
	if err := rule.ValidateVar("127.0.0.1", "ip"); err != nil {
		t.Errorf("Expected no error for valid IP, got %v", err)
	}

	// 无效 IP
	if err := rule.ValidateVar("not-an-ip", "ip"); err == nil {
		t.Error("Expected error for invalid IP, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	// 注册自定义验证：禁止路径分隔符
	err := rule.RegisterValidation("no_slash", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		for _, r := range str {
			if r == '/' || r == '\\' {
				return false
			}
		}

		return true
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	if err := rule.ValidateVar("report.pdf", "no_slash"); err != nil {
		t.Errorf("Expected no error for plain name, got %v", err)
	}

	if err := rule.ValidateVar("../etc/passwd", "no_slash"); err == nil {
		t.Error("Expected error for path traversal, got nil")
	}
}

// TestRegisterAlias 测试注册别名.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("username_rule", "required,min=1,max=255")

	if err := rule.ValidateVar("alice", "username_rule"); err != nil {
		t.Errorf("Expected no error for valid username with alias, got %v", err)
	}

	if err := rule.ValidateVar("", "username_rule"); err == nil {
		t.Error("Expected error for empty username with alias, got nil")
	}
}
