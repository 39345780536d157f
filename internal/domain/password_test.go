package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCheckPasswordRules тестирует накопление нарушений политики паролей
func TestCheckPasswordRules(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		violations []PasswordRule
	}{
		{
			name:       "корректный пароль",
			password:   "Str0ng!pass",
			violations: nil,
		},
		{
			name:     "нет заглавной буквы и спецсимвола",
			password: "abcdefg1",
			violations: []PasswordRule{
				PasswordRuleUppercase,
				PasswordRuleSymbol,
			},
		},
		{
			name:     "слишком короткий",
			password: "Ab1!xyz",
			violations: []PasswordRule{
				PasswordRuleMinLength,
			},
		},
		{
			name:     "пустой пароль нарушает все правила",
			password: "",
			violations: []PasswordRule{
				PasswordRuleMinLength,
				PasswordRuleUppercase,
				PasswordRuleLowercase,
				PasswordRuleDigit,
				PasswordRuleSymbol,
			},
		},
		{
			name:     "только цифры",
			password: "12345678",
			violations: []PasswordRule{
				PasswordRuleUppercase,
				PasswordRuleLowercase,
				PasswordRuleSymbol,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPasswordRules(tt.password)
			assert.Equal(t, tt.violations, got)
		})
	}
}

// TestValidatePassword тестирует fail-fast вариант проверки пароля
func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ng!pass"))
	assert.ErrorIs(t, ValidatePassword("weak"), ErrInvalidPassword)
}
