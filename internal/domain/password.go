package domain

import "strings"

// Правила для паролей пользователей.
// В отличие от валидации сущностей (fail-fast), для паролей нужен
// полный список нарушений - он показывается пользователю целиком.

const passwordMinLength = 8

const passwordSymbols = `!@#$%^&*()\-_=+[\]{};:,.<>?/|~`

// PasswordRule - одно из правил политики паролей
type PasswordRule string

const (
	PasswordRuleMinLength PasswordRule = "at least 8 characters"
	PasswordRuleUppercase PasswordRule = "at least one uppercase letter"
	PasswordRuleLowercase PasswordRule = "at least one lowercase letter"
	PasswordRuleDigit     PasswordRule = "at least one digit"
	PasswordRuleSymbol    PasswordRule = "at least one special character"
)

// CheckPasswordRules возвращает полный список нарушенных правил.
// Пустой slice означает, что пароль удовлетворяет политике.
func CheckPasswordRules(password string) []PasswordRule {
	var violations []PasswordRule

	if len(password) < passwordMinLength {
		violations = append(violations, PasswordRuleMinLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		violations = append(violations, PasswordRuleUppercase)
	}
	if !hasLower {
		violations = append(violations, PasswordRuleLowercase)
	}
	if !hasDigit {
		violations = append(violations, PasswordRuleDigit)
	}
	if !hasSymbol {
		violations = append(violations, PasswordRuleSymbol)
	}

	return violations
}

// ValidatePassword проверяет пароль против политики.
// Возвращает ErrInvalidPassword, если хотя бы одно правило нарушено.
func ValidatePassword(password string) error {
	if len(CheckPasswordRules(password)) > 0 {
		return ErrInvalidPassword
	}
	return nil
}
