package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// 邮箱格式：local@domain，且 domain 部分必须包含点号
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail 校验邮箱格式
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateEmailShape 注册到 gin binding 的自定义邮箱校验器
func ValidateEmailShape(fl validator.FieldLevel) bool {
	email, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return IsValidEmail(email)
}
