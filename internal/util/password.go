package util

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength 注册密码的最小长度
const MinPasswordLength = 6

// HashPassword 生成密码哈希，每次调用使用随机盐
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 校验明文密码与哈希是否匹配
// 哈希为空时直接返回 false，不会报错，保证登录失败信息统一
func CheckPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
