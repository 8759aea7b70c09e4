package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 只用明文前 72 字节，超长密码在入参校验层就该拒掉
const MaxPasswordLen = 72

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
