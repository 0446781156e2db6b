package jwt

import (
	"citizens-link/config"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
)

// ErrNoSecret 未配置 jwt.access_secret
var ErrNoSecret = errors.New("jwt.access_secret 未配置")

// Init 启动时要求配置签名密钥
func Init() error {
	if config.Get().JWT.AccessSecret == "" {
		return ErrNoSecret
	}
	return nil
}

// Payload 运营本部账号信息
type Payload struct {
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

// CreateToken 签发 HS256 令牌
func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(cfg.AccessExpire) * time.Second).Unix(),
			Issuer:    "citizens-link",
			Subject:   payload.Username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		// HS256 签名只会因密钥类型错误失败
		panic(err)
	}
	return token
}

// ParseToken 校验签名和有效期，没有 exp 的令牌不接受
func ParseToken(token string) (*Claims, bool) {
	secret := config.Get().JWT.AccessSecret
	if secret == "" {
		return nil, false
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid || claims.ExpiresAt == 0 {
		return nil, false
	}
	return claims, true
}
