package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUserID は認証済みユーザーIDのコンテキストキー
	ContextKeyUserID = "user_id"
	// ContextKeyIsStaff はスタッフ権限フラグのコンテキストキー
	ContextKeyIsStaff = "is_staff"
)

// JWTAuth はBearerトークンを検証し、ユーザー識別情報をリクエストコンテキストに
// 格納するミドルウェア。保護されたルートはこのミドルウェアの内側に置く
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが必要です")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// HS256 以外の署名方式は受け付けない
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "無効なトークンです")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "無効なトークンです")
			}

			userID, ok := parseSubject(claims["sub"])
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "無効なトークンです")
			}

			isStaff, _ := claims[ContextKeyIsStaff].(bool)

			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyIsStaff, isStaff)
			return next(c)
		}
	}
}

// StaffOnly はスタッフ権限を要求するミドルウェア
// JWTAuth の内側で使用する
func StaffOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsStaff(c) {
				return echo.NewHTTPError(http.StatusForbidden, "この操作にはスタッフ権限が必要です")
			}
			return next(c)
		}
	}
}

// UserID はコンテキストから認証済みユーザーIDを取り出す
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ContextKeyUserID).(int64)
	return id, ok
}

// IsStaff はコンテキストからスタッフ権限フラグを取り出す
func IsStaff(c echo.Context) bool {
	isStaff, _ := c.Get(ContextKeyIsStaff).(bool)
	return isStaff
}

// parseSubject は sub クレームをユーザーIDに変換する
// JWTライブラリの仕様上、数値クレームは float64 でデコードされる
func parseSubject(sub interface{}) (int64, bool) {
	switch v := sub.(type) {
	case float64:
		return int64(v), v > 0
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	default:
		return 0, false
	}
}
