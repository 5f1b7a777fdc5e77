package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseIDParam はパスパラメータのIDを整数に変換する
// 整数以外は存在しないリソースとして扱う
func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "リソースが見つかりません")
	}
	return id, nil
}
