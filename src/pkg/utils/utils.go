package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	httpError "transfer-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result wraps a usecase outcome, exactly one of Data/Error is set.
type Result struct {
	Data  interface{}
	Error error
}

type baseResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(baseResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(commonErr.ResponseCode).JSON(baseResponse{
			Success: false,
			Message: commonErr.Message,
			Code:    commonErr.CodeStr,
		})
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(baseResponse{
		Success: false,
		Message: "internal server error",
		Code:    "INTERNAL_SERVER_ERROR",
	})
}

func ConvertString(data interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%+v", data)
	}
	return string(b)
}

func ConvertInt(data interface{}) int {
	switch v := data.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// RoundMoney rounds to two decimal places, half up. All monetary amounts in
// the service pass through here before being persisted or returned.
func RoundMoney(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
