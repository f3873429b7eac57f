package shiprocket

import (
	"errors"
	"fmt"
)

// ErrAuthFailed — Shiprocket отклонил логин; отличаем от обычной ошибки запроса,
// чтобы вызывающий мог различить «не дозвонились» и «нас не пустили».
var ErrAuthFailed = errors.New("shiprocket authentication failed")

// APIError — не-2xx ответ Shiprocket с сообщением удалённой стороны.
type APIError struct {
	Op      string // операция, напр. "create_order"
	Status  int    // HTTP-статус ответа
	Message string // сообщение из тела ответа (если было)
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("shiprocket %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("shiprocket %s: status %d", e.Op, e.Status)
}
