package usecase

import "errors"

// errInvalidInput — некорректные данные запроса; транспорт превращает её в 400.
var errInvalidInput = errors.New("invalid input")

// IsInvalidInput — проверка для транспортного слоя.
func IsInvalidInput(err error) bool { return errors.Is(err, errInvalidInput) }
