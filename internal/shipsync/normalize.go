package shipsync

import (
	"strings"

	"github.com/Gunvolt24/shop_backend/internal/domain"
)

// statusRule — подстрока в тексте статуса курьера и канонический статус.
// Порядок записей — приоритет сопоставления: первое совпадение выигрывает.
var statusRules = []struct {
	substr string
	status domain.OrderStatus
}{
	{"pending", domain.StatusPending},
	{"confirmed", domain.StatusProcessing},
	{"processing", domain.StatusProcessing},
	{"shipped", domain.StatusShipped},
	{"in transit", domain.StatusShipped},
	{"out for delivery", domain.StatusOutForDelivery},
	{"delivered", domain.StatusDelivered},
	{"cancelled", domain.StatusCancelled},
}

// NormalizeStatus — приводит свободный текст статуса курьера к каноническому.
// Сопоставление по подстроке, без учёта регистра. Нераспознанный или пустой
// текст — (_, false): вызывающий не должен перезаписывать статус «ничем».
func NormalizeStatus(text string) (domain.OrderStatus, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return "", false
	}
	for _, rule := range statusRules {
		if strings.Contains(lower, rule.substr) {
			return rule.status, true
		}
	}
	return "", false
}
