package domain_test

import (
	"testing"

	"github.com/Gunvolt24/shop_backend/internal/domain"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "out_for_delivery", "delivered", "cancelled"} {
		if !domain.ValidStatus(s) {
			t.Fatalf("status %q must be valid", s)
		}
	}
	for _, s := range []string{"", "Pending", "returned", "in transit"} {
		if domain.ValidStatus(s) {
			t.Fatalf("status %q must be invalid", s)
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	if !domain.StatusDelivered.Terminal() || !domain.StatusCancelled.Terminal() {
		t.Fatalf("delivered and cancelled are terminal")
	}
	for _, s := range []domain.OrderStatus{domain.StatusPending, domain.StatusProcessing, domain.StatusShipped, domain.StatusOutForDelivery} {
		if s.Terminal() {
			t.Fatalf("status %q must not be terminal", s)
		}
	}
}

func TestOrder_DisplayID(t *testing.T) {
	o := &domain.Order{ID: "local-1"}
	if o.DisplayID() != "local-1" {
		t.Fatalf("DisplayID = %q", o.DisplayID())
	}
	o.ShiprocketChannelID = "SR-55"
	if o.DisplayID() != "SR-55" {
		t.Fatalf("DisplayID = %q, external id must win", o.DisplayID())
	}
}
