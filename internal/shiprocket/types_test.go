package shiprocket_test

import (
	"encoding/json"
	"testing"

	"github.com/Gunvolt24/shop_backend/internal/shiprocket"
)

// channel_order_id приходит то числом, то произвольной строкой —
// decode обязан принимать обе формы.
func TestCreateOrderResponse_DecodesNumberAndStringIDs(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantOrder   string
		wantChannel string
	}{
		{"numbers", `{"order_id":123,"channel_order_id":456}`, "123", "456"},
		{"numeric_strings", `{"order_id":"123","channel_order_id":"456"}`, "123", "456"},
		{"non_numeric_channel", `{"order_id":123,"channel_order_id":"SR-123"}`, "123", "SR-123"},
		{"null_channel", `{"order_id":123,"channel_order_id":null}`, "123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp shiprocket.CreateOrderResponse
			if err := json.Unmarshal([]byte(tt.raw), &resp); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.raw, err)
			}
			if resp.OrderID.String() != tt.wantOrder {
				t.Fatalf("order_id = %q, want %q", resp.OrderID, tt.wantOrder)
			}
			if resp.ChannelOrderID.String() != tt.wantChannel {
				t.Fatalf("channel_order_id = %q, want %q", resp.ChannelOrderID, tt.wantChannel)
			}
		})
	}
}
