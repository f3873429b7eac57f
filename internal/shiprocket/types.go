package shiprocket

import "encoding/json"

// Типы полезной нагрузки Shiprocket API. Имена полей — контракт внешнего
// сервиса, поэтому json-теги повторяют его формат в snake_case.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Data  struct {
		Token string `json:"token"`
	} `json:"data"`
}

// OrderItem — позиция заказа в терминах Shiprocket.
type OrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

// CreateOrderRequest — создание adhoc-заказа.
type CreateOrderRequest struct {
	OrderID           string      `json:"order_id"`
	OrderDate         string      `json:"order_date"`
	PickupLocation    string      `json:"pickup_location"`
	BillingCustomer   string      `json:"billing_customer_name"`
	BillingLastName   string      `json:"billing_last_name"`
	BillingAddress    string      `json:"billing_address"`
	BillingCity       string      `json:"billing_city"`
	BillingPincode    string      `json:"billing_pincode"`
	BillingState      string      `json:"billing_state"`
	BillingCountry    string      `json:"billing_country"`
	BillingEmail      string      `json:"billing_email"`
	BillingPhone      string      `json:"billing_phone"`
	ShippingIsBilling bool        `json:"shipping_is_billing"`
	OrderItems        []OrderItem `json:"order_items"`
	PaymentMethod     string      `json:"payment_method"`
	SubTotal          float64     `json:"sub_total"`
	Length            float64     `json:"length"`
	Breadth           float64     `json:"breadth"`
	Height            float64     `json:"height"`
	Weight            float64     `json:"weight"`
}

// FlexID — идентификатор, который сервис отдаёт то числом, то строкой
// (channel_order_id бывает и нечисловым, например "SR-123").
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string { return string(id) }

// CreateOrderResponse — идентификаторы, присвоенные Shiprocket.
type CreateOrderResponse struct {
	OrderID        FlexID `json:"order_id"`
	ChannelOrderID FlexID `json:"channel_order_id"`
	ShipmentID     FlexID `json:"shipment_id"`
	Status         string `json:"status"`
}

// RateRequest — запрос тарифов курьеров (serviceability).
type RateRequest struct {
	PickupPostcode   string  `json:"pickup_postcode"`
	DeliveryPostcode string  `json:"delivery_postcode"`
	Weight           float64 `json:"weight"`
	COD              int     `json:"cod"`
}

// ShipmentEvent — событие трека; из всего события нужен только current_status.
type ShipmentEvent struct {
	CurrentStatus string `json:"current_status"`
}

// TrackingData — данные отслеживания одной отправки.
type TrackingData struct {
	ShipmentTrack []ShipmentEvent `json:"shipment_track"`
}

type trackingEntry struct {
	TrackingData TrackingData `json:"tracking_data"`
}

// TrackingResponse — ответ /courier/track: массив объектов,
// индексированных channel_order_id. Форма сохранена как у сервиса.
type TrackingResponse []map[string]trackingEntry

// LatestStatus — текст статуса последнего события трека для заданного
// channel id; ("", false), если событий нет.
func (tr TrackingResponse) LatestStatus(channelID string) (string, bool) {
	for _, entry := range tr {
		data, ok := entry[channelID]
		if !ok {
			continue
		}
		track := data.TrackingData.ShipmentTrack
		if len(track) == 0 {
			return "", false
		}
		return track[len(track)-1].CurrentStatus, true
	}
	return "", false
}
