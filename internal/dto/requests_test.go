package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func bindCreateOrder(t *testing.T, body string) (CreateOrderRequest, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	var out CreateOrderRequest
	err := binding.JSON.Bind(req, &out)
	return out, err
}

func TestCreateOrderRequestBinding(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError bool
		quantity  float64
	}{
		{
			name:     "positive quantity",
			body:     `{"coin_id":"bitcoin","quantity":2.5,"order_type":"BUY"}`,
			quantity: 2.5,
		},
		{
			name:     "zero quantity binds",
			body:     `{"coin_id":"bitcoin","quantity":0,"order_type":"BUY"}`,
			quantity: 0,
		},
		{
			name:     "quantity omitted binds as zero",
			body:     `{"coin_id":"bitcoin","order_type":"BUY"}`,
			quantity: 0,
		},
		{
			name: "negative quantity binds",
			// Rejected downstream by the order processor, not the binding.
			body:     `{"coin_id":"bitcoin","quantity":-1,"order_type":"SELL"}`,
			quantity: -1,
		},
		{
			name:      "missing coin id",
			body:      `{"quantity":1,"order_type":"BUY"}`,
			wantError: true,
		},
		{
			name:      "missing order type",
			body:      `{"coin_id":"bitcoin","quantity":1}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bindCreateOrder(t, tt.body)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.quantity, got.Quantity)
		})
	}
}

func TestAmountRequestsRejectNonPositive(t *testing.T) {
	for _, body := range []string{`{"amount":0}`, `{"amount":-10}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		var out AddMoneyRequest
		assert.Error(t, binding.JSON.Bind(req, &out), "body %s should not bind", body)
	}
}
