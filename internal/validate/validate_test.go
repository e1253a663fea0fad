package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karimwahba/groclist/internal/errors"
)

func TestItemName(t *testing.T) {
	assert.NoError(t, ItemName("Milk"))
	assert.NoError(t, ItemName("Café au lait"))

	err := ItemName("")
	assert.Error(t, err)
	assert.True(t, errors.IsUserError(err))

	assert.Error(t, ItemName(strings.Repeat("x", MaxItemNameLength+1)))
}

func TestQuantity(t *testing.T) {
	assert.NoError(t, Quantity(1))
	assert.NoError(t, Quantity(12))

	assert.Error(t, Quantity(0))
	assert.Error(t, Quantity(-5))
	assert.Error(t, Quantity(MaxQuantity+1))
}

func TestPrice(t *testing.T) {
	assert.NoError(t, Price(0))
	assert.NoError(t, Price(3.49))

	assert.Error(t, Price(-0.01))
	assert.Error(t, Price(MaxPrice+1))
}

func TestChannelName(t *testing.T) {
	assert.NoError(t, ChannelName("phone"))
	assert.Error(t, ChannelName(""))
	assert.Error(t, ChannelName(strings.Repeat("a", MaxChannelNameLength+1)))
}

func TestURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://discord.com/api/webhooks/123/abc", false},
		{"localhost http", "http://localhost:8080/hook", false},
		{"loopback http", "http://127.0.0.1:9000/hook", false},
		{"empty", "", true},
		{"bad scheme", "ftp://example.com/hook", true},
		{"http external", "http://example.com/hook", true},
		{"missing host", "https://", true},
		{"private ip", "https://192.168.1.10/hook", true},
		{"link local", "https://169.254.1.1/hook", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := URL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeItemName(t *testing.T) {
	assert.Equal(t, "Milk", SanitizeItemName("  Milk \n"))
	assert.Equal(t, "ab", SanitizeItemName("a\x00b"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "long st...", TruncateString("long string here", 10))
	assert.Equal(t, "lo", TruncateString("long", 2))
}
