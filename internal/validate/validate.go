// Package validate provides input validation helpers for the Groclist CLI.
package validate

import (
	"net"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/karimwahba/groclist/internal/errors"
)

const (
	// MaxItemNameLength is the maximum length for an item name.
	MaxItemNameLength = 128
	// MaxQuantity is the upper bound for a single item quantity.
	MaxQuantity = 1_000_000
	// MaxPrice is the upper bound for a unit price.
	MaxPrice = 1_000_000.0
	// MaxURLLength is the maximum length for a URL.
	MaxURLLength = 2048
	// MaxChannelNameLength is the maximum length for a channel name.
	MaxChannelNameLength = 64
)

// ItemName validates a grocery item name.
func ItemName(name string) error {
	if name == "" {
		return errors.NewUserError("Item name cannot be empty", "Provide a name, like 'Milk' or 'Coffee beans'")
	}
	if utf8.RuneCountInString(name) > MaxItemNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Item name too long",
			"Item names must be 128 characters or fewer")
	}
	return nil
}

// Quantity validates an item quantity. Quantities must be at least 1.
func Quantity(quantity int) error {
	if quantity <= 0 {
		return errors.NewUserErrorWithField("quantity", strconv.Itoa(quantity),
			"Invalid quantity",
			"Quantity must be a positive whole number")
	}
	if quantity > MaxQuantity {
		return errors.NewUserErrorWithField("quantity", strconv.Itoa(quantity),
			"Quantity too large",
			"Quantity must be 1,000,000 or fewer")
	}
	return nil
}

// Price validates a unit price. Zero is allowed for free or unpriced items.
func Price(price float64) error {
	if price < 0 {
		return errors.NewUserErrorWithField("price", strconv.FormatFloat(price, 'f', -1, 64),
			"Invalid price",
			"Price cannot be negative")
	}
	if price > MaxPrice {
		return errors.NewUserErrorWithField("price", strconv.FormatFloat(price, 'f', -1, 64),
			"Price too large",
			"Price must be 1,000,000 or less")
	}
	return nil
}

// ChannelName validates an alert channel name.
func ChannelName(name string) error {
	if name == "" {
		return errors.NewUserError("Channel name cannot be empty", "Provide a short name, like 'phone' or 'family-discord'")
	}
	if utf8.RuneCountInString(name) > MaxChannelNameLength {
		return errors.NewUserErrorWithField("channel", name,
			"Channel name too long",
			"Channel names must be 64 characters or fewer")
	}
	return nil
}

// URL validates a URL for use as an alert channel endpoint.
func URL(rawURL string) error {
	if rawURL == "" {
		return errors.NewUserError("URL cannot be empty", "Provide a valid URL")
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL format",
			"Provide a valid URL starting with https://")
	}

	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL scheme",
			"URLs must use https:// (or http:// for localhost)")
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL: missing hostname",
			"Provide a valid URL like https://example.com/webhook")
	}

	isLocalhost := hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"

	// Require HTTPS for non-localhost
	if parsed.Scheme == "http" && !isLocalhost {
		return errors.NewUserErrorWithField("url", rawURL,
			"HTTP not allowed for external URLs",
			"Use https:// for security. HTTP is only allowed for localhost.")
	}

	// Check for internal IPs (SSRF protection)
	if !isLocalhost {
		if err := checkInternalIP(hostname); err != nil {
			return err
		}
	}

	return nil
}

// checkInternalIP checks if a hostname resolves to an internal IP.
func checkInternalIP(hostname string) error {
	// First check if it's a direct IP
	if ip := net.ParseIP(hostname); ip != nil {
		if isInternalIP(ip) {
			return errors.NewUserErrorWithField("url", hostname,
				"Internal IP addresses not allowed",
				"Channel URLs must point to external services")
		}
		return nil
	}

	// Try to resolve hostname
	ips, err := net.LookupIP(hostname)
	if err != nil {
		// DNS resolution failed - this is OK, delivery will fail later
		return nil
	}

	for _, ip := range ips {
		if isInternalIP(ip) {
			return errors.NewUserErrorWithField("url", hostname,
				"Hostname resolves to internal IP",
				"Channel URLs must point to external services")
		}
	}

	return nil
}

// isInternalIP checks if an IP is in a private/internal range.
func isInternalIP(ip net.IP) bool {
	privateRanges := []string{
		"10.0.0.0/8",     // RFC 1918
		"172.16.0.0/12",  // RFC 1918
		"192.168.0.0/16", // RFC 1918
		"127.0.0.0/8",    // Loopback (except explicit localhost check)
		"169.254.0.0/16", // Link-local
		"fc00::/7",       // IPv6 private
		"fe80::/10",      // IPv6 link-local
		"::1/128",        // IPv6 loopback
	}

	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		if network.Contains(ip) {
			return true
		}
	}

	return false
}
