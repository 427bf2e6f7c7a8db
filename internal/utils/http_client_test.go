package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("https://example.com", time.Second)

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}
	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_AppliesConfiguration(t *testing.T) {
	client := NewHTTPClient("https://example.com", 3*time.Second)

	if got := client.BaseURL; got != "https://example.com" {
		t.Fatalf("expected base URL to be applied, got %q", got)
	}
	if got := client.GetClient().Timeout; got != 3*time.Second {
		t.Fatalf("expected timeout 3s, got %v", got)
	}
}

func TestNewHTTPClient_ZeroTimeoutKeepsDefault(t *testing.T) {
	client := NewHTTPClient("https://example.com", 0)

	if got := client.GetClient().Timeout; got != 0 {
		t.Fatalf("expected no explicit timeout, got %v", got)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("https://one.example.com", time.Second)
	client2 := NewHTTPClient("https://two.example.com", time.Second)

	if client1.Client == client2.Client {
		t.Fatal("expected independent *resty.Client instances")
	}
}
