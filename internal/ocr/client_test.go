package ocr

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"medreport/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestRecognizeWithRetry(t *testing.T) {
	attempt := 0

	cfg, _ := config.Load()
	cfg.OCRBaseURL = "https://ocr.example.test"
	cfg.OCRToken = "test"
	cfg.OCRRateLimitRPS = 1000

	client := NewClient(cfg)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/v1/recognize" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test" {
				t.Fatalf("unexpected auth header %q", got)
			}
			attempt++
			if attempt == 1 {
				return &http.Response{
					StatusCode: http.StatusServiceUnavailable,
					Body:       io.NopCloser(strings.NewReader(`{"error":"busy"}`)),
					Header:     make(http.Header),
				}, nil
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"text":"Hemoglobin: 10.2 g/dL (Low)","confidence":0.93}`)),
				Header:     make(http.Header),
			}, nil
		}),
	}

	res, err := client.Recognize(context.Background(), []byte{0xff, 0xd8})
	if err != nil {
		t.Fatal(err)
	}
	if attempt != 2 {
		t.Fatalf("attempts=%d", attempt)
	}
	if res.Confidence != 0.93 || !strings.Contains(res.Text, "Hemoglobin") {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRecognizeRequiresBaseURL(t *testing.T) {
	cfg, _ := config.Load()
	cfg.OCRBaseURL = ""
	if _, err := NewClient(cfg).Recognize(context.Background(), nil); err == nil {
		t.Fatal("expected error without OCR_BASE_URL")
	}
}
