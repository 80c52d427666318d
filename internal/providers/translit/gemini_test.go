package translit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scriptbridge/internal/domain"
)

func geminiServer(t *testing.T, status int, body string, onRequest func(r *http.Request, payload geminiRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request payload: %v", err)
		}
		if onRequest != nil {
			onRequest(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func candidateBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + strconvQuote(text) + `}]}}]}`
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestConvertBuildsSingleTurnPrompt(t *testing.T) {
	var seen geminiRequest
	var path, apiKey string
	srv := geminiServer(t, http.StatusOK, candidateBody("মৈ তুমসে"), func(r *http.Request, payload geminiRequest) {
		seen = payload
		path = r.URL.Path
		apiKey = r.Header.Get("x-goog-api-key")
	})
	defer srv.Close()

	conv := NewGeminiConverter(GeminiOptions{APIKey: "k-123", BaseURL: srv.URL, HTTPClient: srv.Client()})
	res, err := conv.Convert(context.Background(), domain.ConversionRequest{
		Text: "Main tumse pyar karta hoon",
		Pair: domain.PairHinglishHindi,
	})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if res.ConvertedText == "" {
		t.Fatal("ConvertedText is empty")
	}
	if apiKey != "k-123" {
		t.Fatalf("x-goog-api-key = %q", apiKey)
	}
	if !strings.Contains(path, "gemini-2.0-flash-exp:generateContent") {
		t.Fatalf("unexpected path %q", path)
	}
	if len(seen.Contents) != 1 || len(seen.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected contents shape: %#v", seen.Contents)
	}
	prompt := seen.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Hinglish to Hindi script converter") {
		t.Fatalf("prompt missing Hinglish instruction: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Convert this text:\nMain tumse pyar karta hoon") {
		t.Fatalf("prompt missing literal user text: %q", prompt)
	}
	if seen.GenerationConfig == nil || seen.GenerationConfig.Temperature != 0.3 || seen.GenerationConfig.MaxOutputTokens != 2048 {
		t.Fatalf("unexpected generation config: %#v", seen.GenerationConfig)
	}
}

func TestConvertMissingAPIKeyMakesNoCall(t *testing.T) {
	called := false
	srv := geminiServer(t, http.StatusOK, candidateBody("x"), func(*http.Request, geminiRequest) { called = true })
	defer srv.Close()

	conv := NewGeminiConverter(GeminiOptions{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := conv.Convert(context.Background(), domain.ConversionRequest{Text: "kemon acho", Pair: domain.PairBenglishBangla})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if called {
		t.Fatal("provider was called despite missing API key")
	}
}

func TestConvertUpstreamStatusBecomesUpstreamError(t *testing.T) {
	srv := geminiServer(t, http.StatusTooManyRequests, `{"error":{"message":"secret provider detail"}}`, nil)
	defer srv.Close()

	conv := NewGeminiConverter(GeminiOptions{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := conv.Convert(context.Background(), domain.ConversionRequest{Text: "ami tomake bhalobashi", Pair: domain.PairBenglishBangla})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if strings.Contains(err.Error(), "secret provider detail") {
		t.Fatalf("provider payload leaked into error: %v", err)
	}
}

func TestConvertTransportFailureBecomesUpstreamError(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, candidateBody("x"), nil)
	srv.Close() // connection refused from here on

	conv := NewGeminiConverter(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	_, err := conv.Convert(context.Background(), domain.ConversionRequest{Text: "bhalo", Pair: domain.PairBenglishBangla})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestConvertEmptyCandidatesYieldEmptyText(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `{"candidates":[]}`, nil)
	defer srv.Close()

	conv := NewGeminiConverter(GeminiOptions{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	res, err := conv.Convert(context.Background(), domain.ConversionRequest{Text: "kichu", Pair: domain.PairBenglishBangla})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if res.ConvertedText != "" {
		t.Fatalf("ConvertedText = %q, want empty", res.ConvertedText)
	}
}

func TestConvertRejectsEmptyText(t *testing.T) {
	conv := NewGeminiConverter(GeminiOptions{APIKey: "k"})
	_, err := conv.Convert(context.Background(), domain.ConversionRequest{Text: "   ", Pair: domain.PairBenglishBangla})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
