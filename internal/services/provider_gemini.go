package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strings"
  "time"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

// providerClient is one upstream AI API. Generate never returns a Go
// error: failures come back inside the AIResponse so the router can
// classify them (quota vs transient) and keep going.
type providerClient interface {
  Provider() types.AIProvider
  Generate(ctx context.Context, model, prompt string) types.AIResponse
}

const (
  providerRetries     = 2
  quotaCooldown       = time.Minute
  perDayCooldown      = time.Hour
  unavailableCooldown = 24 * time.Hour
)

type geminiClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  httpClient *http.Client
  sleep      func(time.Duration)
}

func NewGeminiClient(log *logger.Logger) providerClient {
  baseURL := os.Getenv("GEMINI_BASE_URL")
  if baseURL == "" {
    baseURL = "https://generativelanguage.googleapis.com"
  }
  return &geminiClient{
    log:        log.With("service", "GeminiClient"),
    baseURL:    strings.TrimRight(baseURL, "/"),
    apiKey:     os.Getenv("GEMINI_API_KEY"),
    httpClient: &http.Client{Timeout: 120 * time.Second},
    sleep:      time.Sleep,
  }
}

func (c *geminiClient) Provider() types.AIProvider { return types.ProviderGemini }

type geminiRequest struct {
  Contents []geminiContent `json:"contents"`
  GenerationConfig struct {
    ResponseMimeType string `json:"responseMimeType"`
  } `json:"generationConfig"`
}

type geminiContent struct {
  Role  string       `json:"role"`
  Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
  Text string `json:"text"`
}

type geminiResponse struct {
  Candidates []struct {
    Content struct {
      Parts []geminiPart `json:"parts"`
    } `json:"content"`
  } `json:"candidates"`
  Error *struct {
    Code    int    `json:"code"`
    Message string `json:"message"`
    Status  string `json:"status"`
  } `json:"error"`
}

func (c *geminiClient) Generate(ctx context.Context, model, prompt string) types.AIResponse {
  fail := func(errMsg string) types.AIResponse {
    return types.AIResponse{Success: false, Error: errMsg, Provider: types.ProviderGemini, Model: model}
  }

  req := geminiRequest{
    Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
  }
  req.GenerationConfig.ResponseMimeType = "application/json"

  for attempt := 0; attempt <= providerRetries; attempt++ {
    if ctx.Err() != nil {
      return fail(ctx.Err().Error())
    }

    start := time.Now()
    text, err := c.doOnce(ctx, model, req)
    if err == nil {
      return types.AIResponse{
        Success:      true,
        Text:         text,
        Provider:     types.ProviderGemini,
        Model:        model,
        ResponseTime: time.Since(start).Milliseconds(),
      }
    }

    errMsg := err.Error()
    if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "Too Many") {
      return types.AIResponse{
        Success:     false,
        Error:       "Rate limited",
        Provider:    types.ProviderGemini,
        Model:       model,
        RateLimited: true,
        Cooldown:    quotaCooldown,
      }
    }

    if attempt < providerRetries {
      delay := time.Duration(1<<attempt) * time.Second
      c.log.Warn("Gemini request retrying", "model", model, "attempt", attempt+1, "sleep", delay.String(), "error", errMsg)
      c.sleep(delay)
      continue
    }
    return fail(errMsg)
  }

  return fail("max retries exceeded")
}

func (c *geminiClient) doOnce(ctx context.Context, model string, body geminiRequest) (string, error) {
  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return "", err
  }

  url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
  if err != nil {
    return "", err
  }
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return "", err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", readErr
  }

  var decoded geminiResponse
  if err := json.Unmarshal(raw, &decoded); err != nil {
    return "", fmt.Errorf("gemini decode error: %w", err)
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    msg := resp.Status
    if decoded.Error != nil && decoded.Error.Message != "" {
      msg = decoded.Error.Message
    }
    return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode, msg)
  }

  if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
    return "", fmt.Errorf("empty response")
  }

  var sb strings.Builder
  for _, part := range decoded.Candidates[0].Content.Parts {
    sb.WriteString(part.Text)
  }
  text := sb.String()
  if strings.TrimSpace(text) == "" {
    return "", fmt.Errorf("empty response")
  }
  return text, nil
}
