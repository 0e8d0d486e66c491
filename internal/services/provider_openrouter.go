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

type openRouterClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  referer    string
  httpClient *http.Client
  sleep      func(time.Duration)
}

func NewOpenRouterClient(log *logger.Logger) providerClient {
  baseURL := os.Getenv("OPENROUTER_BASE_URL")
  if baseURL == "" {
    baseURL = "https://openrouter.ai"
  }
  referer := os.Getenv("APP_URL")
  if referer == "" {
    referer = "http://localhost:3000"
  }
  return &openRouterClient{
    log:        log.With("service", "OpenRouterClient"),
    baseURL:    strings.TrimRight(baseURL, "/"),
    apiKey:     os.Getenv("OPENROUTER_API_KEY"),
    referer:    referer,
    httpClient: &http.Client{Timeout: 120 * time.Second},
    sleep:      time.Sleep,
  }
}

func (c *openRouterClient) Provider() types.AIProvider { return types.ProviderOpenRouter }

type openRouterRequest struct {
  Model       string              `json:"model"`
  Messages    []openRouterMessage `json:"messages"`
  Temperature float64             `json:"temperature"`
  MaxTokens   int                 `json:"max_tokens"`
}

type openRouterMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type openRouterResponse struct {
  Choices []struct {
    Message openRouterMessage `json:"message"`
  } `json:"choices"`
  Error *struct {
    Message string `json:"message"`
  } `json:"error"`
}

func (c *openRouterClient) Generate(ctx context.Context, model, prompt string) types.AIResponse {
  fail := func(errMsg string) types.AIResponse {
    return types.AIResponse{Success: false, Error: errMsg, Provider: types.ProviderOpenRouter, Model: model}
  }

  body := openRouterRequest{
    Model:       model,
    Messages:    []openRouterMessage{{Role: "user", Content: prompt}},
    Temperature: 0.7,
    MaxTokens:   4096,
  }

  for attempt := 0; attempt <= providerRetries; attempt++ {
    if ctx.Err() != nil {
      return fail(ctx.Err().Error())
    }

    start := time.Now()
    text, limited, err := c.doOnce(ctx, body)
    if limited != nil {
      return *limited
    }
    if err == nil {
      return types.AIResponse{
        Success:      true,
        Text:         text,
        Provider:     types.ProviderOpenRouter,
        Model:        model,
        ResponseTime: time.Since(start).Milliseconds(),
      }
    }

    if attempt < providerRetries {
      delay := time.Duration(1<<attempt) * time.Second
      c.log.Warn("OpenRouter request retrying", "model", model, "attempt", attempt+1, "sleep", delay.String(), "error", err.Error())
      c.sleep(delay)
      continue
    }
    return fail(err.Error())
  }

  return fail("max retries exceeded")
}

// doOnce returns limited non-nil when the upstream reported quota or
// model-availability trouble; those terminate the attempt loop at once.
func (c *openRouterClient) doOnce(ctx context.Context, body openRouterRequest) (string, *types.AIResponse, error) {
  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return "", nil, err
  }

  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/chat/completions", &buf)
  if err != nil {
    return "", nil, err
  }
  req.Header.Set("Content-Type", "application/json")
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("HTTP-Referer", c.referer)
  req.Header.Set("X-Title", "SkillForged")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return "", nil, err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", nil, readErr
  }

  var decoded openRouterResponse
  _ = json.Unmarshal(raw, &decoded)

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    errMsg := resp.Status
    if decoded.Error != nil && decoded.Error.Message != "" {
      errMsg = decoded.Error.Message
    }

    if strings.Contains(errMsg, "Rate limit") || strings.Contains(errMsg, "per-day") || strings.Contains(errMsg, "per-min") {
      cooldown := quotaCooldown
      if strings.Contains(errMsg, "per-day") {
        cooldown = perDayCooldown
      }
      return "", &types.AIResponse{
        Success:     false,
        Error:       "Rate limited",
        Provider:    types.ProviderOpenRouter,
        Model:       body.Model,
        RateLimited: true,
        Cooldown:    cooldown,
      }, nil
    }

    if strings.Contains(errMsg, "not a valid model") || strings.Contains(errMsg, "No endpoints") {
      return "", &types.AIResponse{
        Success:     false,
        Error:       "Model unavailable",
        Provider:    types.ProviderOpenRouter,
        Model:       body.Model,
        RateLimited: true,
        Cooldown:    unavailableCooldown,
      }, nil
    }

    return "", nil, fmt.Errorf("openrouter http %d: %s", resp.StatusCode, errMsg)
  }

  if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
    return "", nil, fmt.Errorf("empty response")
  }
  return decoded.Choices[0].Message.Content, nil, nil
}
