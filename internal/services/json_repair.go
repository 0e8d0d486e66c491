package services

import (
  "encoding/json"
  "fmt"
  "regexp"
  "strings"
)

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// CleanAndParseJSON recovers a JSON document from raw model output.
// Models wrap JSON in markdown fences, pad it with prose, leave
// trailing commas, or truncate mid-structure; each of those is repaired
// in turn before giving up.
func CleanAndParseJSON(text string, dest any) error {
  if strings.TrimSpace(text) == "" {
    return fmt.Errorf("empty response")
  }

  cleaned := strings.ReplaceAll(text, "```json", "")
  cleaned = strings.ReplaceAll(cleaned, "```", "")
  cleaned = strings.TrimSpace(cleaned)

  if err := json.Unmarshal([]byte(cleaned), dest); err == nil {
    return nil
  }

  // Prose around the document: cut to the outermost structure,
  // whichever delimiter opens first.
  objStart := strings.IndexByte(cleaned, '{')
  arrStart := strings.IndexByte(cleaned, '[')
  if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
    if extracted, ok := extractBalanced(cleaned, '[', ']'); ok {
      cleaned = extracted
    }
  } else if extracted, ok := extractBalanced(cleaned, '{', '}'); ok {
    cleaned = extracted
  }

  if err := json.Unmarshal([]byte(cleaned), dest); err == nil {
    return nil
  }

  cleaned = trailingCommaRe.ReplaceAllString(cleaned, "$1")
  cleaned = closeTruncated(cleaned)

  if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
    preview := text
    if len(preview) > 300 {
      preview = preview[:300]
    }
    return fmt.Errorf("failed to parse model response: %w; text=%s", err, preview)
  }
  return nil
}

// extractBalanced returns the outermost span from the first open
// delimiter to the last close delimiter.
func extractBalanced(s string, open, closer byte) (string, bool) {
  start := strings.IndexByte(s, open)
  if start < 0 {
    return "", false
  }
  end := strings.LastIndexByte(s, closer)
  if end <= start {
    // truncated output may miss the closer entirely
    return s[start:], true
  }
  return s[start : end+1], true
}

// closeTruncated balances unclosed brackets on a cut-off document,
// dropping a dangling partial entry after the last complete one.
func closeTruncated(s string) string {
  openBraces := strings.Count(s, "{")
  closeBraces := strings.Count(s, "}")
  openBrackets := strings.Count(s, "[")
  closeBrackets := strings.Count(s, "]")

  if openBrackets <= closeBrackets && openBraces <= closeBraces {
    return s
  }

  lastComma := strings.LastIndex(s, ",")
  lastClose := strings.LastIndexAny(s, "]}")
  if lastComma > lastClose {
    s = s[:lastComma]
    openBraces = strings.Count(s, "{")
    closeBraces = strings.Count(s, "}")
    openBrackets = strings.Count(s, "[")
    closeBrackets = strings.Count(s, "]")
  }

  if n := openBrackets - closeBrackets; n > 0 {
    s += strings.Repeat("]", n)
  }
  if n := openBraces - closeBraces; n > 0 {
    s += strings.Repeat("}", n)
  }
  return s
}
