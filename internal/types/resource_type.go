package types

import "strings"

// resourceTypeAliases maps the off-enum type strings AI models and
// scrapers tend to emit onto the nearest valid category.
var resourceTypeAliases = map[string]ResourceType{
  "tutorial":   ResourceVideo,
  "guide":      ResourceArticle,
  "document":   ResourceDocumentation,
  "doc":        ResourceDocumentation,
  "reference":  ResourceDocumentation,
  "test":       ResourceExercise,
  "example":    ResourceArticle,
  "sample":     ResourceArticle,
  "source":     ResourceArticle,
  "repo":       ResourceProject,
  "repository": ResourceProject,
  "github":     ResourceProject,
  "code":       ResourceProject,
}

// NormalizeResourceType coerces an arbitrary type string to a valid
// ResourceType, defaulting to article when nothing matches. Total over
// all inputs so persistence never sees an off-enum value.
func NormalizeResourceType(raw string) ResourceType {
  t := ResourceType(strings.ToLower(strings.TrimSpace(raw)))
  switch t {
  case ResourceVideo, ResourceArticle, ResourceDocumentation, ResourceExercise, ResourceProject:
    return t
  }
  if mapped, ok := resourceTypeAliases[string(t)]; ok {
    return mapped
  }
  return ResourceArticle
}
