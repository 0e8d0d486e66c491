package scrapers

import (
  "strings"

  "github.com/skillforged/skillforged-backend/internal/types"
)

func link(title, url, category string) types.RelatedLink {
  return types.RelatedLink{Title: title, URL: url, Category: category}
}

func titleHasAny(lower string, keywords ...string) bool {
  for _, kw := range keywords {
    if strings.Contains(lower, kw) {
      return true
    }
  }
  return false
}

// RelatedLinks builds the curated reference links attached to a module:
// a general set every module gets plus topic-conditional extras keyed
// off the module title.
func RelatedLinks(moduleTitle string) []types.RelatedLink {
  lower := strings.ToLower(moduleTitle)

  links := []types.RelatedLink{
    link("Stack Overflow Community", "https://stackoverflow.com/", "Community"),
    link("Reddit r/learnprogramming", "https://www.reddit.com/r/learnprogramming/", "Community"),
    link("Dev.to Community", "https://dev.to/", "Community"),
    link("Visual Studio Code", "https://code.visualstudio.com/", "Tools"),
    link("GitHub - Version Control", "https://github.com/", "Tools"),
  }

  if titleHasAny(lower, "javascript", "web", "react", "typescript") {
    links = append(links,
      link("npm - JavaScript Package Manager", "https://www.npmjs.com/", "Tools"),
      link("Chrome DevTools Guide", "https://developer.chrome.com/docs/devtools/", "Tools"),
    )
  }
  if titleHasAny(lower, "python") {
    links = append(links,
      link("Python Package Index (PyPI)", "https://pypi.org/", "Tools"),
      link("Anaconda - Python Distribution", "https://www.anaconda.com/", "Tools"),
    )
  }
  if titleHasAny(lower, "test", "jest", "testing") {
    links = append(links,
      link("Jest Testing Framework", "https://jestjs.io/", "Testing"),
      link("Mocha Test Framework", "https://mochajs.org/", "Testing"),
    )
  }
  if titleHasAny(lower, "html", "css", "web", "react") {
    links = append(links,
      link("Can I Use - Browser Compatibility", "https://caniuse.com/", "Reference"),
      link("MDN Web Docs", "https://developer.mozilla.org/", "Reference"),
      link("CSS Reference Guide", "https://cssreference.io/", "Reference"),
    )
  }
  if titleHasAny(lower, "database", "sql", "mongodb", "postgres") {
    links = append(links,
      link("DB Fiddle - Online SQL Editor", "https://www.db-fiddle.com/", "Tools"),
      link("MongoDB Atlas", "https://www.mongodb.com/cloud/atlas", "Tools"),
    )
  }
  if titleHasAny(lower, "docker", "kubernetes", "aws", "cloud") {
    links = append(links,
      link("Docker Hub", "https://hub.docker.com/", "Cloud"),
      link("AWS Free Tier", "https://aws.amazon.com/free/", "Cloud"),
      link("Google Cloud Free Tier", "https://cloud.google.com/free", "Cloud"),
    )
  }
  if titleHasAny(lower, "machine learning", "ai", "tensorflow", "pytorch") {
    links = append(links,
      link("Google Colab - Free ML Notebooks", "https://colab.research.google.com/", "Tools"),
      link("Kaggle - ML Competitions", "https://www.kaggle.com/", "Community"),
    )
  }

  links = append(links,
    link("Codecademy - Interactive Learning", "https://www.codecademy.com/", "Learning Platform"),
    link("Exercism - Code Practice", "https://exercism.org/", "Practice"),
    link("LeetCode - Interview Prep", "https://leetcode.com/", "Practice"),
    link("HackerRank - Coding Challenges", "https://www.hackerrank.com/", "Practice"),
    link("DevDocs - Offline Documentation", "https://devdocs.io/", "Reference"),
    link("Awesome Lists - Curated Resources", "https://github.com/sindresorhus/awesome", "Reference"),
  )

  return links
}
