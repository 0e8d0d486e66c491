package scrapers

import (
  "strings"

  "github.com/skillforged/skillforged-backend/internal/types"
)

type docRule struct {
  keywords []string
  // exclude vetoes a match even when a keyword hits ("java" must not
  // fire on "javascript")
  exclude []string
  docs    []types.Resource
}

func doc(title, url, source string) types.Resource {
  return types.Resource{Title: title, URL: url, Type: types.ResourceDocumentation, Source: source}
}

var docRules = []docRule{
  {
    keywords: []string{"python"},
    docs: []types.Resource{
      doc("Python Official Documentation", "https://docs.python.org/3/", "Official Docs"),
      doc("Python Package Index (PyPI)", "https://pypi.org/", "Official Docs"),
    },
  },
  {
    keywords: []string{"javascript", "js"},
    docs: []types.Resource{
      doc("MDN JavaScript Guide", "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide", "MDN"),
      doc("ECMAScript Standard Specification", "https://tc39.es/ecma262/", "Official Docs"),
    },
  },
  {
    keywords: []string{"react"},
    docs: []types.Resource{
      doc("React Documentation", "https://react.dev/learn", "Official Docs"),
      doc("React API Reference", "https://react.dev/reference/react", "Official Docs"),
    },
  },
  {
    keywords: []string{"node"},
    docs: []types.Resource{
      doc("Node.js Documentation", "https://nodejs.org/docs/latest/api/", "Official Docs"),
      doc("Node.js API Reference", "https://nodejs.org/api/", "Official Docs"),
    },
  },
  {
    keywords: []string{"typescript", "ts"},
    docs: []types.Resource{
      doc("TypeScript Handbook", "https://www.typescriptlang.org/docs/handbook/", "Official Docs"),
      doc("TypeScript API Reference", "https://www.typescriptlang.org/docs/handbook/declaration-files/introduction.html", "Official Docs"),
    },
  },
  {
    keywords: []string{"java"},
    exclude:  []string{"javascript"},
    docs: []types.Resource{
      doc("Java Official Documentation", "https://docs.oracle.com/en/java/", "Official Docs"),
      doc("Java API Documentation", "https://docs.oracle.com/en/java/javase/21/docs/api/index.html", "Official Docs"),
    },
  },
  {
    keywords: []string{"c++", "cpp"},
    docs: []types.Resource{
      doc("C++ Reference", "https://en.cppreference.com/w/", "CPP Reference"),
      doc("ISO C++ Standard", "https://isocpp.org/std/the-standard", "Official Docs"),
    },
  },
  {
    keywords: []string{"c#", "csharp"},
    docs: []types.Resource{
      doc("C# Official Documentation", "https://learn.microsoft.com/en-us/dotnet/csharp/", "Official Docs"),
      doc(".NET Documentation", "https://learn.microsoft.com/en-us/dotnet/", "Official Docs"),
    },
  },
  {
    keywords: []string{"rust"},
    docs: []types.Resource{
      doc("The Rust Programming Language Book", "https://doc.rust-lang.org/book/", "Official Docs"),
      doc("Rust API Documentation", "https://docs.rs/", "Official Docs"),
    },
  },
  {
    keywords: []string{"golang", " go "},
    docs: []types.Resource{
      doc("Go Official Documentation", "https://go.dev/doc/", "Official Docs"),
      doc("Go Package Documentation", "https://pkg.go.dev/", "Official Docs"),
    },
  },
  {
    keywords: []string{"php"},
    docs: []types.Resource{
      doc("PHP Official Documentation", "https://www.php.net/docs.php", "Official Docs"),
      doc("PHP Function Reference", "https://www.php.net/manual/en/funcref.php", "Official Docs"),
    },
  },
  {
    keywords: []string{"sql", "database"},
    docs: []types.Resource{
      doc("SQL Tutorial - W3Schools", "https://www.w3schools.com/sql/", "W3Schools"),
      doc("PostgreSQL Documentation", "https://www.postgresql.org/docs/", "Official Docs"),
      doc("MySQL Documentation", "https://dev.mysql.com/doc/", "Official Docs"),
    },
  },
  {
    keywords: []string{"mongodb", "nosql"},
    docs: []types.Resource{
      doc("MongoDB Official Documentation", "https://docs.mongodb.com/", "Official Docs"),
      doc("MongoDB University Free Courses", "https://university.mongodb.com/", "Official Docs"),
    },
  },
  {
    keywords: []string{"algorithm", "data structure"},
    docs: []types.Resource{
      doc("Visualgo - Algorithm Visualizations", "https://visualgo.net/", "Visualgo"),
      doc("Big-O Cheatsheet", "https://www.bigocheatsheet.com/", "Reference"),
    },
  },
  {
    keywords: []string{"machine learning", "ml", "ai"},
    docs: []types.Resource{
      doc("Scikit-learn Documentation", "https://scikit-learn.org/stable/documentation.html", "Official Docs"),
      doc("TensorFlow Official Documentation", "https://www.tensorflow.org/learn", "Official Docs"),
      doc("PyTorch Documentation", "https://pytorch.org/docs/stable/index.html", "Official Docs"),
    },
  },
  {
    keywords: []string{"html", "css", "web"},
    docs: []types.Resource{
      doc("MDN Web Docs", "https://developer.mozilla.org/en-US/docs/Learn", "MDN"),
      doc("HTML5 Standard Specification", "https://html.spec.whatwg.org/", "Official Docs"),
      doc("CSS Official Specification", "https://www.w3.org/Style/CSS/", "Official Docs"),
    },
  },
  {
    keywords: []string{"docker", "container"},
    docs: []types.Resource{
      doc("Docker Official Documentation", "https://docs.docker.com/", "Official Docs"),
      doc("Docker Hub", "https://hub.docker.com/", "Official Docs"),
    },
  },
  {
    keywords: []string{"kubernetes", "k8s"},
    docs: []types.Resource{
      doc("Kubernetes Official Documentation", "https://kubernetes.io/docs/", "Official Docs"),
      doc("Kubernetes API Reference", "https://kubernetes.io/docs/reference/", "Official Docs"),
    },
  },
  {
    keywords: []string{"aws", "amazon"},
    docs: []types.Resource{
      doc("AWS Documentation", "https://docs.aws.amazon.com/", "Official Docs"),
      doc("AWS Services Reference", "https://docs.aws.amazon.com/index.html?nc2=h_ql_doc_do", "Official Docs"),
    },
  },
  {
    keywords: []string{"google cloud", "gcp"},
    docs: []types.Resource{
      doc("Google Cloud Documentation", "https://cloud.google.com/docs", "Official Docs"),
      doc("Google Cloud Services", "https://cloud.google.com/products", "Official Docs"),
    },
  },
  {
    keywords: []string{"azure", "microsoft"},
    docs: []types.Resource{
      doc("Azure Documentation", "https://learn.microsoft.com/en-us/azure/", "Official Docs"),
      doc("Azure Services Reference", "https://learn.microsoft.com/en-us/azure/?product=featured", "Official Docs"),
    },
  },
  {
    keywords: []string{"network", "tcp", "http", "api"},
    docs: []types.Resource{
      doc("HTTP/HTTPS Specifications", "https://tools.ietf.org/html/rfc7230", "Official Docs"),
      doc("TCP/IP Protocol Suite", "https://tools.ietf.org/html/rfc793", "Official Docs"),
      doc("REST API Best Practices", "https://restfulapi.net/", "Reference"),
    },
  },
}

// OfficialDocs returns curated documentation links matched against the
// topic. Purely local lookup; never touches the network.
func OfficialDocs(topic string) []types.Resource {
  lower := strings.ToLower(topic)

  var out []types.Resource
rules:
  for _, rule := range docRules {
    for _, ex := range rule.exclude {
      if strings.Contains(lower, ex) {
        continue rules
      }
    }
    for _, kw := range rule.keywords {
      if strings.Contains(lower, kw) {
        out = append(out, rule.docs...)
        continue rules
      }
    }
  }
  return out
}
