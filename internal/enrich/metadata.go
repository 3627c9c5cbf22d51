package enrich

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Pages larger than this are scanned only up to the cap; title and icon
// tags live in the head, so the tail is never needed.
const maxHTMLBytes = 2 << 20

// Fetcher derives title, favicon, and summary for newly saved URLs.
// Failures never surface as errors; callers always get usable fallbacks.
type Fetcher struct {
	client      *http.Client
	summaryBase string
	log         *zap.Logger
}

func New(timeout time.Duration, summaryBase string, log *zap.Logger) *Fetcher {
	return &Fetcher{
		client:      &http.Client{Timeout: timeout},
		summaryBase: strings.TrimRight(summaryBase, "/"),
		log:         log,
	}
}

// TitleAndFavicon fetches the page at rawURL and extracts a display title
// and an absolute favicon URL. On any failure it falls back to the URL's
// hostname and an empty favicon.
func (f *Fetcher) TitleAndFavicon(ctx context.Context, rawURL string) (string, string) {
	full := normalizeScheme(rawURL)

	u, err := url.Parse(full)
	if err != nil || u.Hostname() == "" {
		return full, ""
	}
	host := u.Hostname()
	origin := u.Scheme + "://" + u.Host

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return host, ""
	}
	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn("page fetch failed", zap.String("url", full), zap.Error(err))
		return host, ""
	}
	defer resp.Body.Close()

	meta := parsePage(io.LimitReader(resp.Body, maxHTMLBytes))

	title := strings.TrimSpace(meta.ogTitle)
	if title == "" {
		title = strings.TrimSpace(meta.title)
	}
	if title == "" {
		title = host
	}

	favicon := ""
	if meta.iconHref != "" {
		favicon = resolveFavicon(meta.iconHref, origin)
	} else if f.probeDefaultFavicon(ctx, origin) {
		favicon = origin + "/favicon.ico"
	}

	return title, favicon
}

type pageMeta struct {
	ogTitle  string
	title    string
	iconHref string
}

// parsePage tokenizes the document and picks out the first og:title meta,
// the first <title> text, and the first icon <link>. Malformed markup ends
// the scan without error; missing fields stay empty.
func parsePage(r io.Reader) pageMeta {
	var m pageMeta
	var ogSeen, titleSeen bool

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return m
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		switch string(name) {
		case "meta":
			attrs := tagAttrs(z, hasAttr)
			if !ogSeen && attrs["property"] == "og:title" {
				ogSeen = true
				m.ogTitle = attrs["content"]
			}
		case "link":
			attrs := tagAttrs(z, hasAttr)
			if m.iconHref == "" && isIconRel(attrs["rel"]) && attrs["href"] != "" {
				m.iconHref = attrs["href"]
			}
		case "title":
			if !titleSeen && tt == html.StartTagToken {
				titleSeen = true
				if z.Next() == html.TextToken {
					m.title = string(z.Text())
				}
			}
		}
	}
}

func tagAttrs(z *html.Tokenizer, hasAttr bool) map[string]string {
	attrs := map[string]string{}
	for hasAttr {
		k, v, more := z.TagAttr()
		attrs[strings.ToLower(string(k))] = string(v)
		hasAttr = more
	}
	return attrs
}

func isIconRel(rel string) bool {
	rel = strings.ToLower(strings.TrimSpace(rel))
	for _, p := range []string{"icon", "shortcut icon", "apple-touch-icon"} {
		if strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}

// resolveFavicon turns a link href into an absolute URL against the page
// origin. Already-absolute hrefs pass through untouched.
func resolveFavicon(href, origin string) string {
	switch {
	case strings.HasPrefix(href, "/"):
		return origin + href
	case !strings.HasPrefix(href, "http"):
		return origin + "/" + href
	default:
		return href
	}
}

func (f *Fetcher) probeDefaultFavicon(ctx context.Context, origin string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, origin+"/favicon.ico", nil)
	if err != nil {
		return false
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// normalizeScheme prefixes https:// when the input carries no scheme,
// matching how saved URLs are normalized everywhere else.
func normalizeScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://" + raw
}
