// Package linkmeta fetches titles and descriptions for URLs attached to
// memos. YouTube links go through the oEmbed endpoint; everything else is
// scraped for OpenGraph tags. Fetch failures never propagate: the caller
// gets a fallback instead.
package linkmeta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/patrickmn/go-cache"
	"golang.org/x/net/html"

	"github.com/memolish/memolish-server/internal/config"
	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

const (
	maxTitleLen       = 512
	maxDescriptionLen = 1000
)

var youtubePattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{11})`)

var _ model.LinkParser = (*Parser)(nil)

type Parser struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
	logger    *logger.Logger
}

func New(cfg config.Link, logger *logger.Logger) *Parser {
	return &Parser{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		cache:     cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Parse returns metadata for rawURL, from cache when the URL was fetched
// recently. On any fetch or parse failure the result degrades to the URL
// itself as title with an empty description.
func (p *Parser) Parse(ctx context.Context, rawURL string) model.LinkMetadata {
	if cached, ok := p.cache.Get(rawURL); ok {
		return cached.(model.LinkMetadata)
	}

	var meta model.LinkMetadata
	if youtubePattern.MatchString(rawURL) {
		meta = p.parseYouTube(ctx, rawURL)
	} else {
		meta = p.parseWebpage(ctx, rawURL)
	}

	p.cache.Set(rawURL, meta, cache.DefaultExpiration)

	return meta
}

type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

func (p *Parser) parseYouTube(ctx context.Context, rawURL string) model.LinkMetadata {
	oembedURL := fmt.Sprintf("https://www.youtube.com/oembed?url=%s&format=json", url.QueryEscape(rawURL))

	body, err := p.get(ctx, oembedURL)
	if err != nil {
		p.logger.Warn("youtube oembed fetch failed", "url", rawURL, "error", err)
		return fallback(rawURL)
	}
	defer body.Close()

	var resp oembedResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		p.logger.Warn("youtube oembed decode failed", "url", rawURL, "error", err)
		return fallback(rawURL)
	}

	return model.LinkMetadata{
		Title:       resp.Title,
		Description: fmt.Sprintf("YouTube video by %s", resp.AuthorName),
	}
}

func (p *Parser) parseWebpage(ctx context.Context, rawURL string) model.LinkMetadata {
	body, err := p.get(ctx, rawURL)
	if err != nil {
		p.logger.Warn("webpage fetch failed", "url", rawURL, "error", err)
		return fallback(rawURL)
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		p.logger.Warn("webpage parse failed", "url", rawURL, "error", err)
		return fallback(rawURL)
	}

	tags := collectMetaTags(doc)

	title := tags.ogTitle
	if title == "" {
		title = tags.pageTitle
	}
	description := tags.ogDescription
	if description == "" {
		description = tags.metaDescription
	}

	return model.LinkMetadata{
		Title:       truncate(title, maxTitleLen),
		Description: truncate(description, maxDescriptionLen),
	}
}

func (p *Parser) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

type metaTags struct {
	ogTitle         string
	ogDescription   string
	metaDescription string
	pageTitle       string
}

func collectMetaTags(doc *html.Node) metaTags {
	var tags metaTags

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if tags.pageTitle == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					tags.pageTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var property, name, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property":
						property = attr.Val
					case "name":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				content = strings.TrimSpace(content)
				switch {
				case property == "og:title" && tags.ogTitle == "":
					tags.ogTitle = content
				case property == "og:description" && tags.ogDescription == "":
					tags.ogDescription = content
				case name == "description" && tags.metaDescription == "":
					tags.metaDescription = content
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return tags
}

func fallback(rawURL string) model.LinkMetadata {
	return model.LinkMetadata{Title: rawURL}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
