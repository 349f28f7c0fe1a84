package client

import (
	"context"
	"net/url"
	"strconv"
)

// ArticleQuery shapes the article listing filters. Zero values are
// omitted from the request so the backend defaults apply.
type ArticleQuery struct {
	Search        string
	Category      string
	Source        string
	ImportanceMin int
	Hours         int
	Page          int
	PageSize      int
}

func (q ArticleQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Source != "" {
		v.Set("source", q.Source)
	}
	if q.ImportanceMin > 0 {
		v.Set("importance_min", strconv.Itoa(q.ImportanceMin))
	}
	if q.Hours > 0 {
		v.Set("hours", strconv.Itoa(q.Hours))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// ListArticles fetches a filtered, paginated page of articles.
func (c *Client) ListArticles(ctx context.Context, q ArticleQuery) (*ArticleList, error) {
	var out ArticleList
	if err := c.get(ctx, "/articles/", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrendingArticles fetches the most important articles of the last 24h.
func (c *Client) TrendingArticles(ctx context.Context, limit int) ([]Article, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out []Article
	if err := c.get(ctx, "/articles/trending", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetArticle fetches a single article by ID.
func (c *Client) GetArticle(ctx context.Context, id int) (*Article, error) {
	var out Article
	if err := c.get(ctx, "/articles/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArticleSources fetches per-source article counts.
func (c *Client) ArticleSources(ctx context.Context) ([]SourceCount, error) {
	var out []SourceCount
	if err := c.get(ctx, "/articles/sources", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ArticleCategories fetches per-category article counts.
func (c *Client) ArticleCategories(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	if err := c.get(ctx, "/articles/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
