package client

import (
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/render"
	"github.com/qtje/comic/internal/service"
)

const accountHeader = "X-Account-ID"

// APIError carries a non-2xx response body back to the caller.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Body)
}

// Client is a typed wrapper over the comic HTTP API. The account id, when
// set, is sent on every request as the acting account.
type Client struct {
	http *resty.Client
}

func New(server, account string) *Client {
	c := resty.New().SetBaseURL(server)
	if account != "" {
		c.SetHeader(accountHeader, account)
	}
	return &Client{http: c}
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if res.IsError() {
		return &APIError{Status: res.StatusCode(), Body: res.String()}
	}
	return nil
}

// GetPage resolves a page as of the given timestamp; an empty timestamp
// means now.
func (c *Client) GetPage(key, at string) (*render.SafePage, error) {
	var page render.SafePage
	req := c.http.R().SetResult(&page)
	if at != "" {
		req.SetQueryParam("at", at)
	}

	res, err := req.Get("/v1/pages/" + key)
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) RenderPage(key, at string) (*render.Rendered, error) {
	var out render.Rendered
	req := c.http.R().SetResult(&out)
	if at != "" {
		req.SetQueryParam("at", at)
	}

	res, err := req.Get("/v1/pages/" + key + "/render")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePage(in service.PageInput) (*model.ComicPage, error) {
	var page model.ComicPage
	res, err := c.http.R().SetBody(in).SetResult(&page).Post("/v1/pages")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdatePage(key string, in service.PageInput) (*model.ComicPage, error) {
	var page model.ComicPage
	res, err := c.http.R().SetBody(in).SetResult(&page).Put("/v1/pages/" + key)
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ListPages(owner string) ([]*model.ComicPage, error) {
	var out struct {
		Pages []*model.ComicPage `json:"pages"`
	}

	req := c.http.R().SetResult(&out)
	if owner != "" {
		req.SetQueryParam("owner", owner)
	}

	res, err := req.Get("/v1/pages")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return out.Pages, nil
}

// AddLink creates a navigation link acting through the given alias,
// optionally with its reciprocal.
func (c *Client) AddLink(fromKey, toKey, kind string, ownerHK uint, reciprocate bool) (*model.ComicLink, error) {
	body := map[string]any{
		"from_key":    fromKey,
		"to_key":      toKey,
		"kind":        kind,
		"owner_hk":    ownerHK,
		"reciprocate": reciprocate,
	}

	var link model.ComicLink
	res, err := c.http.R().SetBody(body).SetResult(&link).Post("/v1/links")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) RemoveLink(id uint) error {
	res, err := c.http.R().Delete(fmt.Sprintf("/v1/links/%d", id))
	return check(res, err)
}

func (c *Client) ListAliases(owner string) ([]*model.Alias, []string, error) {
	var out struct {
		Aliases    []*model.Alias `json:"aliases"`
		SearchKeys []string       `json:"search_keys"`
	}

	req := c.http.R().SetResult(&out)
	if owner != "" {
		req.SetQueryParam("owner", owner)
	}

	res, err := req.Get("/v1/aliases")
	if err := check(res, err); err != nil {
		return nil, nil, err
	}
	return out.Aliases, out.SearchKeys, nil
}

// RecentFeed returns the latest page saves, newest first.
func (c *Client) RecentFeed() ([]service.FeedEntry, error) {
	var out struct {
		Feed []service.FeedEntry `json:"feed"`
	}

	res, err := c.http.R().SetResult(&out).Get("/v1/feed")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return out.Feed, nil
}

func (c *Client) CreateAlias(displayName string) (*model.Alias, error) {
	var alias model.Alias
	res, err := c.http.R().
		SetBody(map[string]string{"display_name": displayName}).
		SetResult(&alias).
		Post("/v1/aliases")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &alias, nil
}
