package netskope

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"urllistsync/internal/domain"
)

const listsPath = "/policy/urllist"

// Client speaks the URL list endpoints over a domain.Requester.
type Client struct {
	r domain.Requester
}

// NewClient returns a Client sending its calls through r.
func NewClient(r domain.Requester) *Client { return &Client{r: r} }

var _ domain.URLListAPI = (*Client)(nil)

func listPath(id string) string { return listsPath + "/" + url.PathEscape(id) }

// ListAll returns every URL list visible to the token.
func (c *Client) ListAll(ctx context.Context) ([]domain.ListSummary, error) {
	body, err := c.r.Request(ctx, http.MethodGet, listsPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeLists(body)
}

// Create posts a new exact-match list seeded with urls.
func (c *Client) Create(ctx context.Context, name string, urls []string) (domain.ListHandle, error) {
	body, err := c.r.Request(ctx, http.MethodPost, listsPath, writeBody{Name: name, Data: newListData(urls)})
	if err != nil {
		return domain.ListHandle{}, err
	}
	created, err := decodeCreated(body)
	if err != nil {
		return domain.ListHandle{}, err
	}
	h := domain.ListHandle{ID: created.Entry.id(), Name: created.Entry.Name}
	if h.Name == "" {
		h.Name = name
	}
	return h, nil
}

// Replace overwrites the list with urls. The body carries the list name.
func (c *Client) Replace(ctx context.Context, h domain.ListHandle, urls []string) error {
	_, err := c.r.Request(ctx, http.MethodPut, listPath(h.ID), writeBody{Name: h.Name, Data: newListData(urls)})
	return err
}

// Append adds urls to the list.
func (c *Client) Append(ctx context.Context, h domain.ListHandle, urls []string) error {
	_, err := c.r.Request(ctx, http.MethodPatch, listPath(h.ID)+"/append", appendBody{Data: newListData(urls)})
	return err
}

// Count fetches the list and counts its entries.
func (c *Client) Count(ctx context.Context, h domain.ListHandle) (int, bool, error) {
	body, err := c.r.Request(ctx, http.MethodGet, listPath(h.ID), nil)
	if err != nil {
		return 0, false, err
	}
	n, ok := decodeCount(body)
	return n, ok, nil
}

// Deploy activates pending list changes.
func (c *Client) Deploy(ctx context.Context) error {
	if _, err := c.r.Request(ctx, http.MethodPost, listsPath+"/deploy", nil); err != nil {
		return fmt.Errorf("deploy: %w", err)
	}
	return nil
}
