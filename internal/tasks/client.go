package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Microsoft Graph To Do surface. With an account ID it
// addresses /users/{id}/todo, otherwise the delegated /me/todo.
type Client struct {
	baseURL string
	token   string
	userID  string
	client  *http.Client
}

func NewClient(baseURL, token, accountID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		userID:  accountID,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type graphList struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	WellKnownName string `json:"wellknownListName"`
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type graphTask struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Status          string         `json:"status"`
	CreatedDateTime time.Time      `json:"createdDateTime"`
	DueDateTime     *graphDateTime `json:"dueDateTime"`
}

type graphPage[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

func (c *Client) userPath() string {
	if c.userID == "" {
		return "me"
	}
	return "users/" + url.PathEscape(c.userID)
}

func (c *Client) listsURL() string {
	return c.baseURL + "/" + c.userPath() + "/todo/lists"
}

func (c *Client) tasksURL(listID string) string {
	return c.listsURL() + "/" + url.PathEscape(listID) + "/tasks"
}

// Lists fetches every to-do list, following pagination.
func (c *Client) Lists(ctx context.Context) ([]List, error) {
	var lists []List
	next := c.listsURL()
	for next != "" {
		var page graphPage[graphList]
		if err := c.get(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("fetching lists: %w", err)
		}
		for _, gl := range page.Value {
			lists = append(lists, List{ID: gl.ID, DisplayName: gl.DisplayName, WellKnown: gl.WellKnownName})
		}
		next = page.NextLink
	}
	return lists, nil
}

// Incomplete fetches every not-completed task in a list, oldest first,
// following pagination.
func (c *Client) Incomplete(ctx context.Context, listID string) ([]Item, error) {
	q := url.Values{}
	q.Set("$filter", "status ne 'completed'")
	q.Set("$orderby", "createdDateTime asc")

	var items []Item
	next := c.tasksURL(listID) + "?" + q.Encode()
	for next != "" {
		var page graphPage[graphTask]
		if err := c.get(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("fetching incomplete tasks: %w", err)
		}
		for _, gt := range page.Value {
			items = append(items, gt.toItem(listID))
		}
		next = page.NextLink
	}
	return items, nil
}

// RecentlyCompleted fetches the 20 most recently modified completed tasks in
// a list. One page only; the cap is the point.
func (c *Client) RecentlyCompleted(ctx context.Context, listID string) ([]Item, error) {
	q := url.Values{}
	q.Set("$filter", "status eq 'completed'")
	q.Set("$orderby", "lastModifiedDateTime desc")
	q.Set("$top", "20")

	var page graphPage[graphTask]
	if err := c.get(ctx, c.tasksURL(listID)+"?"+q.Encode(), &page); err != nil {
		return nil, fmt.Errorf("fetching completed tasks: %w", err)
	}
	items := make([]Item, 0, len(page.Value))
	for _, gt := range page.Value {
		items = append(items, gt.toItem(listID))
	}
	return items, nil
}

// Create adds a task with just a title and returns the stored item.
func (c *Client) Create(ctx context.Context, listID, title string) (Item, error) {
	var gt graphTask
	err := c.do(ctx, http.MethodPost, c.tasksURL(listID), map[string]string{"title": title}, &gt)
	if err != nil {
		return Item{}, fmt.Errorf("creating task: %w", err)
	}
	return gt.toItem(listID), nil
}

// SetStatus marks a task completed or not started.
func (c *Client) SetStatus(ctx context.Context, listID, taskID string, done bool) error {
	status := "notStarted"
	if done {
		status = "completed"
	}
	u := c.tasksURL(listID) + "/" + url.PathEscape(taskID)
	if err := c.do(ctx, http.MethodPatch, u, map[string]string{"status": status}, nil); err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	return nil
}

// Delete removes a task remotely.
func (c *Client) Delete(ctx context.Context, listID, taskID string) error {
	u := c.tasksURL(listID) + "/" + url.PathEscape(taskID)
	if err := c.do(ctx, http.MethodDelete, u, nil, nil); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (gt graphTask) toItem(listID string) Item {
	return Item{
		ID:        gt.ID,
		ListID:    listID,
		Title:     gt.Title,
		Done:      gt.Status == "completed",
		CreatedAt: gt.CreatedDateTime,
		DueAt:     gt.DueDateTime.local(),
	}
}

// local converts Graph's zone-less due stamp into local time. Due dates
// compare against local day boundaries, which is what the user sees.
func (d *graphDateTime) local() time.Time {
	if d == nil || d.DateTime == "" {
		return time.Time{}
	}
	s := d.DateTime
	if len(s) > 19 {
		s = s[:19]
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	return c.do(ctx, http.MethodGet, rawURL, nil, out)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("graph API %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
