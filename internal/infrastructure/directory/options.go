package directory

import (
	"net/http"
	"time"
)

type Option func(*Client)

func EventID(id string) Option {
	return func(c *Client) {
		c.eventID = id
	}
}

func Timeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func HTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}
