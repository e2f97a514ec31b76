package celcat

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

const eventPath = "/Home/GetSideBarEvent"

// FetchEvent returns the side bar detail record of one course
func (c *Client) FetchEvent(ctx context.Context, courseID string) (*Event, error) {
	var event Event
	err := c.do(ctx, http.MethodPost, eventPath, func(r *resty.Request) {
		r.SetFormData(map[string]string{"eventId": courseID})
	}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
