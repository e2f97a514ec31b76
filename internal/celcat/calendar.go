package celcat

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
)

const (
	calendarPath = "/Home/GetCalendarData"

	// DefaultColourScheme is the scheme used by the web UI
	DefaultColourScheme = 3
)

// FetchCalendar returns the courses of one resource within the request window
func (c *Client) FetchCalendar(ctx context.Context, req CalendarRequest) ([]Course, error) {
	view := req.View
	if view == "" {
		view = ViewMonth
	}
	scheme := req.ColourScheme
	if scheme == 0 {
		scheme = DefaultColourScheme
	}

	var courses []Course
	err := c.do(ctx, http.MethodPost, calendarPath, func(r *resty.Request) {
		r.SetFormData(map[string]string{
			"start":         req.Start.Format(DateTimeLayout),
			"end":           req.End.Format(DateTimeLayout),
			"resType":       req.ResourceType.String(),
			"calView":       string(view),
			"federationIds": req.FederationIDs,
			"colourScheme":  strconv.Itoa(scheme),
		})
	}, &courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}
