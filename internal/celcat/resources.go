package celcat

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const resourcesPath = "/Home/ReadResourceListItems"

// ListResources returns one page of resources matching the search term
func (c *Client) ListResources(ctx context.Context, req ResourceListRequest) (*ResourceList, error) {
	var list ResourceList
	err := c.do(ctx, http.MethodGet, resourcesPath, func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"myResources": strconv.FormatBool(req.MyResources),
			"searchTerm":  req.SearchTerm,
			"pageSize":    strconv.Itoa(req.PageSize),
			"pageNumber":  strconv.Itoa(req.PageNumber),
			"resType":     req.ResourceType.String(),
			"_":           strconv.FormatInt(time.Now().UnixMilli(), 10),
		})
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}
