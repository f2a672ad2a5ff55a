package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// ResourceAPI is the paged /api/students resource:
//
//	GET    /api/students?page={n}&size={s}
//	POST   /api/students
//	PUT    /api/students/{id}
//	DELETE /api/students/{id}
type ResourceAPI struct {
	client
}

var _ API[types.Student] = (*ResourceAPI)(nil)

// NewResource creates a ResourceAPI. baseURL is normalized with
// ResolveBaseURL; a nil hc selects http.DefaultClient.
func NewResource(baseURL string, hc *http.Client) *ResourceAPI {
	return &ResourceAPI{client: newClient(baseURL, hc)}
}

// List requests one page. A missing _embedded object means no records.
func (a *ResourceAPI) List(ctx context.Context, page, size int) (types.Page[types.Student], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	data, err := a.do(ctx, OpList, http.MethodGet, "/api/students?"+q.Encode(), nil)
	if err != nil {
		return types.Page[types.Student]{}, err
	}

	var env types.HALPage
	if err := json.Unmarshal(data, &env); err != nil {
		return types.Page[types.Student]{}, decodeError(OpList, err)
	}

	items := []types.Student{}
	if env.Embedded != nil && env.Embedded.Students != nil {
		items = env.Embedded.Students
	}
	return types.Page[types.Student]{
		Items:         items,
		Size:          env.Page.Size,
		TotalElements: env.Page.TotalElements,
		TotalPages:    env.Page.TotalPages,
		Number:        env.Page.Number,
	}, nil
}

// Create posts s without an id.
func (a *ResourceAPI) Create(ctx context.Context, s types.Student) error {
	s.ID = 0
	_, err := a.do(ctx, OpCreate, http.MethodPost, "/api/students", s)
	return err
}

// Update replaces the record with a PUT of the whole body.
func (a *ResourceAPI) Update(ctx context.Context, s types.Student) error {
	_, err := a.do(ctx, OpUpdate, http.MethodPut, "/api/students/"+strconv.FormatInt(s.ID, 10), s)
	return err
}

func (a *ResourceAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.do(ctx, OpDelete, http.MethodDelete, "/api/students/"+strconv.FormatInt(id, 10), nil)
	return err
}
