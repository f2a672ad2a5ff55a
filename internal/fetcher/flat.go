package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// FlatAPI is the endpoint family without server-side paging:
//
//	GET    /api/all         list every record
//	POST   /api/save        create, or update when the body carries an id
//	DELETE /api/delete/{id} delete
type FlatAPI struct {
	client
}

var _ API[types.Eleve] = (*FlatAPI)(nil)

// NewFlat creates a FlatAPI. baseURL is normalized with ResolveBaseURL; a
// nil hc selects http.DefaultClient.
func NewFlat(baseURL string, hc *http.Client) *FlatAPI {
	return &FlatAPI{client: newClient(baseURL, hc)}
}

// List ignores page and size: /api/all has no paging. A body that is
// valid JSON but not an array yields an empty page.
func (a *FlatAPI) List(ctx context.Context, page, size int) (types.Page[types.Eleve], error) {
	data, err := a.do(ctx, OpList, http.MethodGet, "/api/all", nil)
	if err != nil {
		return types.Page[types.Eleve]{}, err
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Page[types.Eleve]{}, decodeError(OpList, err)
	}

	items := []types.Eleve{}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return types.Page[types.Eleve]{}, decodeError(OpList, err)
		}
	}

	return types.Page[types.Eleve]{
		Items:         items,
		Size:          size,
		TotalElements: len(items),
		Number:        page,
	}, nil
}

// Create posts e without an id.
func (a *FlatAPI) Create(ctx context.Context, e types.Eleve) error {
	e.ID = 0
	_, err := a.do(ctx, OpCreate, http.MethodPost, "/api/save", e)
	return err
}

// Update posts the whole record, id included, to the save endpoint.
func (a *FlatAPI) Update(ctx context.Context, e types.Eleve) error {
	_, err := a.do(ctx, OpUpdate, http.MethodPost, "/api/save", e)
	return err
}

func (a *FlatAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.do(ctx, OpDelete, http.MethodDelete, "/api/delete/"+strconv.FormatInt(id, 10), nil)
	return err
}
