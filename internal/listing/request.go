package listing

import (
	"net/url"
	"strconv"
)

// ReadRequest is one of DetailRequest, OwnerListRequest, PublicListRequest
// or AllRowsRequest.
type ReadRequest interface {
	readRequest()
}

type DetailRequest struct {
	ID int64
}

type OwnerListRequest struct {
	Page  Page
	Title string
}

type PublicListRequest struct {
	Page     Page
	Location string
	Category string
}

type AllRowsRequest struct{}

func (DetailRequest) readRequest()     {}
func (OwnerListRequest) readRequest()  {}
func (PublicListRequest) readRequest() {}
func (AllRowsRequest) readRequest()    {}

type ReadOptions struct {
	// MaxLimit caps the page size; zero means no cap.
	MaxLimit int
	// LegacyListAll keeps the unpaginated fallback. When false, a request
	// without id, my or page is served as the first public page.
	LegacyListAll bool
}

// ParseReadRequest picks the read mode with precedence id, my, page.
func ParseReadRequest(query url.Values, opts ReadOptions) (ReadRequest, error) {
	if raw := query.Get("id"); raw != "" {
		id, err := ParseRoomID(raw)
		if err != nil {
			return nil, err
		}
		return DetailRequest{ID: id}, nil
	}

	if query.Get("my") != "" {
		return OwnerListRequest{
			Page:  ParsePage(query, opts.MaxLimit),
			Title: query.Get("q"),
		}, nil
	}

	if query.Get("page") != "" || !opts.LegacyListAll {
		return PublicListRequest{
			Page:     ParsePage(query, opts.MaxLimit),
			Location: query.Get("location"),
			Category: query.Get("category"),
		}, nil
	}

	return AllRowsRequest{}, nil
}

func ParseRoomID(raw string) (id int64, err error) {
	if id, err = strconv.ParseInt(raw, 10, 64); err != nil {
		err = invalidInput("Invalid room ID", err)
	}
	return
}
