package messages

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/user/memberchat/apperror"
	"github.com/user/memberchat/config"
)

// PaginatedResponse is the envelope returned when the client asks for a
// page: total count, links to the adjacent pages (null at the edges)
// and the page's results.
type PaginatedResponse struct {
	Count    int64             `json:"count" example:"42"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []MessageResponse `json:"results"`
}

// pageParams is the normalized pagination request.
type pageParams struct {
	Page     int
	PageSize int
	// Requested is false when the client sent no pagination params at
	// all, in which case the response is a bare array.
	Requested bool
}

// parsePageParams reads page/page_size from the query string. Page is
// 1-based and defaults to 1; page_size defaults to the configured page
// size and is clamped to the configured maximum.
func parsePageParams(query url.Values, cfg config.FeedConfig) (pageParams, error) {
	pageStr := query.Get("page")
	sizeStr := query.Get("page_size")

	params := pageParams{
		Page:      1,
		PageSize:  cfg.PageSize,
		Requested: pageStr != "" || sizeStr != "",
	}
	if !params.Requested {
		return params, nil
	}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, apperror.NewValidationError("page must be a positive integer", err)
		}
		params.Page = page
	}
	if sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return params, apperror.NewValidationError("page_size must be a positive integer", err)
		}
		if size > cfg.MaxPageSize {
			size = cfg.MaxPageSize
		}
		params.PageSize = size
	}
	return params, nil
}

// buildEnvelope wraps a feed page in the paginated response shape,
// computing next/previous links relative to the given path.
func buildEnvelope(path string, params pageParams, page *Page) PaginatedResponse {
	envelope := PaginatedResponse{
		Count:   page.Count,
		Results: page.Results,
	}
	if int64(params.Page)*int64(params.PageSize) < page.Count {
		next := pageURL(path, params.Page+1, params.PageSize)
		envelope.Next = &next
	}
	if params.Page > 1 {
		previous := pageURL(path, params.Page-1, params.PageSize)
		envelope.Previous = &previous
	}
	return envelope
}

func pageURL(path string, page, pageSize int) string {
	return fmt.Sprintf("%s?page=%d&page_size=%d", path, page, pageSize)
}
