package bitbucket

import (
	"fmt"
	"net/url"
	"strconv"
)

// RemainingPages computes the URLs of every page after the first one,
// derived from the envelope's next link. Returns nil when the listing
// fits on one page.
//
// When size or pagelen is missing the total page count cannot be
// computed; the walker then yields exactly the page the next link names
// rather than guessing, so it neither divides by zero nor loops.
func RemainingPages(env Envelope) ([]string, error) {
	if env.Next == "" {
		return nil, nil
	}

	next, err := url.Parse(env.Next)
	if err != nil {
		return nil, fmt.Errorf("parse next link %q: %w", env.Next, err)
	}
	query := next.Query()
	start, err := strconv.Atoi(query.Get("page"))
	if err != nil || start < 1 {
		return nil, fmt.Errorf("next link %q has no usable page parameter", env.Next)
	}

	last := start
	if env.Size > 0 && env.Pagelen > 0 {
		last = (env.Size + env.Pagelen - 1) / env.Pagelen
	}
	if last < start {
		return nil, nil
	}

	pages := make([]string, 0, last-start+1)
	for page := start; page <= last; page++ {
		// Rebuilding RawQuery from the parsed values drops any stale
		// caching artifacts carried on the next link.
		query.Set("page", strconv.Itoa(page))
		next.RawQuery = query.Encode()
		pages = append(pages, next.String())
	}
	return pages, nil
}
