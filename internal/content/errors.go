package content

import "errors"

var (
	// ErrEmptyURL is returned when Fetch receives an empty URL.
	ErrEmptyURL = errors.New("url is empty")

	// ErrUnsupportedScheme is returned for URLs that are not http or https.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")

	// ErrUnexpectedStatus is returned when the server answers with a 4xx or
	// 5xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrNotHTML is returned when the response declares a non-HTML content
	// type.
	ErrNotHTML = errors.New("response is not html")
)
