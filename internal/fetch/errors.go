package fetch

import "fmt"

// FetchError reports a failure to retrieve or read a page.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("error accessing website %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("error accessing website %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TooShortError reports a page whose extracted text is below the usable minimum.
type TooShortError struct {
	URL    string
	Length int
	Min    int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("website content too short or empty: %s yielded %d characters (minimum %d)", e.URL, e.Length, e.Min)
}
