package tracker

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v72/github"
)

// ErrNotFound indicates the referenced pull request or issue does not exist
// in the repository. Callers branch on it with IsNotFound instead of
// inspecting error strings.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err denotes a missing pull request or issue.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || isNotFoundResponse(err)
}

// isNotFoundResponse reports whether err is a GitHub API 404 response.
func isNotFoundResponse(err error) bool {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return false
	}
	return errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}
