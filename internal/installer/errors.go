package installer

import "fmt"

// NoMatchingAssetError means a release listed assets but none survived the
// platform filter. PageURL points a user at the release page so they can
// pick an asset by hand.
type NoMatchingAssetError struct {
	Owner   string
	Project string
	Tag     string
	PageURL string
}

func (e *NoMatchingAssetError) Error() string {
	return fmt.Sprintf("no asset for this platform in %s/%s release %s (see %s)",
		e.Owner, e.Project, e.Tag, e.PageURL)
}
