package domain

import "time"

// SiteStatus is the latest known availability of a monitored URL.
type SiteStatus struct {
	URL       string
	Up        bool
	CheckedAt time.Time
	// Known reports whether the URL has been probed at least once.
	Known bool
}

// Transition records a change in a URL's availability between two
// consecutive check cycles. The first observation of a URL counts as a
// transition.
type Transition struct {
	URL string
	Up  bool
}
