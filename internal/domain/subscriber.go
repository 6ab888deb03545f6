package domain

// MaxSubscribers caps how many users may be subscribed to availability
// alerts at the same time. Signups beyond the cap are rejected.
const MaxSubscribers = 10000
