package model

import "fmt"

// SearchOrder selects the ranking applied to search results.
type SearchOrder string

const (
	// OrderTop ranks by the composed overall score (default).
	OrderTop SearchOrder = "top"
	// OrderText ranks purely by text relevance.
	OrderText SearchOrder = "text"
	// OrderCreated ranks by package creation time, newest first.
	OrderCreated SearchOrder = "created"
	// OrderUpdated ranks by last update time, newest first.
	OrderUpdated SearchOrder = "updated"
	// OrderPopularity ranks by the externally computed popularity score.
	OrderPopularity SearchOrder = "popularity"
	// OrderLike ranks by like count.
	OrderLike SearchOrder = "like"
	// OrderPoints ranks by granted pana points.
	OrderPoints SearchOrder = "points"
)

// ParseSearchOrder converts a raw string into a SearchOrder.
// An empty string maps to OrderTop.
func ParseSearchOrder(value string) (SearchOrder, error) {
	switch SearchOrder(value) {
	case "":
		return OrderTop, nil
	case OrderTop, OrderText, OrderCreated, OrderUpdated, OrderPopularity, OrderLike, OrderPoints:
		return SearchOrder(value), nil
	}
	return "", fmt.Errorf("unknown search order %q", value)
}

// IsNonText reports whether the order uses a precomputed sort instead of
// the text score.
func (o SearchOrder) IsNonText() bool {
	switch o {
	case OrderCreated, OrderUpdated, OrderPopularity, OrderLike, OrderPoints:
		return true
	}
	return false
}
