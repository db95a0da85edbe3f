package models

import (
	"fmt"
	"strings"
)

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusPreparing SaleStatus = "PREPARING"
	SaleStatusShipped   SaleStatus = "SHIPPED"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// forward edges of the fulfilment flow; CANCELLED is reachable from every
// non-terminal status and is handled separately.
var nextSaleStatus = map[SaleStatus]SaleStatus{
	SaleStatusPending:   SaleStatusPreparing,
	SaleStatusPreparing: SaleStatusShipped,
	SaleStatusShipped:   SaleStatusCompleted,
}

func (s SaleStatus) IsKnown() bool {
	switch s {
	case SaleStatusPending, SaleStatusPreparing, SaleStatusShipped, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusCompleted || s == SaleStatusCancelled
}

// Next returns the status that follows s in the fulfilment flow.
func (s SaleStatus) Next() (SaleStatus, bool) {
	next, ok := nextSaleStatus[s]
	return next, ok
}

// CanTransitionTo reports whether the edge s -> to exists in the sale lifecycle graph.
func (s SaleStatus) CanTransitionTo(to SaleStatus) bool {
	if s.IsTerminal() || !to.IsKnown() {
		return false
	}
	if to == SaleStatusCancelled {
		return true
	}
	next, ok := s.Next()
	return ok && next == to
}

// IsInitialSaleStatus reports whether a sale may be created directly in status s.
func IsInitialSaleStatus(s SaleStatus) bool {
	return s == SaleStatusPending || s == SaleStatusCompleted || s == SaleStatusCancelled
}

type TransitionPolicy string

const (
	// TransitionPermissive accepts any target status string.
	TransitionPermissive TransitionPolicy = "permissive"
	// TransitionStrict only accepts the edges of the lifecycle graph.
	TransitionStrict TransitionPolicy = "strict"
)

func ParseTransitionPolicy(raw string) (TransitionPolicy, error) {
	switch TransitionPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case TransitionPermissive, "":
		return TransitionPermissive, nil
	case TransitionStrict:
		return TransitionStrict, nil
	}
	return "", fmt.Errorf("unknown transition policy %q", raw)
}

// StatusMessage is the human readable line recorded when a sale enters status.
func StatusMessage(status SaleStatus, trackingCode string) string {
	switch status {
	case SaleStatusPreparing:
		return "Order in preparation"
	case SaleStatusShipped:
		if trackingCode != "" {
			return "Order shipped with tracking: " + trackingCode
		}
		return "Order shipped"
	case SaleStatusCompleted:
		return "Order completed"
	case SaleStatusCancelled:
		return "Order cancelled"
	}
	return fmt.Sprintf("Status updated to %s", status)
}
