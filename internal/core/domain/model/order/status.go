package order

import (
	"fmt"
	"strings"

	"courier-tracker/internal/pkg/errs"
)

// Status is the client-visible lifecycle state of an order.
//
// Transitions initiated by the courier:
//
//	Pending ──┐
//	          ├──> EnRoute (accept) ──> Delivered (mark delivered)
//	InPreparation ┘
//
// Cancelled is terminal and only ever arrives from the backend.
type Status int

const (
	// Unknown is the zero value and never decoded from the wire.
	Unknown Status = iota
	Pending
	InPreparation
	EnRoute
	Delivered
	Cancelled
)

// Wire values used by the backend.
const (
	wirePending       = "pendiente"
	wireInPreparation = "en_proceso"
	wireEnRoute       = "enviado"
	wireDelivered     = "entregado"
	wireCancelled     = "cancelado"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Pending:       "Pending",
		InPreparation: "InPreparation",
		EnRoute:       "EnRoute",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

func getWireStrings() map[Status]string {
	//nolint:exhaustive // Unknown has no wire form
	return map[Status]string{
		Pending:       wirePending,
		InPreparation: wireInPreparation,
		EnRoute:       wireEnRoute,
		Delivered:     wireDelivered,
		Cancelled:     wireCancelled,
	}
}

// StatusFromWire decodes a backend status. Empty and unrecognised values decode
// as Pending, which is how they are displayed to the courier. The legacy
// "En proceso" spelling maps to InPreparation.
func StatusFromWire(s string) Status {
	switch strings.TrimSpace(s) {
	case wireInPreparation, "En proceso":
		return InPreparation
	case wireEnRoute:
		return EnRoute
	case wireDelivered:
		return Delivered
	case wireCancelled:
		return Cancelled
	default:
		return Pending
	}
}

// Wire returns the backend representation, or "" for Unknown.
func (s Status) Wire() string {
	return getWireStrings()[s]
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getWireStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no courier action may follow.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateAccept checks that a courier may take an order in this status.
func (s Status) ValidateAccept() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s),
		)
	}
	return nil
}

// Accept transitions to EnRoute.
func (s Status) Accept() (Status, error) {
	if err := s.ValidateAccept(); err != nil {
		return Unknown, err
	}
	return EnRoute, nil
}

// Deliver transitions to Delivered from any non-terminal status.
func (s Status) Deliver() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
	return Delivered, nil
}
