package assistant

import (
	"context"
	"errors"
	"net"
	"strings"

	"ats-assistant-be/pkg/ats"
)

// ErrorKind classifies a collaborator failure for the user-facing message.
type ErrorKind int

const (
	// ErrorGeneric is any failure not recognised below.
	ErrorGeneric ErrorKind = iota
	// ErrorConnectivity is an unreachable backend or transport failure.
	ErrorConnectivity
	// ErrorAuth is an expired or missing session.
	ErrorAuth
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorConnectivity:
		return "connectivity"
	case ErrorAuth:
		return "auth"
	default:
		return "generic"
	}
}

const (
	connectivityMessage = "I'm having trouble connecting to the server right now. Please check your connection and try again."
	authMessage         = "Your session has expired, please log in again."
)

var (
	connectivityMarkers = []string{"failed to fetch", "network", "connection refused", "connection reset", "no such host", "unreachable", "timeout"}
	authMarkers         = []string{"401", "unauthorized", "session expired"}
)

// ClassifyError maps err onto the taxonomy. Typed errors are checked first,
// then the message text.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ErrorGeneric
	}

	if errors.Is(err, ats.ErrUnauthorized) {
		return ErrorAuth
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorConnectivity
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorConnectivity
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, authMarkers):
		return ErrorAuth
	case containsAny(msg, connectivityMarkers):
		return ErrorConnectivity
	default:
		return ErrorGeneric
	}
}

// DescribeError turns a failure into the bot message. resource is a human
// label such as "job data" or "candidate information".
func DescribeError(err error, resource string) string {
	switch ClassifyError(err) {
	case ErrorConnectivity:
		return connectivityMessage
	case ErrorAuth:
		return authMessage
	default:
		if resource == "" {
			resource = "data"
		}
		return "I encountered an error while fetching " + resource + ". Please try again later."
	}
}
