package rpc

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/exp/jsonrpc2"

	"github.com/cyrel-edt/cyrel/internal/auth"
	"github.com/cyrel-edt/cyrel/internal/service"
)

// Codes outside the range reserved by JSON-RPC 2.0
const (
	CodeServerError    = -32000
	CodeUnauthorized   = -32001
	CodeIncorrectLogin = -32002
)

var (
	// ErrServer hides internal failures from callers
	ErrServer = jsonrpc2.NewError(CodeServerError, "server error")
	// ErrUnauthorized is returned by methods that need an authenticated user
	ErrUnauthorized = jsonrpc2.NewError(CodeUnauthorized, "unauthorized")
	// ErrIncorrectLogin is returned when the id, e-mail or password is wrong
	ErrIncorrectLogin = jsonrpc2.NewError(CodeIncorrectLogin, "incorrect login information")
)

func invalidParams(format string, args ...any) error {
	return fmt.Errorf("%w: %s", jsonrpc2.ErrInvalidParams, fmt.Sprintf(format, args...))
}

// toRPCError maps a domain error to the error sent on the wire
func toRPCError(method string, err error) error {
	switch {
	case err == nil:
		return nil
	case isWireError(err):
		return err
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, service.ErrUserNotFound):
		return ErrIncorrectLogin
	case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrPrivateGroup):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrAlreadyMember):
		return invalidParams("%v", err)
	default:
		slog.Error("RPC method failed", "method", method, "error", err)
		return ErrServer
	}
}

// isWireError reports whether err already carries a JSON-RPC code
func isWireError(err error) bool {
	for _, known := range []error{
		jsonrpc2.ErrParse,
		jsonrpc2.ErrInvalidRequest,
		jsonrpc2.ErrMethodNotFound,
		jsonrpc2.ErrInvalidParams,
		jsonrpc2.ErrInternal,
		ErrServer,
		ErrUnauthorized,
		ErrIncorrectLogin,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
