package wizard

import (
	"errors"

	"github.com/wahlandcase/attuned.changelog/internal/generate"
	"github.com/wahlandcase/attuned.changelog/internal/github"
)

// ErrorKind classifies a user visible error
type ErrorKind int

const (
	// KindValidation is bad input; no request was made
	KindValidation ErrorKind = iota
	// KindUpstream is a failed API call
	KindUpstream
	// KindCredential is a missing or rejected generation key
	KindCredential
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindCredential:
		return "credential"
	default:
		return "unknown"
	}
}

// Error is the single error line shown to the user
type Error struct {
	Kind    ErrorKind
	Message string
}

// MsgInvalidRepoURL is shown when the add-repo input does not name a repository
const MsgInvalidRepoURL = "Please enter a valid public GitHub repo URL."

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func classify(err error) *Error {
	switch {
	case errors.Is(err, github.ErrInvalidRepoURL):
		return validation(MsgInvalidRepoURL)
	case generate.IsCredentialError(err):
		return &Error{Kind: KindCredential, Message: err.Error()}
	default:
		return &Error{Kind: KindUpstream, Message: github.UserMessage(err)}
	}
}
