// Package txerror classifies contract and wallet failures into the categories
// the notification layer presents: user rejection, contract revert, network
// failure, and pre-submission validation.
package txerror

import (
	"errors"
	"strings"

	"cosmic_gateway/internal/domain/entity"
)

// Category is the failure taxonomy.
type Category int

const (
	// CategoryUserRejected is a wallet-level cancellation, informational only.
	CategoryUserRejected Category = iota
	// CategoryContractRevert is an on-chain revert, translated when the custom
	// error is known.
	CategoryContractRevert
	// CategoryNetwork is a connectivity failure, retryable.
	CategoryNetwork
	// CategoryValidation is a pre-submission check failure; no round-trip happened.
	CategoryValidation
	// CategoryUnknown covers everything else.
	CategoryUnknown
)

// String implements fmt.Stringer for logging.
func (c Category) String() string {
	switch c {
	case CategoryUserRejected:
		return "user_rejected"
	case CategoryContractRevert:
		return "contract_revert"
	case CategoryNetwork:
		return "network"
	case CategoryValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// revertMessages maps known custom-error names from the game contracts to
// human-readable sentences.
var revertMessages = map[string]string{
	"BidPrice":                  "insufficient amount sent for bid - price may have increased",
	"BidMessageLengthOverflow":  "bid message is too long",
	"EarlyClaim":                "the prize cannot be claimed yet - the claim timer is still running",
	"LastBidderOnly":            "only the last bidder can claim the main prize right now",
	"NonExistentWinner":         "no prize is recorded for this address",
	"IncorrectERC721TokenOwner": "you do not own this NFT",
	"TokenAlreadyStaked":        "this NFT is already staked",
	"TokenNotStaked":            "this NFT is not currently staked",
	"InsufficientCSTBalance":    "not enough CST to place this bid",
	"CallDenied":                "the contract rejected this call",
}

// Classified is the result of classifying a raw failure.
type Classified struct {
	Category Category
	// Message is the user-facing sentence.
	Message string
	// Retryable marks failures where offering a manual retry makes sense.
	Retryable bool
}

// Classify maps a raw error to its category and user-facing message.
func Classify(err error) Classified {
	if err == nil {
		return Classified{Category: CategoryUnknown, Message: ""}
	}

	var walletErr *entity.WalletError
	if errors.As(err, &walletErr) && walletErr.Code == entity.WalletErrUserRejected {
		return Classified{
			Category: CategoryUserRejected,
			Message:  "transaction canceled in wallet",
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	if name, ok := matchRevert(msg); ok {
		return Classified{
			Category: CategoryContractRevert,
			Message:  revertMessages[name],
		}
	}
	if strings.Contains(lower, "execution reverted") || strings.Contains(lower, "revert") {
		return Classified{
			Category: CategoryContractRevert,
			Message:  cleanRevertString(msg),
		}
	}
	if isNetworkFailure(lower) {
		return Classified{
			Category:  CategoryNetwork,
			Message:   "network error - please try again",
			Retryable: true,
		}
	}
	return Classified{Category: CategoryUnknown, Message: msg}
}

// Notification converts a classified failure into its user-facing notification.
// User rejection is informational, never alarming; everything here is
// dismissible - the wrong-network guard is handled structurally, not as a toast.
func (c Classified) Notification() entity.Notification {
	kind := entity.NotifyError
	if c.Category == CategoryUserRejected {
		kind = entity.NotifyInfo
	}
	if c.Category == CategoryValidation {
		kind = entity.NotifyWarning
	}
	return entity.Notification{
		Kind:        kind,
		Message:     c.Message,
		Dismissible: true,
	}
}

// ValidationFailure builds a validation-category result for pre-submission checks.
func ValidationFailure(msg string) Classified {
	return Classified{Category: CategoryValidation, Message: msg}
}

func matchRevert(msg string) (string, bool) {
	for name := range revertMessages {
		if strings.Contains(msg, name) {
			return name, true
		}
	}
	return "", false
}

// cleanRevertString strips RPC wrapping noise from a generic revert message.
func cleanRevertString(msg string) string {
	msg = strings.TrimSpace(msg)
	for _, prefix := range []string{"execution reverted:", "execution reverted", "revert:", "revert"} {
		if strings.HasPrefix(strings.ToLower(msg), prefix) {
			msg = strings.TrimSpace(msg[len(prefix):])
			break
		}
	}
	if msg == "" {
		return "transaction reverted by the contract"
	}
	return msg
}

func isNetworkFailure(lower string) bool {
	for _, marker := range []string{"connection refused", "timeout", "deadline exceeded", "no such host", "network is unreachable", "eof"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
