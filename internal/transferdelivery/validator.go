package transferdelivery

import (
	"errors"

	"github.com/twothirdshuman/minecraft-banking/internal/domain"
)

var (
	errBadFromAccountName = errors.New("fromAccountName must be a string")
	errBadToAccountName   = errors.New("toAccountName must be a string")
	errBadAmount          = errors.New("amount must be a number")
	errBadPin             = errors.New("pin must be a string")
)

// parseTransferRequest extracts and type-checks the makeTransaction fields
// from an untyped payload. A missing field and a mistyped field fail the
// same way. Field checks run in canonical order and stop at the first
// failure; amount business rules are applied later by the service.
func parseTransferRequest(payload map[string]any) (domain.TransferParams, error) {
	from, ok := payload["fromAccountName"].(string)
	if !ok {
		return domain.TransferParams{}, errBadFromAccountName
	}

	to, ok := payload["toAccountName"].(string)
	if !ok {
		return domain.TransferParams{}, errBadToAccountName
	}

	amount, ok := payload["amount"].(float64)
	if !ok {
		return domain.TransferParams{}, errBadAmount
	}

	pin, ok := payload["pin"].(string)
	if !ok {
		return domain.TransferParams{}, errBadPin
	}

	return domain.TransferParams{
		FromAccountName: from,
		ToAccountName:   to,
		Amount:          amount,
		Pin:             pin,
	}, nil
}

// parseMintRequest extracts and type-checks the printMoney fields from an
// untyped payload.
func parseMintRequest(payload map[string]any) (domain.MintParams, error) {
	to, ok := payload["toAccountName"].(string)
	if !ok {
		return domain.MintParams{}, errBadToAccountName
	}

	amount, ok := payload["amount"].(float64)
	if !ok {
		return domain.MintParams{}, errBadAmount
	}

	secret, ok := payload["pin"].(string)
	if !ok {
		return domain.MintParams{}, errBadPin
	}

	return domain.MintParams{
		ToAccountName: to,
		Amount:        amount,
		Secret:        secret,
	}, nil
}
