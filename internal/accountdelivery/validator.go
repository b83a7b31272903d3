package accountdelivery

import "errors"

var errMissingAccountParam = errors.New("missing account query parameter")

var (
	errBadName = errors.New("name must be a string")
	errBadPin  = errors.New("pin must be a string")
)

type createRequest struct {
	Name   string
	Secret string
}

// parseCreateRequest extracts and type-checks the createAccount fields from
// an untyped payload. A missing field and a mistyped field fail the same way.
func parseCreateRequest(payload map[string]any) (createRequest, error) {
	name, ok := payload["name"].(string)
	if !ok {
		return createRequest{}, errBadName
	}

	secret, ok := payload["pin"].(string)
	if !ok {
		return createRequest{}, errBadPin
	}

	return createRequest{Name: name, Secret: secret}, nil
}
