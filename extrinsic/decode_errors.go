package extrinsic

import "fmt"

type shortInputError string

func errShortInput(what string) error { return shortInputError(what) }

func (e shortInputError) Error() string {
	return fmt.Sprintf("%s: unexpected end of input", string(e))
}

type unknownVariantError struct {
	what    string
	variant byte
}

func errUnknownVariant(what string, variant byte) error {
	return &unknownVariantError{what: what, variant: variant}
}

func (e *unknownVariantError) Error() string {
	return fmt.Sprintf("%s: unknown variant byte 0x%02x", e.what, e.variant)
}
