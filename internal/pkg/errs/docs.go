// Package errs holds the error kinds shared by every layer of the order service.
//
// Each kind is a sentinel (ErrValueIsInvalid, ErrCurrencyMismatch, ...) plus a struct carrying the
// details, so callers classify with errors.Is and inspect with errors.As:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed or missing arguments
//   - CurrencyMismatchError: money arithmetic across two currencies
//   - TransitionIsInvalidError: an order operation rejected by the status state machine
//   - ObjectNotFoundError: a lookup that found nothing
package errs
