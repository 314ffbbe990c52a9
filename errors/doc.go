/*
Package errors implements the error taxonomy used by every settle extension.

Reuse the root errors declared in this package whenever possible and register
a custom root error only when nothing here describes the failure. Each root
error carries a unique code which is returned to the client as the ABCI code
of the aborted transaction.

Create error instances at the point of failure with Wrap or Wrapf so that a
stacktrace is attached:

	return errors.Wrapf(errors.ErrNotFound, "coin %s", id)

Test the kind of an error with the Is method of the root error:

	if errors.ErrNotRecipient.Is(err) { ... }

Formatting follows pkg/errors:

	%s is just the error message
	%+v is the message followed by the full stack trace
*/
package errors
