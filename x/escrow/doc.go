/*
Package escrow holds a coin object or an asset in custody until the
designated recipient claims it.

A lock moves the held object into custody of a new escrow record. The
record names the recipient, the price the recipient must pay to the creator
and an optional unlock time. A claim checks, in this order, that the
recipient signed, that the unlock time has passed and that the payment
covers the price. It then pays the creator, hands the held object to the
recipient and destroys the record, so that every record is claimed at most
once.

There is no way to cancel an escrow or return the held object to its
creator.
*/
package escrow
