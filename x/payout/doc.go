/*
Package payout distributes a single payment coin object across many
recipients in one atomic transaction.

A batch charges a protocol fee of FeeBPS basis points of the batch total,
rounded down. Any non empty batch pays at least one unit of fee, so very
small batches pay more than the nominal rate. The fee is sent to the owner
named in the package configuration, which is written once at genesis.

The payment object is never consumed. It stays with the sender holding
whatever remains after the fee and all payouts were split out of it.
*/
package payout
