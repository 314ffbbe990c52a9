/*
Package app glues the extensions together into a ledger that executes
transactions.

Every transaction is decoded into a Tx envelope, routed to the handler of
its message path through a chain of decorators and executed against a cache
wrap of the block state. The cache is written only when the handler
succeeds, so a failed transaction leaves no trace. Events returned by a
successful transaction are appended to the event log in the same write.
*/
package app
