/*
Package settle defines all common interfaces to tie together the ledger
object store, the escrow engine and the batch settlement engine, as well as
implementations of some of the simpler primitives (addresses, conditions,
time, object identifiers).

We pass context through context.Context between app, decorators, and
handlers. To do so, settle defines some common keys to store info, such as
block height, block time and chain id. For every value XYZ of type T that is
supported in Context, there exist two functions:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithHeight and WithChainID panic if the value was previously set, to avoid
lower-level modules overwriting it.
*/
package settle
