/*
Package cash implements fungible balances as uniquely owned ledger objects.

Every coin object holds a single balance of one ticker and has exactly one
owner. Value is never created outside of genesis: it is moved by changing
the owner of an object, split into new objects and merged back, and the sum
of all balances of a ticker stays constant.
*/
package cash
