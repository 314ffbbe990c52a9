/*
Package settletest provides mocks and helpers for testing handlers,
decorators and extensions without running a full ledger.
*/
package settletest
