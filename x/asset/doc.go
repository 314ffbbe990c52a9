/*
Package asset implements unique, non fungible ledger objects.

An asset has a kind, which is the asset type it belongs to, an optional URI
pointing at its description and exactly one owner. Assets are never split
or merged, only moved.
*/
package asset
