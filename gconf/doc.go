/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns at most one configuration singleton, stored under a key
derived from the extension name. The configuration is written once, from the
genesis file, and is read by handlers on every transaction. There is no
update path.
*/
package gconf
