/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called buckets.
* Each bucket contains only one type of model.
* It has a primary key, and may possess secondary indexes.
* Secondary indexes are 1:N and store the set of primary keys of all
models indexed under the same value.
*/
package orm
