/*
Min_dists takes two distance tables and keeps the smaller distance for
each pair of columns. A chain might touch two identical partner
chains, so each pair of alignment columns gets the closest one.

Usage:

	min_dists [-r] dists1 dists2 > mindists

Both tables are indexed by their first two columns. By default every
value column gets its own minimum and pairs that are not complete are
dropped. With -r the whole row with the smaller Distance is kept, so
the residue names stay with the distance they belong to.
*/
package main
