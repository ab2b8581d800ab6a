// Package onehot turns rows of categorical tokens into one-hot feature vectors.
//
// Every column gets a group: its distinct tokens in ascending order. A token
// is encoded as its position in the group, and a row of positions expands into
// one segment per column, each segment as wide as the column's group with a
// single 1 at the token's position. Columns whose group holds fewer than two
// tokens carry no information and are dropped before encoding.
package onehot
