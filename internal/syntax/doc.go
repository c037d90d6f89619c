// Package syntax holds the lossless syntax tree.
//
// The tree has two layers. Green nodes are immutable, position-free and
// hash-consed through a NodeCache, so identical subtrees produced by two
// parses of similar text are the same pointer. Red nodes wrap green nodes
// with a parent link and an absolute offset; they are created on demand while
// navigating and are cheap to throw away.
//
// Every byte of the source is in exactly one token, trivia included, so
// Node.Text of the root reproduces the parsed text.
package syntax
