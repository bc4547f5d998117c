// Package bruteforce provides a simple position index that answers nearest
// queries by scanning all records in order. It is the reference the halving
// search is checked against and shares the positions file layout for
// persistence.
package bruteforce
