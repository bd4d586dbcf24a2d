// Command tagreview is the reviewer's front end to a review store: it
// imports datasets, lists and navigates records, applies tag confirmations
// and notes, and writes exports.
//
// Every mutation maps one-to-one onto a core operation; the CLI keeps no
// state between invocations beyond the store file itself.
package main
