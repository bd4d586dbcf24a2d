// Package review applies reviewer decisions to stored records.
package review
