// Package export projects stored records into summary and full tabular
// outputs. Exports are pure reads over the filtered, id-ordered record set.
package export
