// Package utils provides loose type conversion for values decoded from JSON
// or read from the database, where numbers may arrive as float64, integers,
// strings or byte slices.
package utils
