// Package meta describes how entity types map onto column families without
// runtime reflection, plus typed column encoders shared by entity classes.
package meta
