// Package codec converts between internal domain values and the scheme's
// wire representations: money as decimal major units, identity fields with
// fixed textual shapes, and enum codes. Every function is pure and total on
// its declared domain; values outside a known enumeration fail loud with a
// typed unmapped-value error, never a silent default.
package codec
