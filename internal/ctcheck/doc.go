// Package ctcheck holds source checks for the constant-time rules of the
// library's secret-handling packages. It has no exported API; the checks
// run as tests.
package ctcheck
