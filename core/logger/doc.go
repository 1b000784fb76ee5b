// Package logger records one structured event per command the shell
// dispatches and summarizes recorded logs.
package logger
