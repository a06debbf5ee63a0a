// Package contact implements the site contact form: request validation,
// the Idle/Submitting/Submitted form lifecycle and pluggable submitters
// (simulated delay, SendGrid mail, SQLite persistence and fan-out).
package contact
