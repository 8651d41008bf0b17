// Package api handles incoming HTTP requests for tasks, login, statistics and
// health. It decodes and validates requests, calls the task service or the
// authenticator, and writes every response through shared.Envelope. Error to
// status translation lives in one place, MapErrorToStatusCode.
package api
