// Package adapter contains outbound integrations with external systems.
//
// The only adapter today is the AMQP lifecycle publisher, which mirrors every
// terminal job transition to a message broker so downstream consumers
// (billing, notification pipelines) can react without polling the HTTP API.
package adapter
