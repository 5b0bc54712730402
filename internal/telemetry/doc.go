// Package telemetry defines GPU telemetry events and the in-process bus they
// travel on.
//
// A Payload carries a list of GPU Records. Producers (see internal/source)
// publish payloads under a named event; the overlay subscribes to that name
// and reads only the first record of each payload.
//
// Record fields decode leniently: a missing, null or non-numeric field is 0,
// so a partial reading never fails the whole event.
package telemetry
