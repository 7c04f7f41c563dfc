// Package alarm implements the gRPC transport for the alarm clock service.
//
// The service is described by a hand-maintained grpc.ServiceDesc whose
// messages are protobuf well-known types. Alarms travel as structpb.Struct
// payloads that are validated field by field into domain alarms; flags travel
// as wrapperspb.BoolValue. The package also carries the client-side method
// names, the payload codecs used by both ends and the actor metadata helpers.
package alarm
