package validation

// Embedded schema names
const (
	SchemaInboundFrame = "inbound_frame.schema.json"
)
