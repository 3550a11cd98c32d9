package sflow

// RecordTypeCounter marks generic interface counter samples in sflowtool
// CSV output. Other record types (FLOW, GATEWAY, ...) carry no counters and
// are discarded before tagging.
const RecordTypeCounter = "CNTR"

// Column indexes of a counter sample as written by an sflowtool collector
// that prepends the receive date and time to every record.
const (
	FieldDate = iota
	FieldTime
	FieldType
	FieldAgent
	FieldIfIndex
	FieldIfType
	FieldIfSpeed
	FieldIfDirection
	FieldIfStatus
	FieldInOctets
	FieldInUcastPkts
	FieldInMulticastPkts
	FieldInBroadcastPkts
	FieldInDiscards
	FieldInErrors
	FieldInUnknownProtos
	FieldOutOctets
	FieldOutUcastPkts
	FieldOutMulticastPkts
	FieldOutBroadcastPkts
	FieldOutDiscards
	FieldOutErrors
	FieldPromiscuousMode

	// FieldCount is the expected number of columns in a counter record.
	FieldCount
)

// FieldNames name the columns of a counter record in wire order. Counter
// exports carry no header row, so the tagged output synthesizes one from
// this list.
var FieldNames = []string{
	"Date",
	"Time",
	"Type",
	"Agent",
	"IfIndex",
	"IfType",
	"IfSpeed",
	"IfDirection",
	"IfStatus",
	"InOctets",
	"InUcastPkts",
	"InMulticastPkts",
	"InBroadcastPkts",
	"InDiscards",
	"InErrors",
	"InUnknownProtos",
	"OutOctets",
	"OutUcastPkts",
	"OutMulticastPkts",
	"OutBroadcastPkts",
	"OutDiscards",
	"OutErrors",
	"PromiscuousMode",
}
