package csvcodec

// ProjectKeys are the quote-meta columns of the project block, in file order.
var ProjectKeys = []string{
	"quoteId", "issueDate", "dueDate",
	"customer.name", "customer.address", "customer.phone", "customer.email",
}

// SnapshotKeys follow ProjectKeys in the project block. The order is part of
// the file format: legacy files are read positionally.
var SnapshotKeys = []string{
	"winder_qty", "motor_qty", "charger_qty", "cord_qty",
	"remote_1ch_qty", "remote_16ch_qty", "dual_combo_qty", "dual_slim_qty",
	"discountPercentage",
}

// ItemHeaders is the fixed item table header.
var ItemHeaders = []string{
	"#", "Width", "Height", "Type", "Price",
	"Location", "F-Name", "F-Color", "Over", "O/I", "L/R",
	"Dual", "Chain", "Winder", "Motor", "IsLF",
}

const (
	colWidth = iota + 1
	colHeight
	colType
	colPrice
	colLocation
	colFabric
	colColor
	colOver
	colOI
	colLR
	colDual
	colChain
	colWinder
	colMotor
)

const (
	isLFHeader      = "IsLF"
	legacyPrefix    = "#,Width"
	legacySentinel  = "F1_SNAPSHOT"
	customerPrefix  = "customer."
	totalRowPrefix  = "total"
	minCurrentLines = 4
)

func isSnapshotKey(key string) bool {
	return indexOf(SnapshotKeys, key) >= 0
}

func isProjectKey(key string) bool {
	return indexOf(ProjectKeys, key) >= 0
}

func indexOf(list []string, key string) int {
	for i, candidate := range list {
		if candidate == key {
			return i
		}
	}
	return -1
}
