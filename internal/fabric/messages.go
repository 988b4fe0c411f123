package fabric

const (
	msgLFConflict        = "This quote contains Light-Filter (LF) items. How would you like to proceed?"
	msgNoItemsOverwrite  = "No items to overwrite."
	msgNoNonLFItems      = "No non-LF items available to edit."
	msgSelectFirst       = "Please select items from the main table first."
	msgNoLFEligible      = "The selection contains no eligible B2, B3, or B4 items, or they are already set as LF."
	msgLFApplied         = "Light-Filter applied to %d items."
	msgAllSelectedLF     = "All selected items are LF items. SSet cannot be used. Please use N&C (Overwrite) or LF-Del instead."
	msgSSetNeedsPair     = "No changes applied. Please fill in both F-Name and F-Color for a type."
	msgSSetApplied       = "SSet applied to items."
	msgLFDeletePrompt    = "Please select the roller blinds for which you want to cancel the Light-Filter fabric setting. After selection, click the LF-Del button again."
	msgLFDeleteOnlyLF    = "Only items with a Light-Filter setting (pink background) can be selected for deletion."
	msgLFCleared         = "Light-Filter settings have been cleared."
	msgNameColorApplied  = "Fabric name and color updated on %d items."
	titleNameColor       = "Batch Edit Fabric (N&C)"
	titleLightFilter     = "Batch Edit Light-Filter (%d selected items)"
	titleSelectiveSet    = "Selective Set (%d selected items)"
	dialogColumns        = "0.8fr 1.2fr 1.2fr"
	lfInputType          = "LF"
	buttonConfirm        = "confirm"
	buttonCancel         = "cancel"
	buttonOverwrite      = "overwrite"
	buttonPreserve       = "preserve"
	operationNameColor   = "name_color"
	operationLightFilter = "light_filter"
	operationSelective   = "selective_set"
	operationLFDelete    = "lf_delete"
)

// Input ids used by the fabric dialogs.
func NameInputID(fabricType string) string { return "fname-" + fabricType }
func ColorInputID(fabricType string) string { return "fcolor-" + fabricType }
func SelectiveNameInputID(fabricType string) string { return "fname-sset-" + fabricType }
func SelectiveColorInputID(fabricType string) string { return "fcolor-sset-" + fabricType }
