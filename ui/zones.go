package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneMasterPassword       = "zone-master-password"
	ZoneMasterPasswordRepeat = "zone-master-password-repeat"
	ZoneUnlockButton         = "zone-unlock-button"
	ZoneAlias                = "zone-alias"
	ZoneAliasDropdown        = "zone-alias-dropdown"
	ZoneSecret               = "zone-secret"
	ZoneProcessButton        = "zone-process-button"
	ZoneDerived              = "zone-derived"
	ZoneOptionsToggle        = "zone-options-toggle"
	ZoneKeyboardToggle       = "zone-keyboard-toggle"
)

// FieldZoneIDs maps each editable field to its zone.
var FieldZoneIDs = map[FieldID]string{
	FieldMasterPassword:       ZoneMasterPassword,
	FieldMasterPasswordRepeat: ZoneMasterPasswordRepeat,
	FieldAlias:                ZoneAlias,
	FieldSecret:               ZoneSecret,
}

// DropdownItemZoneID returns the zone ID for the dropdown entry at idx.
func DropdownItemZoneID(idx int) string {
	return fmt.Sprintf("zone-dropdown-item-%d", idx)
}

// KeyboardKeyZoneID returns the zone ID for an on-screen keyboard slot.
func KeyboardKeyZoneID(row, col int) string {
	return fmt.Sprintf("zone-kb-key-%d-%d", row, col)
}

// TriswitchZoneID returns the zone ID for option idx of the named triswitch.
func TriswitchZoneID(name string, idx int) string {
	return fmt.Sprintf("zone-triswitch-%s-%d", name, idx)
}
