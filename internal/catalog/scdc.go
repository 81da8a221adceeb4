package catalog

// SCDC register map (HDMI 2.0 Status and Control Data Channel).
//
// Offsets are register addresses on the 0xA8/0xA9 device. Multi-byte
// registers describe each byte position in order.

// SCDC register offsets.
const (
	SCDCSinkVersion     byte = 0x01
	SCDCSourceVersion   byte = 0x02
	SCDCUpdate0         byte = 0x10
	SCDCUpdate1         byte = 0x11
	SCDCTMDSConfig      byte = 0x20
	SCDCScramblerStatus byte = 0x21
	SCDCConfig0         byte = 0x30
	SCDCStatusFlags0    byte = 0x40
	SCDCStatusFlags1    byte = 0x41
	SCDCErrorDetection  byte = 0x50
	SCDCTestConfig0     byte = 0xC0
	SCDCManufacturerOUI byte = 0xD0
)

func flag(mask byte, off, on string) Field {
	return Field{Mask: mask, Values: map[byte]string{0x00: off, mask: on}}
}

func channelValid(ch int) ByteFieldSet {
	name := [...]string{"Ch0", "Ch1", "Ch2"}[ch]
	return ByteFieldSet{
		flag(0x80, name+" Error Count: INVALID", name+" Error Count: VALID"),
	}
}

func scdcRegisters() map[byte]*RegisterDefinition {
	return map[byte]*RegisterDefinition{
		SCDCSinkVersion: {
			Name: "Sink Version",
			ByteFields: []ByteFieldSet{{
				{Mask: 0xFF, Values: map[byte]string{0x01: "Sink Version: 1"}},
			}},
		},
		SCDCSourceVersion: {
			Name: "Source Version",
			ByteFields: []ByteFieldSet{{
				{Mask: 0xFF, Values: map[byte]string{0x01: "Source Version: 1"}},
			}},
		},
		SCDCUpdate0: {
			Name: "Update_0",
			ByteFields: []ByteFieldSet{{
				{Mask: 0x01, Values: map[byte]string{0x01: "Status_Update"}},
				{Mask: 0x02, Values: map[byte]string{0x02: "CED_Update"}},
				{Mask: 0x04, Values: map[byte]string{0x04: "RR_Test"}},
			}},
		},
		SCDCUpdate1: {Name: "Update_1"},
		SCDCTMDSConfig: {
			Name: "TMDS Config",
			ByteFields: []ByteFieldSet{{
				flag(0x01, "Scrambling Enable: DISABLED", "Scrambling Enable: ENABLED"),
				flag(0x02, "TMDS_Bit_Clock_Ratio = 1/10", "TMDS_Bit_Clock_Ratio = 1/40"),
			}},
		},
		SCDCScramblerStatus: {
			Name: "Scrambler Status",
			ByteFields: []ByteFieldSet{{
				flag(0x01, "Scrambling Status: NOT DETECTED", "Scrambling Status: DETECTED"),
			}},
		},
		SCDCConfig0: {
			Name: "Config_0",
			ByteFields: []ByteFieldSet{{
				flag(0x01, "Read Request: DISABLED", "Read Request: ENABLED"),
			}},
		},
		SCDCStatusFlags0: {
			Name: "Status Flags 0",
			ByteFields: []ByteFieldSet{{
				flag(0x01, "Clock Detected: NO", "Clock Detected: YES"),
				flag(0x02, "Ch0 Locked: NO", "Ch0 Locked: YES"),
				flag(0x04, "Ch1 Locked: NO", "Ch1 Locked: YES"),
				flag(0x08, "Ch2 Locked: NO", "Ch2 Locked: YES"),
			}},
		},
		SCDCStatusFlags1: {Name: "Status Flags 1"},
		SCDCErrorDetection: {
			Name: "Character Error Detection",
			// Err_Det_{0,1,2}_L, Err_Det_{0,1,2}_H, checksum
			ByteFields: []ByteFieldSet{
				nil, channelValid(0),
				nil, channelValid(1),
				nil, channelValid(2),
				nil,
			},
		},
		SCDCTestConfig0: {
			Name: "Test Config 0",
			ByteFields: []ByteFieldSet{{
				{Mask: 0x80, Values: map[byte]string{0x80: "Test Read Request: ENABLED"}},
			}},
		},
		SCDCManufacturerOUI: {Name: "Manufacturer OUI"},
	}
}
